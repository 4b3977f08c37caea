package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/meritus/coinledger/internal/model"
	"gorm.io/gorm"
)

var (
	ErrStudentNotFound = errors.New("STUDENT_NOT_FOUND")
	ErrCPFExisted      = errors.New("CPF_EXISTED")
)

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	FindByUserID(userID int64) (model.Student, error)
	FindByCPF(cpf string) (model.Student, error)
	Update(ctx context.Context, student *model.Student) error
}

type student struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &student{db: db}
}

func (r *student) Create(ctx context.Context, s *model.Student) error {
	db := GetTx(ctx, r.db)
	err := db.Create(s).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrCPFExisted
	}

	return err
}

func (r *student) FindByUserID(userID int64) (model.Student, error) {
	var s model.Student
	if err := r.db.Where("user_id = ?", userID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Student{}, ErrStudentNotFound
		}
		return model.Student{}, err
	}

	return s, nil
}

func (r *student) FindByCPF(cpf string) (model.Student, error) {
	var s model.Student
	if err := r.db.Where("cpf = ?", cpf).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Student{}, ErrStudentNotFound
		}
		return model.Student{}, err
	}

	return s, nil
}

func (r *student) Update(ctx context.Context, s *model.Student) error {
	db := GetTx(ctx, r.db)

	result := db.Model(&model.Student{}).Where("user_id = ?", s.UserID).
		Updates(map[string]interface{}{
			"name":        s.Name,
			"institution": s.Institution,
			"course":      s.Course,
			"updated_at":  s.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
