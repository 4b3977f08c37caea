package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/meritus/coinledger/internal/model"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound   = errors.New("USER_NOT_FOUND")
	ErrEmailExisted   = errors.New("EMAIL_EXISTED")
	ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(id int64) (model.User, error)
	FindByEmail(email string) (model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type user struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &user{db: db}
}

func (r *user) Create(ctx context.Context, u *model.User) error {
	db := GetTx(ctx, r.db)
	err := db.Create(u).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrEmailExisted
	}

	return err
}

func (r *user) FindByID(id int64) (model.User, error) {
	var u model.User
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}

	return u, nil
}

func (r *user) FindByEmail(email string) (model.User, error) {
	var u model.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}

	return u, nil
}

func (r *user) Update(ctx context.Context, u *model.User) error {
	db := GetTx(ctx, r.db)

	result := db.Model(&model.User{}).Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":       u.Name,
			"email":      u.Email,
			"active":     u.Active,
			"updated_at": u.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
