package repository

import (
	"github.com/meritus/coinledger/internal/model"
	"gorm.io/gorm"
)

type RedemptionRepository interface {
	ListByStudent(studentID int64) ([]model.Redemption, error)
}

type redemption struct {
	db *gorm.DB
}

func NewRedemptionRepository(db *gorm.DB) RedemptionRepository {
	return &redemption{db: db}
}

func (r *redemption) ListByStudent(studentID int64) ([]model.Redemption, error) {
	var redemptions []model.Redemption
	err := r.db.
		Where("student_id = ?", studentID).
		Order("created_at ASC, id ASC").
		Find(&redemptions).Error
	if err != nil {
		return nil, err
	}

	return redemptions, nil
}
