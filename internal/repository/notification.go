package repository

import (
	"context"
	"errors"

	"github.com/meritus/coinledger/internal/model"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("NOTIFICATION_NOT_FOUND")

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	GetByID(id int64) (*model.Notification, error)
	FindUnpublishedCreated(limit int) ([]model.Notification, error)
	Update(notification *model.Notification) error
}

type notification struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notification{db: db}
}

func (r *notification) Create(ctx context.Context, n *model.Notification) error {
	db := GetTx(ctx, r.db)
	return db.Create(n).Error
}

func (r *notification) GetByID(id int64) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.Where("id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	return &n, nil
}

func (r *notification) FindUnpublishedCreated(limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.
		Where("published = ? AND state = ?", false, model.NotificationStateCreated).
		Order("id ASC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notification) Update(n *model.Notification) error {
	result := r.db.Model(&model.Notification{}).Where("id = ?", n.ID).
		Updates(n)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
