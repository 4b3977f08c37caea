package service

import (
	"context"
	"time"

	"github.com/meritus/coinledger/internal/model"
	"github.com/meritus/coinledger/internal/repository"
	"go.uber.org/zap"
)

type NotificationQueueService interface {
	FindNotificationsToQueue(ctx context.Context, limit int) ([]SendNotificationCommand, error)
	MarkNotificationAsQueued(ctx context.Context, notificationID int64) error
}

type notificationQueue struct {
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

func NewNotificationQueueService(notificationRepo repository.NotificationRepository,
	logger *zap.Logger) NotificationQueueService {
	return &notificationQueue{notificationRepo: notificationRepo, logger: logger}
}

func (n *notificationQueue) FindNotificationsToQueue(ctx context.Context, limit int) ([]SendNotificationCommand, error) {
	n.logger.Debug("Finding notifications to publish", zap.Int("batchSize", limit))

	rows, err := n.notificationRepo.FindUnpublishedCreated(limit)
	if err != nil {
		n.logger.Error("Failed to find unpublished notifications", zap.Error(err))
		return nil, err
	}

	if len(rows) == 0 {
		n.logger.Debug("No notifications found to publish")
		return nil, nil
	}

	commands := make([]SendNotificationCommand, 0, len(rows))
	for _, row := range rows {
		commands = append(commands, SendNotificationCommand{
			NotificationID: row.ID,
			Recipient:      row.Recipient,
			Subject:        row.Subject,
			Body:           row.Body,
		})
	}

	return commands, nil
}

func (n *notificationQueue) MarkNotificationAsQueued(ctx context.Context, notificationID int64) error {
	publishedAt := time.Now()
	notification := model.Notification{
		ID:          notificationID,
		State:       model.NotificationStatePending,
		Published:   true,
		PublishedAt: &publishedAt,
		UpdatedAt:   time.Now(),
	}

	if err := n.notificationRepo.Update(&notification); err != nil {
		n.logger.Error("Failed to mark notification as published",
			zap.Error(err),
			zap.Int64("notificationID", notificationID))
		return err
	}

	n.logger.Debug("Successfully marked notification as published",
		zap.Int64("notificationID", notificationID))

	return nil
}
