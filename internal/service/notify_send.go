package service

import (
	"context"
	"errors"
	"time"

	"github.com/meritus/coinledger/internal/metrics"
	"github.com/meritus/coinledger/internal/model"
	"github.com/meritus/coinledger/internal/repository"
	"github.com/meritus/coinledger/pkg/mailer"
	"github.com/meritus/coinledger/pkg/mq"
	"go.uber.org/zap"
)

type NotificationSendService interface {
	SendNotification(ctx context.Context, cmd SendNotificationCommand) error
}

type notificationSend struct {
	notificationRepo repository.NotificationRepository
	mailer           mailer.Mailer
	maxRetries       int
	logger           *zap.Logger
	metrics          *metrics.Metrics
}

func NewNotificationSendService(notificationRepo repository.NotificationRepository, mailer mailer.Mailer,
	maxRetries int, logger *zap.Logger, metrics *metrics.Metrics) NotificationSendService {
	return &notificationSend{
		notificationRepo: notificationRepo,
		mailer:           mailer,
		maxRetries:       maxRetries,
		logger:           logger,
		metrics:          metrics,
	}
}

// SendNotification delivers one outbox row by mail. Delivery is best
// effort: temporary failures are requeued up to maxRetries, anything
// past that is marked FAILED and dropped. Ledger state is never touched.
func (n *notificationSend) SendNotification(ctx context.Context, cmd SendNotificationCommand) error {
	notification, err := n.notificationRepo.GetByID(cmd.NotificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			n.logger.Warn("Notification no longer exists, dropping",
				zap.Int64("notificationID", cmd.NotificationID))
			return nil
		}

		return mq.Temporary(err)
	}

	if notification.State == model.NotificationStateSent {
		n.logger.Info("Notification already sent, dropping",
			zap.Int64("notificationID", cmd.NotificationID))
		return nil
	}

	attempt := notification.AttemptCount + 1

	sendErr := n.mailer.Send(cmd.Recipient, cmd.Subject, cmd.Body)
	if sendErr == nil {
		update := model.Notification{
			ID:           notification.ID,
			State:        model.NotificationStateSent,
			AttemptCount: attempt,
			UpdatedAt:    time.Now(),
		}

		if err := n.notificationRepo.Update(&update); err != nil {
			n.logger.Error("Failed to mark notification as sent",
				zap.Int64("notificationID", notification.ID),
				zap.Error(err))
		}

		n.metrics.RecordNotificationSent("success")

		n.logger.Info("Notification delivered",
			zap.Int64("notificationID", notification.ID),
			zap.String("recipient", cmd.Recipient),
			zap.Int("attempt", attempt))

		return nil
	}

	lastErr := sendErr.Error()
	update := model.Notification{
		ID:           notification.ID,
		AttemptCount: attempt,
		LastError:    &lastErr,
		UpdatedAt:    time.Now(),
	}

	if attempt >= n.maxRetries {
		update.State = model.NotificationStateFailed
		if err := n.notificationRepo.Update(&update); err != nil {
			n.logger.Error("Failed to mark notification as failed",
				zap.Int64("notificationID", notification.ID),
				zap.Error(err))
		}

		n.metrics.RecordNotificationSent("failed")

		n.logger.Warn("Notification exceeded max retries, dropping",
			zap.Int64("notificationID", notification.ID),
			zap.Int("attempts", attempt),
			zap.Error(sendErr))

		return nil
	}

	if err := n.notificationRepo.Update(&update); err != nil {
		n.logger.Error("Failed to record notification attempt",
			zap.Int64("notificationID", notification.ID),
			zap.Error(err))
	}

	n.logger.Debug("Temporary mail failure, will retry",
		zap.Int64("notificationID", notification.ID),
		zap.Int("attempt", attempt),
		zap.Int("remainingRetries", n.maxRetries-attempt),
		zap.Error(sendErr))

	return mq.Temporary(sendErr)
}
