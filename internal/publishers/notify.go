package publishers

import (
	"context"
	"encoding/json"

	"github.com/meritus/coinledger/internal/service"
	"github.com/meritus/coinledger/pkg/mq"
	"go.uber.org/zap"
)

type NotifyPublisher interface {
	Publish(ctx context.Context) error
}

type notifyPublisher struct {
	service   service.NotificationQueueService
	publisher mq.Publisher
	queue     string
	batchSize int
	logger    *zap.Logger
}

func NewNotifyPublisher(service service.NotificationQueueService, publisher mq.Publisher,
	queue string, batchSize int, logger *zap.Logger) NotifyPublisher {
	return &notifyPublisher{
		service:   service,
		publisher: publisher,
		queue:     queue,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (n *notifyPublisher) Publish(ctx context.Context) error {
	commands, err := n.service.FindNotificationsToQueue(ctx, n.batchSize)
	if err != nil {
		return err
	}

	if len(commands) == 0 {
		return nil
	}

	n.logger.Info("Publishing notifications", zap.Int("count", len(commands)))

	successCount := 0
	for _, cmd := range commands {
		body, _ := json.Marshal(cmd)
		if err := n.publisher.Publish(ctx, "", n.queue, body); err != nil {
			n.logger.Error("Failed to publish notification",
				zap.Error(err),
				zap.Int64("notificationID", cmd.NotificationID))
			continue
		}

		if err := n.service.MarkNotificationAsQueued(ctx, cmd.NotificationID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		n.logger.Info("Successfully published notifications",
			zap.Int("published", successCount),
			zap.Int("total", len(commands)))
	}

	return nil
}
