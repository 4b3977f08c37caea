package consumers

import (
	"context"
	"encoding/json"

	"github.com/meritus/coinledger/internal/service"
	"github.com/meritus/coinledger/pkg/mq"
	"go.uber.org/zap"
)

type NotifyConsumer interface {
	Consume(ctx context.Context) error
}

type notifyConsumer struct {
	service  service.NotificationSendService
	consumer mq.Consumer
	queue    string
	logger   *zap.Logger
}

func NewNotifyConsumer(service service.NotificationSendService, consumer mq.Consumer,
	queue string, logger *zap.Logger) NotifyConsumer {
	return &notifyConsumer{
		service:  service,
		consumer: consumer,
		queue:    queue,
		logger:   logger,
	}
}

func (n *notifyConsumer) Consume(ctx context.Context) error {
	return n.consumer.Consume(ctx, 1, n.queue, n.handleMessage)
}

func (n *notifyConsumer) handleMessage(ctx context.Context, body []byte) error {
	n.logger.Debug("received notification command", zap.ByteString("body", body))

	var cmd service.SendNotificationCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		n.logger.Warn("invalid notification command", zap.Error(err))
		return err
	}

	return n.service.SendNotification(ctx, cmd)
}
