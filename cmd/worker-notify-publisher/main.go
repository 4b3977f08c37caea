package main

import (
	"context"
	"time"

	"github.com/meritus/coinledger/internal/config"
	"github.com/meritus/coinledger/internal/database"
	"github.com/meritus/coinledger/internal/publishers"
	"github.com/meritus/coinledger/internal/repository"
	"github.com/meritus/coinledger/internal/service"
	"github.com/meritus/coinledger/pkg/mq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			database.NewConnection,
			NewMQConnection,
			NewMQPublisher,

			repository.NewNotificationRepository,

			service.NewNotificationQueueService,

			NewNotifyPublisher,
		),
		fx.Invoke(runNotifyPublisher),
	).Run()
}

func runNotifyPublisher(cfg *config.Config, publisher publishers.NotifyPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{cfg.Notifier.Queue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", cfg.Notifier.Queue))

			go func() {
				ticker := time.NewTicker(time.Duration(cfg.Notifier.IntervalSeconds) * time.Second)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish notifications", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("notify publisher started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping notify publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}

func NewNotifyPublisher(svc service.NotificationQueueService, publisher mq.Publisher,
	cfg *config.Config, logger *zap.Logger) publishers.NotifyPublisher {
	return publishers.NewNotifyPublisher(svc, publisher, cfg.Notifier.Queue, cfg.Notifier.BatchSize, logger)
}
