package main

import (
	"context"

	"github.com/meritus/coinledger/internal/config"
	"github.com/meritus/coinledger/internal/consumers"
	"github.com/meritus/coinledger/internal/database"
	"github.com/meritus/coinledger/internal/metrics"
	"github.com/meritus/coinledger/internal/repository"
	"github.com/meritus/coinledger/internal/service"
	"github.com/meritus/coinledger/pkg/mailer"
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
			metrics.NewMetrics,
			NewMQConnection,
			NewMQConsumer,
			NewMailer,

			repository.NewNotificationRepository,

			NewNotificationSendService,

			NewNotifyConsumer,
		),
		fx.Invoke(runNotifyConsumer),
	).Run()
}

func runNotifyConsumer(cfg *config.Config, consumer consumers.NotifyConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{cfg.Notifier.Queue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			go func() {
				if err := consumer.Consume(appCtx); err != nil && appCtx.Err() == nil {
					logger.Error("consumer stopped unexpectedly", zap.Error(err))
				}
			}()

			logger.Info("notify consumer started", zap.String("queue", cfg.Notifier.Queue))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping notify consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}

func NewMailer(cfg *config.Config, logger *zap.Logger) mailer.Mailer {
	return mailer.NewSMTPMailer(cfg.Mailer, logger)
}

func NewNotificationSendService(repo repository.NotificationRepository, m mailer.Mailer,
	cfg *config.Config, logger *zap.Logger, metrics *metrics.Metrics) service.NotificationSendService {
	return service.NewNotificationSendService(repo, m, cfg.Notifier.MaxRetries, logger, metrics)
}

func NewNotifyConsumer(svc service.NotificationSendService, consumer mq.Consumer,
	cfg *config.Config, logger *zap.Logger) consumers.NotifyConsumer {
	return consumers.NewNotifyConsumer(svc, consumer, cfg.Notifier.Queue, logger)
}
