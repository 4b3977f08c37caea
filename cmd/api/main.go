package main

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/meritus/coinledger/internal/api"
	"github.com/meritus/coinledger/internal/api/middleware"
	apivalidator "github.com/meritus/coinledger/internal/api/validator"
	v1 "github.com/meritus/coinledger/internal/api/v1"
	"github.com/meritus/coinledger/internal/config"
	"github.com/meritus/coinledger/internal/database"
	"github.com/meritus/coinledger/internal/metrics"
	"github.com/meritus/coinledger/internal/repository"
	"github.com/meritus/coinledger/internal/service"
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
			NewValidator,
			apivalidator.NewXValidator,

			repository.NewTransactionManager,
			repository.NewLedgerRepository,
			repository.NewUserRepository,
			repository.NewStudentRepository,
			repository.NewAdvantageRepository,
			repository.NewCompanyRepository,
			repository.NewRedemptionRepository,
			repository.NewNotificationRepository,

			service.NewTransferService,
			service.NewReportService,
			service.NewStudentService,

			v1.NewHandler,
			NewFiberApp,
		),
		fx.Invoke(startServer),
	).Run()
}

func NewValidator() *validator.Validate {
	return validator.New()
}

func NewFiberApp(m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(metrics.HealthCheckMiddleware())
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	return app
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting HTTP server", zap.String("port", cfg.API.Port))
			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
