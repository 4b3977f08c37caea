package api

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	v1 "github.com/meritus/coinledger/internal/api/v1"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const prefixV1 = "/api/v1"

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get(prefixV1+"/users/:id/balance", handler.GetBalance)
	app.Get(prefixV1+"/users/:id/transactions", handler.ListTransactions)
	app.Post(prefixV1+"/transfers", handler.Transfer)
	app.Post(prefixV1+"/grants", handler.Grant)
	app.Get(prefixV1+"/professors/:id/students-report", handler.StudentsReport)

	app.Post(prefixV1+"/students", handler.RegisterStudent)
	app.Get(prefixV1+"/students/:id", handler.GetStudent)
	app.Put(prefixV1+"/students/:id", handler.UpdateStudent)
	app.Delete(prefixV1+"/students/:id", handler.DeactivateStudent)
	app.Get(prefixV1+"/advantages", handler.ListAdvantages)
}
