package routes

import (
	"github.com/gofiber/fiber/v2"

	"khata-backend/controllers"
	"khata-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Idempotency guard FIRST (not tied to the request TX)
	api.Use(middlewares.Idempotency())

	// Then per-request transaction (commits/rolls back around the handler)
	api.Use(middlewares.RequestTx())

	// Sales (bills of line items)
	api.Post("/expenses", controllers.CreateSale)
	api.Get("/expenses", controllers.GetTransactions)
	api.Put("/expenses/:billno", controllers.EditSale)
	api.Delete("/expenses/:billno", controllers.DeleteSale)

	// Stock
	api.Post("/stock", controllers.CreateStock)
	api.Get("/stock", controllers.GetStock)
	api.Put("/stock/:id", controllers.UpdateStock)
	api.Delete("/stock/:id", controllers.DeleteStock)

	// Reports
	api.Get("/reports/overview", controllers.GetOverview)
	api.Get("/reports/overview/export", controllers.ExportOverview)
	api.Get("/reports/pending", controllers.GetPending)
	api.Get("/reports/pending/export", controllers.ExportPending)
}
