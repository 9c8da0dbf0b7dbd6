package handler

import (
	"time"

	"go-inventory-history/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes registers the public HTTP surface on app.
func SetupRoutes(app *fiber.App, inv *InventoryHandler, dash *DashboardHandler) {
	app.Use(middleware.Metrics())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Inventory Management Backend Running!")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "time": time.Now().Unix()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	api.Get("/categories", inv.GetCategories)

	// Static segments first so they never match as an :id
	api.Get("/products/export", inv.ExportProducts)
	api.Post("/products/import", inv.ImportProducts)

	api.Get("/products", inv.GetProducts)
	api.Post("/products", inv.CreateProduct)
	api.Put("/products/:id", inv.UpdateProduct)
	api.Delete("/products/:id", inv.DeleteProduct)
	api.Get("/products/:id/history", inv.GetHistory)

	api.Get("/dashboard/stats", dash.GetDashboardStats)
	api.Get("/dashboard/stock-movement", dash.GetStockMovement)
}
