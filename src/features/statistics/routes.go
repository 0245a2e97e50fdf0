package statistics

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the statistics feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	stats := app.Group("/statistics")
	stats.Get("/", handler.GetStatistics)
	stats.Get("/charts/:chart.png", handler.GetChartPNG)
	stats.Get("/charts/:chart", handler.GetChart)
}
