package config

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the config feature.
func RegisterRoutes(app *fiber.App, configManager *Manager, configPath string) {
	handler := NewHandler(configManager, configPath)

	app.Get("/settings", handler.GetConfig)
	app.Post("/settings/sheets", handler.UpdateSheet)
	app.Get("/settings/database/download", handler.DownloadDatabase)
}
