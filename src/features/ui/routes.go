package ui

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the UI feature.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/", handler.RenderHome)

	ui := app.Group("/ui")
	ui.Get("/", handler.RenderHome)
	// Fixed pages first, everything else is a language.
	ui.Get("/favorites", handler.RenderFavorites)
	ui.Get("/statistics", handler.RenderStatistics)
	ui.Get("/:language", handler.RenderLanguage)
}
