package player

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the player feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	player := app.Group("/player")
	player.Post("/play", handler.Play)
}
