package catalog

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the catalog feature.
func RegisterRoutes(app *fiber.App, service *Service, favorites FavoriteLookup) {
	handler := NewHandler(service, favorites)

	songs := app.Group("/songs")
	songs.Get("/:language", handler.GetSongs)
	songs.Get("/:language/options", handler.GetOptions)
	songs.Get("/:language/export.csv", handler.ExportCSV)
	songs.Post("/:language/reload", handler.ReloadSheet)
}
