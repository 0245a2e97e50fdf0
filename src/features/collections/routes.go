package collections

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the collections feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	favorites := app.Group("/favorites")
	favorites.Get("/", handler.GetFavorites)
	favorites.Post("/", handler.AddFavorite)
	favorites.Delete("/", handler.RemoveFavorite)
	favorites.Delete("/all", handler.ClearFavorites)
	favorites.Get("/check", handler.CheckFavorite)

	playlists := app.Group("/playlists")
	playlists.Get("/", handler.GetPlaylists)
	playlists.Post("/", handler.CreatePlaylist)
	playlists.Get("/:id/export.m3u", handler.ExportM3U)
	playlists.Get("/:id", handler.GetPlaylist)
	playlists.Delete("/:id", handler.DeletePlaylist)
	playlists.Post("/:id/songs", handler.AddSongToPlaylist)
	playlists.Delete("/:id/songs", handler.RemoveSongFromPlaylist)

	recent := app.Group("/recent")
	recent.Get("/", handler.GetRecent)
	recent.Delete("/", handler.RemoveRecent)
	recent.Delete("/all", handler.ClearRecent)

	app.Get("/collections/counts", handler.GetCounts)
	app.Post("/share", handler.ShareSong)
}
