package collections

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/contre95/songsheet/src/music"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the collections feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the collections feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SongForm is a song as posted by a card button.
type SongForm struct {
	Title    string `json:"title" form:"title"`
	Movie    string `json:"movie" form:"movie"`
	Year     string `json:"year" form:"year"`
	Composer string `json:"composer" form:"composer"`
	CoSinger string `json:"cosinger" form:"cosinger"`
	Genre    string `json:"genre" form:"genre"`
	Language string `json:"language" form:"language"`
	Type     string `json:"type" form:"type"`
	YouTube  string `json:"youtube" form:"youtube"`
}

// Song converts the form to a sheet row.
func (f SongForm) Song() music.Song {
	return music.SavedSong{
		Title:    strings.TrimSpace(f.Title),
		Movie:    strings.TrimSpace(f.Movie),
		Year:     f.Year,
		Composer: f.Composer,
		CoSinger: f.CoSinger,
		Genre:    f.Genre,
		Language: f.Language,
		Type:     f.Type,
		YouTube:  f.YouTube,
	}.Song()
}

// ParseSong reads a song from the request body.
func ParseSong(c *fiber.Ctx) (music.Song, error) {
	var form SongForm
	if err := c.BodyParser(&form); err != nil {
		return nil, fmt.Errorf("invalid song: %w", err)
	}
	if strings.TrimSpace(form.Title) == "" {
		return nil, errors.New("song title is required")
	}
	return form.Song(), nil
}

// songKey reads the title/movie pair from the query string, falling back to the form.
func songKey(c *fiber.Ctx) (music.SongKey, error) {
	title := c.Query("title", c.FormValue("title"))
	movie := c.Query("movie", c.FormValue("movie"))
	if strings.TrimSpace(title) == "" {
		return music.SongKey{}, errors.New("song title is required")
	}
	return music.SongKey{Title: strings.TrimSpace(title), Movie: strings.TrimSpace(movie)}, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, music.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, music.ErrAlreadyExists):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

func wantsHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get("Accept"), "text/html") || isHTMX(c)
}

// respond sends a toast to HTMX clients and JSON to everyone else.
// HTMX only swaps 2xx responses, so toasts always go out as 200.
func respond(c *fiber.Ctx, status int, msg string, payload any) error {
	if isHTMX(c) {
		template := "toast/toastOk"
		if status >= 400 {
			template = "toast/toastErr"
		} else {
			c.Set("HX-Trigger", "collectionsChanged")
		}
		return c.Render(template, fiber.Map{"Msg": msg})
	}
	if payload == nil {
		payload = fiber.Map{"message": msg}
	}
	return c.Status(status).JSON(payload)
}

func fail(c *fiber.Ctx, err error, msg string) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error(msg, "error", err)
	}
	return respond(c, status, msg, fiber.Map{"error": err.Error()})
}

// GetFavorites lists the favorite songs.
func (h *Handler) GetFavorites(c *fiber.Ctx) error {
	slog.Debug("GetFavorites handler called")
	favorites, err := h.service.Favorites(c.Context())
	if err != nil {
		slog.Error("Error loading favorites", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error loading favorites")
	}
	if wantsHTML(c) {
		return c.Render("collections/favorites", fiber.Map{"Favorites": favorites})
	}
	return c.JSON(favorites)
}

// AddFavorite adds the posted song to the favorites. With toggle=true an
// existing favorite is removed instead.
func (h *Handler) AddFavorite(c *fiber.Ctx) error {
	song, err := ParseSong(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if c.QueryBool("toggle") {
		favorite, err := h.service.ToggleFavorite(c.Context(), song)
		if err != nil {
			return fail(c, err, "Error updating favorites")
		}
		msg := "💔 Removed from favorites"
		if favorite {
			msg = "⭐ Added to favorites!"
		}
		return respond(c, fiber.StatusOK, msg, fiber.Map{"favorite": favorite})
	}

	saved, err := h.service.AddFavorite(c.Context(), song)
	if errors.Is(err, music.ErrAlreadyExists) {
		return respond(c, fiber.StatusConflict, "Already in favorites", nil)
	}
	if err != nil {
		return fail(c, err, "Error adding favorite")
	}
	return respond(c, fiber.StatusCreated, "⭐ Added to favorites!", saved)
}

// RemoveFavorite removes a song from the favorites.
func (h *Handler) RemoveFavorite(c *fiber.Ctx) error {
	key, err := songKey(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	if err := h.service.RemoveFavorite(c.Context(), key); err != nil {
		return fail(c, err, "Error removing favorite")
	}
	return respond(c, fiber.StatusOK, "💔 Removed from favorites", nil)
}

// ClearFavorites removes every favorite.
func (h *Handler) ClearFavorites(c *fiber.Ctx) error {
	if err := h.service.ClearFavorites(c.Context()); err != nil {
		return fail(c, err, "Error clearing favorites")
	}
	return respond(c, fiber.StatusOK, "🗑️ All favorites cleared", nil)
}

// CheckFavorite reports whether a song is a favorite.
func (h *Handler) CheckFavorite(c *fiber.Ctx) error {
	key, err := songKey(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	favorite, err := h.service.IsFavorite(c.Context(), key)
	if err != nil {
		return fail(c, err, "Error checking favorite")
	}
	return c.JSON(fiber.Map{"favorite": favorite})
}

// GetPlaylists lists the playlists.
func (h *Handler) GetPlaylists(c *fiber.Ctx) error {
	slog.Debug("GetPlaylists handler called")
	playlists, err := h.service.Playlists(c.Context())
	if err != nil {
		slog.Error("Error loading playlists", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error loading playlists")
	}
	if wantsHTML(c) {
		// The add-to-playlist picker reuses this endpoint with the song in the query.
		return c.Render("collections/playlists", fiber.Map{
			"Playlists": playlists,
			"Title":     c.Query("title"),
			"Movie":     c.Query("movie"),
		})
	}
	return c.JSON(playlists)
}

// GetPlaylist returns one playlist.
func (h *Handler) GetPlaylist(c *fiber.Ctx) error {
	playlist, err := h.service.Playlist(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Playlist not found")
	}
	if wantsHTML(c) {
		return c.Render("collections/playlist", fiber.Map{"Playlist": playlist})
	}
	return c.JSON(playlist)
}

// ExportM3U downloads a playlist as an M3U file.
func (h *Handler) ExportM3U(c *fiber.Ctx) error {
	id := c.Params("id")
	playlist, err := h.service.Playlist(c.Context(), id)
	if err != nil {
		return fail(c, err, "Playlist not found")
	}
	c.Set("Content-Type", "audio/x-mpegurl")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"playlist_%s.m3u\"", id))
	return WriteM3U(c.Response().BodyWriter(), playlist, h.service.configManager.Get().Site.Artist)
}

// CreatePlaylist creates a playlist from the posted name, description and icon.
func (h *Handler) CreatePlaylist(c *fiber.Ctx) error {
	var form struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
		Icon        string `json:"icon" form:"icon"`
	}
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid playlist")
	}
	if strings.TrimSpace(form.Name) == "" {
		return respond(c, fiber.StatusBadRequest, "Please enter a playlist name", nil)
	}

	playlist, err := h.service.CreatePlaylist(c.Context(), form.Name, form.Description, form.Icon)
	if err != nil {
		return respond(c, fiber.StatusBadRequest, err.Error(), fiber.Map{"error": err.Error()})
	}
	return respond(c, fiber.StatusCreated, fmt.Sprintf("📝 Playlist \"%s\" created!", playlist.Name), playlist)
}

// DeletePlaylist removes a playlist.
func (h *Handler) DeletePlaylist(c *fiber.Ctx) error {
	if err := h.service.DeletePlaylist(c.Context(), c.Params("id")); err != nil {
		return fail(c, err, "Error deleting playlist")
	}
	return respond(c, fiber.StatusOK, "🗑️ Playlist deleted", nil)
}

// AddSongToPlaylist appends the posted song to a playlist.
func (h *Handler) AddSongToPlaylist(c *fiber.Ctx) error {
	song, err := ParseSong(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	playlist, err := h.service.AddSongToPlaylist(c.Context(), c.Params("id"), song)
	if errors.Is(err, music.ErrAlreadyExists) {
		return respond(c, fiber.StatusConflict, "Song already in playlist", nil)
	}
	if err != nil {
		return fail(c, err, "Error adding song to playlist")
	}
	return respond(c, fiber.StatusOK, fmt.Sprintf("➕ Added to \"%s\"", playlist.Name), playlist)
}

// RemoveSongFromPlaylist removes a song from a playlist.
func (h *Handler) RemoveSongFromPlaylist(c *fiber.Ctx) error {
	key, err := songKey(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	playlist, err := h.service.RemoveSongFromPlaylist(c.Context(), c.Params("id"), key)
	if err != nil {
		return fail(c, err, "Error removing song from playlist")
	}
	return respond(c, fiber.StatusOK, "🗑️ Removed from playlist", playlist)
}

// GetRecent lists the recently played songs.
func (h *Handler) GetRecent(c *fiber.Ctx) error {
	slog.Debug("GetRecent handler called")
	recent, err := h.service.Recent(c.Context())
	if err != nil {
		slog.Error("Error loading recently played", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error loading recently played")
	}
	if wantsHTML(c) {
		return c.Render("collections/recent", fiber.Map{"Recent": recent})
	}
	return c.JSON(recent)
}

// RemoveRecent removes one song from the history.
func (h *Handler) RemoveRecent(c *fiber.Ctx) error {
	key, err := songKey(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	if err := h.service.RemoveRecent(c.Context(), key); err != nil {
		return fail(c, err, "Error removing from history")
	}
	return respond(c, fiber.StatusOK, "🗑️ Removed from history", nil)
}

// ClearRecent empties the history.
func (h *Handler) ClearRecent(c *fiber.Ctx) error {
	if err := h.service.ClearRecent(c.Context()); err != nil {
		return fail(c, err, "Error clearing history")
	}
	return respond(c, fiber.StatusOK, "🗑️ History cleared", nil)
}

// GetCounts returns the collection badge counts.
func (h *Handler) GetCounts(c *fiber.Ctx) error {
	counts, err := h.service.Counts(c.Context())
	if err != nil {
		slog.Error("Error counting collections", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error loading counts")
	}
	if wantsHTML(c) {
		return c.Render("collections/counts", fiber.Map{"Counts": counts})
	}
	return c.JSON(counts)
}

// ShareSong returns the share links of the posted song.
func (h *Handler) ShareSong(c *fiber.Ctx) error {
	song, err := ParseSong(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	site := h.service.configManager.Get().Site
	page := c.FormValue("page")
	if page == "" {
		page = strings.TrimRight(site.BaseURL, "/") + "/"
		if language := song.Language(); language != "" {
			page += "ui/" + strings.ToLower(language)
		}
	}

	links, err := Share(song, site.Artist, page)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	if wantsHTML(c) {
		return c.Render("collections/share", fiber.Map{"Share": links})
	}
	return c.JSON(links)
}
