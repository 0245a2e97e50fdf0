package ui

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/contre95/songsheet/src/features/collections"
	"github.com/contre95/songsheet/src/features/config"
	"github.com/gofiber/fiber/v2"
)

// Catalog lists the languages that have a sheet.
type Catalog interface {
	Languages() []string
}

// CollectionCounter reports the size of the visitor's collections.
type CollectionCounter interface {
	Counts(ctx context.Context) (collections.Counts, error)
}

// Handler is the handler for the UI feature.
type Handler struct {
	configManager *config.Manager
	catalog       Catalog
	collections   CollectionCounter
}

// NewHandler creates a new handler for the UI feature.
func NewHandler(configManager *config.Manager, catalog Catalog, collections CollectionCounter) *Handler {
	return &Handler{
		configManager: configManager,
		catalog:       catalog,
		collections:   collections,
	}
}

// page renders a full page on normal requests and only its section for HTMX.
func (h *Handler) page(c *fiber.Ctx, section string, data fiber.Map) error {
	site := h.configManager.Get().Site
	data["Site"] = site.Name
	data["Artist"] = site.Artist
	data["Languages"] = h.catalog.Languages()
	if counts, err := h.collections.Counts(c.Context()); err == nil {
		data["Counts"] = counts
	} else {
		slog.Warn("Could not load collection counts", "error", err)
	}
	if c.Get("HX-Request") != "true" {
		data["Section"] = section
		return c.Render("main", data)
	}
	return c.Render("sections/"+section, data)
}

// RenderHome renders the landing page with one entry per language.
func (h *Handler) RenderHome(c *fiber.Ctx) error {
	slog.Debug("RenderHome handler called")
	return h.page(c, "home", fiber.Map{
		"Title": "Home",
	})
}

// RenderLanguage renders the song browser of one language, or of every sheet for "all".
// A shared link carries the song title in ?song= and opens the page searching for it.
func (h *Handler) RenderLanguage(c *fiber.Ctx) error {
	language := strings.ToLower(c.Params("language"))
	slog.Debug("RenderLanguage handler called", "language", language)

	if language != "all" && !slices.Contains(h.catalog.Languages(), language) {
		return fiber.NewError(fiber.StatusNotFound, "Unknown language "+language)
	}
	return h.page(c, "language", fiber.Map{
		"Title":    strings.ToUpper(language[:1]) + language[1:],
		"Language": language,
		"Query":    c.Query("song"),
	})
}

// RenderFavorites renders the favorites, playlists and history page.
func (h *Handler) RenderFavorites(c *fiber.Ctx) error {
	slog.Debug("RenderFavorites handler called")
	return h.page(c, "favorites", fiber.Map{
		"Title": "My Collections",
		"Tab":   c.Query("tab", "favorites"),
	})
}

// RenderStatistics renders the statistics dashboard page.
func (h *Handler) RenderStatistics(c *fiber.Ctx) error {
	slog.Debug("RenderStatistics handler called")
	return h.page(c, "statistics", fiber.Map{
		"Title":    "Statistics",
		"Language": c.Query("language", "all"),
	})
}
