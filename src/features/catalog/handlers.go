package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/contre95/songsheet/src/music"
	"github.com/gofiber/fiber/v2"
)

// FavoriteLookup marks cards that are already favorites.
type FavoriteLookup interface {
	FavoriteKeys(ctx context.Context) (map[music.SongKey]bool, error)
}

// Handler is the handler for the catalog feature.
type Handler struct {
	service   *Service
	favorites FavoriteLookup
	pageSize  int
	now       func() time.Time
}

// NewHandler creates a new handler for the catalog feature.
func NewHandler(service *Service, favorites FavoriteLookup) *Handler {
	return &Handler{
		service:   service,
		favorites: favorites,
		pageSize:  service.configManager.Get().Catalog.PageSize,
		now:       time.Now,
	}
}

// Pagination represents pagination information
type Pagination struct {
	Page       int
	Limit      int
	TotalCount int
	TotalPages int
	NextPage   int
	PrevPage   int
	HasNext    bool
	HasPrev    bool
}

// NewPagination creates a new Pagination instance with calculated values
func NewPagination(page, limit, totalCount int) Pagination {
	totalPages := 1
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		NextPage:   page + 1,
		PrevPage:   page - 1,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Window returns the slice bounds of the current page.
func (p Pagination) Window() (int, int) {
	if p.Limit <= 0 {
		return 0, p.TotalCount
	}
	start := min((p.Page-1)*p.Limit, p.TotalCount)
	return start, min(start+p.Limit, p.TotalCount)
}

// ParseFilter reads the filter from the query string.
func ParseFilter(c *fiber.Ctx, now time.Time) (Filter, error) {
	filter := Filter{
		Query:    c.Query("q"),
		Type:     c.Query("type"),
		Language: c.Query("language"),
		Genre:    c.Query("genre"),
		Composer: c.Query("composer"),
		CoSinger: c.Query("cosinger"),
		Sort:     c.Query("sort"),
	}

	var err error
	if filter.Decade, err = queryInt(c, "decade"); err != nil {
		return filter, err
	}
	if filter.YearFrom, err = queryInt(c, "year_from"); err != nil {
		return filter, err
	}
	if filter.YearTo, err = queryInt(c, "year_to"); err != nil {
		return filter, err
	}
	if quick := c.Query("quick"); quick != "" {
		if filter, err = filter.WithQuick(quick, now); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	return &v, nil
}

func wantsHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get("Accept"), "text/html") || c.Get("HX-Request") == "true"
}

func statusFor(err error) int {
	if errors.Is(err, music.ErrNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// GetSongs renders the filtered song grid of a language.
func (h *Handler) GetSongs(c *fiber.Ctx) error {
	language := strings.Clone(c.Params("language"))
	slog.Debug("GetSongs handler called", "language", language)

	filter, err := ParseFilter(c, h.now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	result, err := h.service.Search(c.Context(), language, filter)
	if err != nil {
		slog.Error("Error searching songs", "language", language, "error", err)
		return c.Status(statusFor(err)).SendString("Error loading songs")
	}

	pagination := NewPagination(max(c.QueryInt("page", 1), 1), c.QueryInt("limit", h.pageSize), len(result.Songs))
	start, end := pagination.Window()
	cards := NewCards(result.Songs[start:end], cardLanguage(language))
	h.markFavorites(c.Context(), cards)

	if wantsHTML(c) {
		return c.Render("catalog/songs", fiber.Map{
			"Language":      language,
			"Cards":         cards,
			"Summary":       result.Summary(),
			"ActiveFilters": result.Filter.ActiveFilters(),
			"Pagination":    pagination,
			"Empty":         len(result.Songs) == 0,
		})
	}

	return c.JSON(fiber.Map{
		"language":      language,
		"summary":       result.Summary(),
		"total":         result.Total,
		"count":         len(result.Songs),
		"activeFilters": result.Filter.ActiveFilters(),
		"songs":         cards,
		"pagination": fiber.Map{
			"page":       pagination.Page,
			"limit":      pagination.Limit,
			"totalPages": pagination.TotalPages,
		},
	})
}

func cardLanguage(language string) string {
	if language == AllLanguages {
		return ""
	}
	return language
}

func (h *Handler) markFavorites(ctx context.Context, cards []Card) {
	if h.favorites == nil {
		return
	}
	keys, err := h.favorites.FavoriteKeys(ctx)
	if err != nil {
		slog.Warn("Could not load favorites for cards", "error", err)
		return
	}
	for i := range cards {
		cards[i].Favorite = keys[music.SongKey{Title: cards[i].Title, Movie: cards[i].Movie}]
	}
}

// GetOptions returns the dropdown values of a language.
func (h *Handler) GetOptions(c *fiber.Ctx) error {
	language := strings.Clone(c.Params("language"))
	slog.Debug("GetOptions handler called", "language", language)

	songs, err := h.service.Songs(c.Context(), language)
	if err != nil {
		slog.Error("Error loading songs for options", "language", language, "error", err)
		return c.Status(statusFor(err)).SendString("Error loading filter options")
	}
	options := BuildOptions(songs)

	if wantsHTML(c) {
		return c.Render("catalog/options", fiber.Map{
			"Language": language,
			"Options":  options,
			"Quick":    []string{QuickRecent, QuickClassic, QuickGolden, QuickModern},
			"Sorts":    SortFields,
		})
	}
	return c.JSON(options)
}

// ExportCSV downloads the filtered songs of a language as CSV.
func (h *Handler) ExportCSV(c *fiber.Ctx) error {
	language := strings.Clone(c.Params("language"))
	slog.Debug("ExportCSV handler called", "language", language)

	filter, err := ParseFilter(c, h.now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	result, err := h.service.Search(c.Context(), language, filter)
	if err != nil {
		slog.Error("Error exporting songs", "language", language, "error", err)
		return c.Status(statusFor(err)).SendString("Error exporting songs")
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s-songs.csv\"", language))
	return ExportCSV(c.Response().BodyWriter(), result.Songs)
}

// ReloadSheet refetches a language sheet.
func (h *Handler) ReloadSheet(c *fiber.Ctx) error {
	language := strings.Clone(c.Params("language"))
	slog.Info("Sheet reload requested", "language", language)

	var (
		count int
		err   error
	)
	if language == AllLanguages {
		if err = h.service.LoadAll(c.Context()); err == nil {
			songs, _ := h.service.Songs(c.Context(), AllLanguages)
			count = len(songs)
		}
	} else {
		var sheet Sheet
		sheet, err = h.service.Reload(c.Context(), language)
		count = len(sheet.Songs)
	}
	if err != nil {
		slog.Error("Error reloading sheet", "language", language, "error", err)
		return c.Status(statusFor(err)).SendString("Error reloading sheet")
	}

	if c.Get("HX-Request") == "true" {
		c.Set("HX-Trigger", "songsReloaded")
		return c.Render("toast/toastOk", fiber.Map{
			"Msg": fmt.Sprintf("Loaded %d songs", count),
		})
	}
	return c.JSON(fiber.Map{"language": language, "songs": count})
}
