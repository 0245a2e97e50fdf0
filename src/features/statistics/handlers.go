package statistics

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/contre95/songsheet/src/music"
	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the statistics feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new statistics handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func statusFor(err error) int {
	if errors.Is(err, music.ErrNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// GetStatistics renders the dashboard of the selected language.
func (h *Handler) GetStatistics(c *fiber.Ctx) error {
	language := c.Query("language")
	slog.Debug("GetStatistics handler called", "language", language)

	stats, err := h.service.Statistics(c.Context(), language)
	if err != nil {
		slog.Error("Error computing statistics", "language", language, "error", err)
		return c.Status(statusFor(err)).SendString("Error loading statistics")
	}

	if strings.Contains(c.Get("Accept"), "text/html") || c.Get("HX-Request") == "true" {
		return c.Render("statistics/dashboard", fiber.Map{
			"Stats":  stats,
			"Charts": Charts,
		})
	}
	return c.JSON(stats)
}

// GetChart returns one chart in Chart.js format.
func (h *Handler) GetChart(c *fiber.Ctx) error {
	name := c.Params("chart")
	chart, err := h.service.Chart(c.Context(), c.Query("language"), name)
	if err != nil {
		slog.Error("Error building chart", "chart", name, "error", err)
		return c.Status(statusFor(err)).SendString("Error loading chart")
	}
	return c.JSON(chart)
}

// GetChartPNG returns one chart as an image.
func (h *Handler) GetChartPNG(c *fiber.Ctx) error {
	name := c.Params("chart")
	img, err := h.service.ChartPNG(c.Context(), c.Query("language"), name)
	if err != nil {
		slog.Error("Error rendering chart", "chart", name, "error", err)
		return c.Status(statusFor(err)).SendString("Error rendering chart")
	}
	c.Set("Content-Type", "image/png")
	c.Set("Cache-Control", "no-cache")
	return c.Send(img)
}
