package config

import (
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the config feature.
type Handler struct {
	configManager *Manager
	configPath    string
}

// NewHandler creates a new handler for the config feature.
func NewHandler(configManager *Manager, configPath string) *Handler {
	return &Handler{
		configManager: configManager,
		configPath:    configPath,
	}
}

// UpdateSheet adds or replaces the published sheet of one language.
func (h *Handler) UpdateSheet(c *fiber.Ctx) error {
	language := strings.Clone(strings.ToLower(strings.TrimSpace(c.FormValue("language"))))
	source := strings.Clone(strings.TrimSpace(c.FormValue("url")))
	slog.Info("Sheet update requested", "language", language)

	if language == "" || source == "" {
		return c.Status(fiber.StatusBadRequest).SendString("language and url are required")
	}

	current := h.configManager.Get()
	newConfig := *current
	newConfig.Sheets = maps.Clone(current.Sheets)
	newConfig.Sheets[language] = source

	if err := Validate(&newConfig); err != nil {
		slog.Warn("Rejected sheet update", "language", language, "error", err)
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	h.configManager.Update(&newConfig)
	slog.Info("Configuration updated in memory", "language", language)

	// Saving may fail in read-only containers, the in-memory config still applies
	if err := h.configManager.Save(h.configPath); err != nil {
		slog.Warn("failed to save config to file (this is normal in containerized environments)", "error", err)
	}

	if c.Get("HX-Request") == "true" {
		return c.Render("toast/toastOk", fiber.Map{
			"Msg": fmt.Sprintf("Sheet for %s updated", language),
		})
	}
	return c.JSON(fiber.Map{"language": language, "url": source})
}

// GetConfig returns the current configuration in the requested format.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	format := c.Query("fmt", "yaml")
	slog.Debug("GetConfig handler called", "format", format)

	switch format {
	case "yaml":
		c.Set("Content-Type", "text/yaml")
		return c.SendString(h.configManager.GetYAML())
	case "json":
		c.Set("Content-Type", "application/json")
		return c.SendString(h.configManager.GetJSON())
	default:
		return c.Status(fiber.StatusBadRequest).SendString("Invalid format. Use 'json' or 'yaml'")
	}
}

// DownloadDatabase serves the collections database for backup.
func (h *Handler) DownloadDatabase(c *fiber.Ctx) error {
	slog.Debug("DownloadDatabase handler called")

	dbPath := h.configManager.Get().Database.Path
	if dbPath == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Database path not configured")
	}

	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filepath.Base(dbPath)))
	c.Set("Content-Type", "application/octet-stream")
	return c.SendFile(dbPath)
}
