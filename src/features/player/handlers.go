package player

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/contre95/songsheet/src/features/collections"
	"github.com/contre95/songsheet/src/music"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the player feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the player feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Play opens the posted song in the mini-player.
func (h *Handler) Play(c *fiber.Ctx) error {
	song, err := collections.ParseSong(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	playing, err := h.service.Play(c.Context(), song)
	htmx := strings.Contains(c.Get("Accept"), "text/html") || c.Get("HX-Request") == "true"
	if errors.Is(err, music.ErrNoVideo) {
		if htmx {
			c.Set("HX-Retarget", "#toast")
			return c.Render("toast/toastErr", fiber.Map{"Msg": err.Error()})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		slog.Error("Error playing song", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error playing song")
	}

	if htmx {
		c.Set("HX-Trigger", "collectionsChanged")
		return c.Render("player/mini", fiber.Map{"Playing": playing})
	}
	return c.JSON(playing)
}
