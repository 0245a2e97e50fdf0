package collections

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for the collections feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the collections feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes collections-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	var (
		text string
		err  error
	)
	switch command {
	case "favorites":
		text, err = h.favorites(context.Background())
	case "playlists":
		text, err = h.playlists(context.Background(), strings.TrimSpace(args))
	default:
		text = "❌ Unknown collections command. Use /favorites or /playlists"
	}
	if err != nil {
		return err
	}
	_, err = bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"favorites": "List favorite songs",
		"playlists": "List playlists, or show one by name",
	}
}

// HandleCallback handles callback queries for this feature (collections has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

func (h *TelegramHandler) favorites(ctx context.Context) (string, error) {
	favorites, err := h.service.Favorites(ctx)
	if err != nil {
		return "", err
	}
	if len(favorites) == 0 {
		return "⭐ No favorites yet", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "⭐ Favorites (%d)\n\n", len(favorites))
	for _, song := range favorites {
		fmt.Fprintf(&b, "• %s", song.Title)
		if song.Movie != "" {
			fmt.Fprintf(&b, " (%s)", song.Movie)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (h *TelegramHandler) playlists(ctx context.Context, name string) (string, error) {
	playlists, err := h.service.Playlists(ctx)
	if err != nil {
		return "", err
	}
	if name != "" {
		for _, p := range playlists {
			if strings.EqualFold(p.Name, name) || p.ID == name {
				return p.Pretty(), nil
			}
		}
		return "❌ No playlist named " + name, nil
	}
	if len(playlists) == 0 {
		return "📝 No playlists yet", nil
	}
	var b strings.Builder
	b.WriteString("📝 Playlists\n\n")
	for _, p := range playlists {
		fmt.Fprintf(&b, "%s %s (%d songs)\n", p.Icon, p.Name, len(p.Songs))
	}
	return b.String(), nil
}
