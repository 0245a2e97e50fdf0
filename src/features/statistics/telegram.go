package statistics

import (
	"context"
	"fmt"
	"strings"

	"github.com/contre95/songsheet/src/features/catalog"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for the statistics feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the statistics feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes statistics-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "stats":
		return h.handleStats(bot, chatID, args)
	default:
		_, err := bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown statistics command. Use /stats"))
		return err
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"stats": "Discography statistics, optionally for one language",
	}
}

// HandleCallback handles callback queries for this feature (statistics has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

func (h *TelegramHandler) handleStats(bot *tgbotapi.BotAPI, chatID int64, language string) error {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = catalog.AllLanguages
	}
	ctx := context.Background()
	stats, err := h.service.Statistics(ctx, language)
	if err != nil {
		_, sendErr := bot.Send(tgbotapi.NewMessage(chatID, "❌ Could not compute statistics for "+language))
		return sendErr
	}

	if _, err := bot.Send(tgbotapi.NewMessage(chatID, FormatStatistics(stats))); err != nil {
		return err
	}

	img, err := h.service.ChartPNG(ctx, language, ChartDecade)
	if err != nil || stats.Summary.TotalSongs == 0 {
		return nil
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "decades.png", Bytes: img})
	photo.Caption = "Songs per decade"
	_, err = bot.Send(photo)
	return err
}

// FormatStatistics renders the summary and rankings as plain text.
func FormatStatistics(stats Statistics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Statistics (%s)\n\n", stats.Language)
	fmt.Fprintf(&b, "🎵 Songs: %d\n", stats.Summary.TotalSongs)
	fmt.Fprintf(&b, "🎬 Movies: %d\n", stats.Summary.Movies)
	fmt.Fprintf(&b, "🎼 Composers: %d\n", stats.Summary.Composers)
	fmt.Fprintf(&b, "🎤 Co-singers: %d\n", stats.Summary.CoSingers)
	fmt.Fprintf(&b, "📅 Years active: %s\n", stats.Summary.YearSpanText())

	writeTop := func(title string, counts []Count) {
		if len(counts) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s\n", title)
		for i, c := range counts[:min(len(counts), 5)] {
			fmt.Fprintf(&b, "%d. %s (%d)\n", i+1, c.Key, c.Value)
		}
	}
	writeTop("Top composers", stats.TopComposers)
	writeTop("Top co-singers", stats.TopCoSingers)
	writeTop("Top years", stats.TopYears)
	return b.String()
}
