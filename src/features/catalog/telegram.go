package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/contre95/songsheet/src/music"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const telegramMaxResults = 10

// TelegramHandler handles Telegram commands for the catalog feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the catalog feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes catalog-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "search":
		return h.handleSearch(bot, chatID, args)
	case "random":
		return h.handleRandom(bot, chatID, args)
	case "songs":
		return h.handleSongs(bot, chatID)
	default:
		_, err := bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown catalog command. Use /search, /random or /songs"))
		return err
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"search": "Search songs in every language",
		"random": "Suggest a random song, optionally from one language",
		"songs":  "Song counts per language",
	}
}

// HandleCallback handles callback queries for this feature (catalog has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

func (h *TelegramHandler) handleSearch(bot *tgbotapi.BotAPI, chatID int64, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		_, err := bot.Send(tgbotapi.NewMessage(chatID, "Usage: /search <title, movie, composer or singer>"))
		return err
	}

	result, err := h.service.Search(context.Background(), AllLanguages, Filter{Query: query})
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔎 %s\n\n", result.Summary())
	for i, song := range result.Songs {
		if i == telegramMaxResults {
			fmt.Fprintf(&b, "… and %d more\n", len(result.Songs)-telegramMaxResults)
			break
		}
		b.WriteString(FormatSong(song))
	}
	_, err = bot.Send(tgbotapi.NewMessage(chatID, b.String()))
	return err
}

func (h *TelegramHandler) handleRandom(bot *tgbotapi.BotAPI, chatID int64, language string) error {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = AllLanguages
	}
	songs, err := h.service.Songs(context.Background(), language)
	if err != nil {
		_, sendErr := bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown language "+language))
		return sendErr
	}
	if len(songs) == 0 {
		_, err := bot.Send(tgbotapi.NewMessage(chatID, "📭 No songs loaded"))
		return err
	}
	song := songs[rand.IntN(len(songs))]
	_, err = bot.Send(tgbotapi.NewMessage(chatID, "🎲 "+FormatSong(song)))
	return err
}

func (h *TelegramHandler) handleSongs(bot *tgbotapi.BotAPI, chatID int64) error {
	sheets, err := h.service.Sheets(context.Background())
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("📚 Songs per language\n\n")
	total := 0
	for _, sheet := range sheets {
		fmt.Fprintf(&b, "• %s: %d\n", sheet.Language, len(sheet.Songs))
		total += len(sheet.Songs)
	}
	fmt.Fprintf(&b, "\nTotal: %d", total)
	_, err = bot.Send(tgbotapi.NewMessage(chatID, b.String()))
	return err
}

// FormatSong renders one song as a plain text line.
func FormatSong(song music.Song) string {
	var b strings.Builder
	b.WriteString("🎵 " + song.DisplayTitle())
	if movie := song.Movie(); movie != "" {
		b.WriteString(" (" + movie)
		if year := song.YearText(); year != "" {
			b.WriteString(", " + year)
		}
		b.WriteString(")")
	}
	if cosinger := song.CoSinger(); cosinger != "" {
		b.WriteString(" with " + cosinger)
	}
	if link := song.VideoURL(); link != "" {
		b.WriteString("\n   " + link)
	}
	b.WriteString("\n")
	return b.String()
}
