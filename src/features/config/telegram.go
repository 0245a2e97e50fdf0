package config

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for the config feature
type TelegramHandler struct {
	configManager *Manager
}

// NewTelegramHandler creates a new Telegram handler for the config feature
func NewTelegramHandler(configManager *Manager) *TelegramHandler {
	return &TelegramHandler{configManager: configManager}
}

// HandleCommand processes config-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "config":
		return h.handleConfig(bot, chatID)
	case "sheets":
		return h.handleSheets(bot, chatID)
	default:
		msg := tgbotapi.NewMessage(chatID, "❌ Unknown config command. Use /config or /sheets")
		bot.Send(msg)
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"config": "Show configuration",
		"sheets": "List the configured language sheets",
	}
}

// HandleCallback handles callback queries for this feature (config has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

func (h *TelegramHandler) handleConfig(bot *tgbotapi.BotAPI, chatID int64) error {
	message := fmt.Sprintf("⚙️ *Configuration*\n\n```yaml\n%s\n```", h.configManager.GetYAML())
	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := bot.Send(msg)
	return err
}

func (h *TelegramHandler) handleSheets(bot *tgbotapi.BotAPI, chatID int64) error {
	var b strings.Builder
	b.WriteString("📄 Sheets\n\n")
	for _, language := range h.configManager.Languages() {
		b.WriteString("• " + language + "\n")
	}
	_, err := bot.Send(tgbotapi.NewMessage(chatID, b.String()))
	return err
}
