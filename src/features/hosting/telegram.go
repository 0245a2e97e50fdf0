package hosting

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/contre95/songsheet/src/features/catalog"
	"github.com/contre95/songsheet/src/features/collections"
	"github.com/contre95/songsheet/src/features/config"
	"github.com/contre95/songsheet/src/features/statistics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramCommandHandler interface that each feature implements
type TelegramCommandHandler interface {
	HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error
	GetCommands() map[string]string                                             // Returns command -> description mapping
	HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool // Handle feature-specific callbacks
}

// TelegramBot handles Telegram bot operations
type TelegramBot struct {
	bot      *tgbotapi.BotAPI
	config   *config.Manager
	handlers map[string]TelegramCommandHandler
	commands map[string]string // command -> feature
	updates  tgbotapi.UpdatesChannel
	stopChan chan struct{}

	mu            sync.Mutex
	pendingInputs map[string]string // chatID_messageID -> menu action
}

// NewTelegramBot creates a new Telegram bot instance
func NewTelegramBot(cfg *config.Manager, catalogService *catalog.Service, collectionsService *collections.Service, statisticsService *statistics.Service) (*TelegramBot, error) {
	telegramConfig := cfg.Get().Telegram

	if !telegramConfig.Enabled {
		return nil, fmt.Errorf("telegram bot is disabled in configuration")
	}
	if telegramConfig.Token == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}

	bot, err := tgbotapi.NewBotAPI(telegramConfig.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	slog.Info("Telegram bot initialized", "username", bot.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	telegramBot := &TelegramBot{
		bot:           bot,
		config:        cfg,
		handlers:      make(map[string]TelegramCommandHandler),
		commands:      make(map[string]string),
		updates:       bot.GetUpdatesChan(updateConfig),
		stopChan:      make(chan struct{}),
		pendingInputs: make(map[string]string),
	}

	telegramBot.RegisterHandler("config", config.NewTelegramHandler(cfg))
	telegramBot.RegisterHandler("catalog", catalog.NewTelegramHandler(catalogService))
	telegramBot.RegisterHandler("collections", collections.NewTelegramHandler(collectionsService))
	telegramBot.RegisterHandler("statistics", statistics.NewTelegramHandler(statisticsService))

	return telegramBot, nil
}

// RegisterHandler registers a feature's command handler and the commands it answers
func (t *TelegramBot) RegisterHandler(feature string, handler TelegramCommandHandler) {
	t.handlers[feature] = handler
	for command := range handler.GetCommands() {
		t.commands[command] = feature
	}
	slog.Debug("Registered Telegram handler", "feature", feature)
}

// Start begins listening for Telegram updates
func (t *TelegramBot) Start() {
	slog.Info("Starting Telegram bot listener")
	for {
		select {
		case update := <-t.updates:
			if update.Message != nil {
				go t.handleMessage(update.Message)
			}
			if update.CallbackQuery != nil {
				go t.handleCallbackQuery(update.CallbackQuery)
			}
		case <-t.stopChan:
			slog.Info("Stopping Telegram bot listener")
			return
		}
	}
}

// Stop gracefully stops the bot
func (t *TelegramBot) Stop() {
	t.bot.StopReceivingUpdates()
	close(t.stopChan)
}

// authorized reports whether the sender is listed in the configuration
func (t *TelegramBot) authorized(user *tgbotapi.User) bool {
	if user == nil {
		return false
	}
	username := user.UserName
	if username == "" {
		username = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	return slices.Contains(t.config.Get().Telegram.AllowedUsers, username)
}

func (t *TelegramBot) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if len(t.config.Get().Telegram.AllowedUsers) == 0 {
		slog.Warn("No allowed users configured", "chat_id", chatID)
		t.sendMessage(chatID, "❌ Access denied: No users configured. Please add users to the config.")
		return
	}
	if !t.authorized(message.From) {
		slog.Warn("Unauthorized user", "chat_id", chatID)
		t.sendMessage(chatID, "Unknown user, please add your user to the config")
		return
	}

	if message.IsCommand() {
		t.handleCommand(chatID, message.Command(), message.CommandArguments())
		return
	}
	if message.ReplyToMessage != nil && t.handleReplyInput(message) {
		return
	}
	t.sendMessage(chatID, "🤖 Send /menu or /help to see available options")
}

func (t *TelegramBot) handleCommand(chatID int64, command, args string) {
	slog.Debug("Processing command", "command", command, "args", args, "chat_id", chatID)

	switch command {
	case "help", "start", "menu":
		t.handleHelp(chatID)
	default:
		if err := t.routeCommand(command, args, chatID); err != nil {
			slog.Error("Failed to handle command", "command", command, "error", err)
			t.sendMessage(chatID, "❌ Failed to process command")
		}
	}
}

// routeCommand routes commands to the feature that registered them
func (t *TelegramBot) routeCommand(command, args string, chatID int64) error {
	feature, exists := t.commands[command]
	if !exists {
		t.sendMessage(chatID, "❌ Unknown command. Send /help to see available commands.")
		return nil
	}
	return t.handlers[feature].HandleCommand(t.bot, chatID, command, args)
}

// escapeMarkdown escapes the characters legacy Markdown treats as markup
func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer("`", "\\`", "*", "\\*", "_", "\\_", "[", "\\[")
	return replacer.Replace(text)
}

func (t *TelegramBot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		slog.Error("Failed to send message", "error", err, "chat_id", chatID)
	}
}

func (t *TelegramBot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	if !t.authorized(callback.From) {
		t.bot.Request(tgbotapi.NewCallback(callback.ID, "Unknown user"))
		return
	}
	if strings.HasPrefix(callback.Data, "menu_") {
		t.handleMenuCallback(callback)
		return
	}
	for _, handler := range t.handlers {
		if handler.HandleCallback(t.bot, callback) {
			break
		}
	}
	t.bot.Request(tgbotapi.NewCallback(callback.ID, ""))
}

// helpText lists every registered command
func (t *TelegramBot) helpText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "*🎶 %s*\n\n", escapeMarkdown(t.config.Get().Site.Name))
	commands := make([]string, 0, len(t.commands))
	for command := range t.commands {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	for _, command := range commands {
		description := t.handlers[t.commands[command]].GetCommands()[command]
		fmt.Fprintf(&b, "/%s - %s\n", escapeMarkdown(command), escapeMarkdown(description))
	}
	return b.String()
}

// handleHelp shows the main menu with an inline keyboard
func (t *TelegramBot) handleHelp(chatID int64) {
	buttons := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("🔎 Search", "menu_search"),
			tgbotapi.NewInlineKeyboardButtonData("🎲 Random", "menu_random"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistics", "menu_stats"),
			tgbotapi.NewInlineKeyboardButtonData("📚 Songs", "menu_songs"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("⭐ Favorites", "menu_favorites"),
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Config", "menu_config"),
		},
	}

	msg := tgbotapi.NewMessage(chatID, t.helpText())
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	if _, err := t.bot.Send(msg); err != nil {
		slog.Error("Failed to send menu", "error", err, "chat_id", chatID)
	}
}

func (t *TelegramBot) handleMenuCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	t.bot.Request(tgbotapi.NewCallback(callback.ID, ""))

	switch callback.Data {
	case "menu_search":
		t.promptForInput(chatID, "🔎 Reply with a title, movie, composer or singer:", "menu_search")
	case "menu_random", "menu_stats", "menu_songs", "menu_favorites", "menu_config":
		t.routeMenuCommand(strings.TrimPrefix(callback.Data, "menu_"), "", chatID)
	case "menu_back":
		t.handleHelp(chatID)
	}
}

// promptForInput sends a message that forces the user to reply
func (t *TelegramBot) promptForInput(chatID int64, promptText, action string) {
	msg := tgbotapi.NewMessage(chatID, promptText)
	msg.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true}

	sent, err := t.bot.Send(msg)
	if err != nil {
		slog.Error("Failed to send prompt", "error", err)
		return
	}
	t.mu.Lock()
	t.pendingInputs[fmt.Sprintf("%d_%d", chatID, sent.MessageID)] = action
	t.mu.Unlock()
}

// handleReplyInput handles replies to our input prompts
func (t *TelegramBot) handleReplyInput(message *tgbotapi.Message) bool {
	key := fmt.Sprintf("%d_%d", message.Chat.ID, message.ReplyToMessage.MessageID)
	t.mu.Lock()
	action, exists := t.pendingInputs[key]
	delete(t.pendingInputs, key)
	t.mu.Unlock()
	if !exists {
		return false
	}

	switch action {
	case "menu_search":
		t.routeMenuCommand("search", message.Text, message.Chat.ID)
	default:
		return false
	}
	return true
}

func (t *TelegramBot) routeMenuCommand(command, args string, chatID int64) {
	if err := t.routeCommand(command, args, chatID); err != nil {
		slog.Error("Failed to handle menu command", "command", command, "error", err)
		t.sendMessage(chatID, "❌ Failed to process menu selection")
	}
}
