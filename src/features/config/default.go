package config

import (
	"maps"
	"time"
)

var defaultConfig = Config{
	Site: Site{
		Name:    "Songsheet",
		Artist:  "K.S. Chithra",
		BaseURL: "http://localhost:3535",
	},
	// Published Google Sheets CSV links (.../pub?gid=<tab>&single=true&output=csv) or local files.
	Sheets: map[string]string{
		"malayalam": "./sheets/malayalam.csv",
		"tamil":     "./sheets/tamil.csv",
		"telugu":    "./sheets/telugu.csv",
		"kannada":   "./sheets/kannada.csv",
		"hindi":     "./sheets/hindi.csv",
		"other":     "./sheets/other.csv",
	},
	Fetch: Fetch{
		Timeout:         15 * time.Second,
		RefreshInterval: 0,
		Concurrency:     3,
		WatchLocal:      true,
	},
	Catalog: Catalog{
		FoldAccents: false,
		PageSize:    0,
	},
	Telegram: Telegram{
		Enabled:      false,
		Token:        "",                                   // Can be obtained with https://t.me/BotFather
		AllowedUsers: []string{"<your_telegram_username>"}, // No @
		BotHandle:    "@<YourTelegramUserBot>",             // With @
	},
	Logger: Logger{
		Enabled:   true,
		Level:     "info",
		Format:    "text",
		HTMXDebug: false,
	},
	Server: Server{
		PrintRoutes: false,
		Port:        3535,
		Views:       "./views",
		Public:      "./public",
	},
	Database: Database{
		Path: "./songsheet.db",
	},
	Storage: Storage{
		KeyPrefix: "songsheet_",
	},
	Metrics: Metrics{
		Enabled: true,
		Path:    "/metrics",
	},
}

// createDefaultConfig returns a copy of the defaults that callers may mutate.
func createDefaultConfig() *Config {
	cfg := defaultConfig
	cfg.Sheets = maps.Clone(defaultConfig.Sheets)
	cfg.Telegram.AllowedUsers = append([]string(nil), defaultConfig.Telegram.AllowedUsers...)
	return &cfg
}
