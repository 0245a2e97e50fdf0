package config

import "time"

// Config holds the application configuration.
type Config struct {
	Site     Site              `yaml:"site"`
	Sheets   map[string]string `yaml:"sheets" validate:"required,min=1,dive,keys,required,endkeys,required"`
	Fetch    Fetch             `yaml:"fetch"`
	Catalog  Catalog           `yaml:"catalog"`
	Telegram Telegram          `yaml:"telegram"`
	Logger   Logger            `yaml:"logger"`
	Server   Server            `yaml:"server"`
	Database Database          `yaml:"database"`
	Storage  Storage           `yaml:"storage"`
	Metrics  Metrics           `yaml:"metrics"`
}

// Site describes the artist the discography belongs to.
type Site struct {
	Name    string `yaml:"name" validate:"required"`
	Artist  string `yaml:"artist" validate:"required"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
}

// Fetch holds the configuration for downloading published sheets.
type Fetch struct {
	Timeout         time.Duration `yaml:"timeout"`
	RefreshInterval time.Duration `yaml:"refresh_interval"` // 0 disables periodic reloads
	Concurrency     int           `yaml:"concurrency" validate:"gte=0"`
	WatchLocal      bool          `yaml:"watch_local"` // Reload sheets that point at local files when they change
}

// Catalog holds search behaviour settings.
type Catalog struct {
	FoldAccents bool `yaml:"fold_accents"`
	PageSize    int  `yaml:"page_size" validate:"gte=0"`
}

// Database holds the configuration for the database
type Database struct {
	Path string `yaml:"path" validate:"required"`
}

// Storage holds the configuration for the collection blobs.
type Storage struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
	Views       string `yaml:"views"`
	Public      string `yaml:"public"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled   bool   `yaml:"enabled"`
	Level     string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format    string `yaml:"format" validate:"omitempty,oneof=json text logfmt"`
	HTMXDebug bool   `yaml:"htmx_debug"`
}

type Telegram struct {
	Enabled      bool     `yaml:"enabled"`
	Token        string   `yaml:"token"`
	AllowedUsers []string `yaml:"allowedUsers"`
	BotHandle    string   `yaml:"bot_handle"`
}

// Metrics holds the configuration for the Prometheus endpoint.
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
