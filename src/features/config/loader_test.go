package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_CreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	manager, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config file to be written: %v", err)
	}
	if len(manager.Languages()) != len(defaultConfig.Sheets) {
		t.Errorf("expected %d languages, got %d", len(defaultConfig.Sheets), len(manager.Languages()))
	}
}

func TestLoad_ReadsYAMLAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `site:
  name: Chithra Songs
  artist: K.S. Chithra
sheets:
  tamil: https://example.com/tamil.csv
fetch:
  timeout: 5s
database:
  path: ./test.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	manager, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cfg := manager.Get()
	if got := manager.Languages(); len(got) != 1 || got[0] != "tamil" {
		t.Errorf("expected only the tamil sheet, got %v", got)
	}
	if cfg.Fetch.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.Fetch.Timeout)
	}
	if cfg.Server.Port != defaultConfig.Server.Port {
		t.Errorf("expected default port to survive, got %d", cfg.Server.Port)
	}
}

func TestLoad_RejectsMissingSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `site:
  name: Empty
  artist: Nobody
database:
  path: ./test.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "validation") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestManager_RedactsToken(t *testing.T) {
	cfg := createDefaultConfig()
	cfg.Telegram.Token = "123:secret"
	manager := NewManager(cfg)

	if strings.Contains(manager.GetYAML(), "123:secret") || strings.Contains(manager.GetJSON(), "123:secret") {
		t.Error("expected token to be redacted")
	}
	if manager.Get().Telegram.Token != "123:secret" {
		t.Error("redaction must not change the live config")
	}
}
