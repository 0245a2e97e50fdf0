package config

import (
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func postSheet(t *testing.T, app *fiber.App, language, source string) {
	t.Helper()
	form := url.Values{"language": {language}, "url": {source}}
	req := httptest.NewRequest("POST", "/settings/sheets", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for %s, got %d", language, resp.StatusCode)
	}
}

func TestHandler_UpdateSheetKeepsEntries(t *testing.T) {
	manager := NewManager(createDefaultConfig())
	app := fiber.New()
	RegisterRoutes(app, manager, filepath.Join(t.TempDir(), "config.yaml"))

	postSheet(t, app, "sanskrit", "https://example.com/sanskrit.csv")
	postSheet(t, app, "bengali", "https://example.com/bengali.csv")
	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/settings?fmt=json", nil))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	sheets := manager.Get().Sheets
	want := map[string]string{
		"sanskrit": "https://example.com/sanskrit.csv",
		"bengali":  "https://example.com/bengali.csv",
	}
	for language, source := range want {
		if got, ok := sheets[language]; !ok || got != source {
			t.Errorf("expected %s -> %s, got %q (present=%v)", language, source, got, ok)
		}
	}
	if len(sheets) != len(defaultConfig.Sheets)+2 {
		t.Errorf("expected %d sheets, got %d: %v", len(defaultConfig.Sheets)+2, len(sheets), sheets)
	}
}

func TestHandler_UpdateSheetRequiresFields(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, NewManager(createDefaultConfig()), filepath.Join(t.TempDir(), "config.yaml"))

	form := url.Values{"language": {"tulu"}}
	req := httptest.NewRequest("POST", "/settings/sheets", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
