package ui

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/contre95/songsheet/src/features/collections"
	"github.com/contre95/songsheet/src/features/config"
	"github.com/gofiber/fiber/v2"
)

type fakeCatalog []string

func (f fakeCatalog) Languages() []string { return f }

type fakeCounter struct{}

func (fakeCounter) Counts(ctx context.Context) (collections.Counts, error) {
	return collections.Counts{Favorites: 2}, nil
}

// recordingViews captures the template and bindings instead of rendering.
type recordingViews struct {
	name string
	data fiber.Map
}

func (v *recordingViews) Load() error { return nil }

func (v *recordingViews) Render(w io.Writer, name string, binding interface{}, layout ...string) error {
	v.name = name
	v.data, _ = binding.(fiber.Map)
	_, err := w.Write([]byte(name))
	return err
}

func newTestApp() (*fiber.App, *recordingViews) {
	views := &recordingViews{}
	app := fiber.New(fiber.Config{Views: views})
	manager := config.NewManager(&config.Config{Site: config.Site{Name: "Chithra Songs", Artist: "K.S. Chithra"}})
	RegisterRoutes(app, NewHandler(manager, fakeCatalog{"malayalam", "tamil"}, fakeCounter{}))
	return app, views
}

func TestRenderLanguage(t *testing.T) {
	app, views := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/ui/Tamil?song=Kannalane", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if views.name != "main" || views.data["Section"] != "language" {
		t.Errorf("expected the full page, got %q %v", views.name, views.data["Section"])
	}
	if views.data["Language"] != "tamil" || views.data["Query"] != "Kannalane" || views.data["Title"] != "Tamil" {
		t.Errorf("unexpected bindings %v", views.data)
	}

	req := httptest.NewRequest("GET", "/ui/all", nil)
	req.Header.Set("HX-Request", "true")
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}
	if views.name != "sections/language" {
		t.Errorf("expected the section for htmx, got %q", views.name)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/ui/klingon", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestFixedPagesBeforeLanguage(t *testing.T) {
	app, views := newTestApp()

	for path, section := range map[string]string{"/ui/favorites": "favorites", "/ui/statistics": "statistics", "/": "home"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusOK || views.data["Section"] != section {
			t.Errorf("%s: expected section %q, got %d %v", path, section, resp.StatusCode, views.data["Section"])
		}
		if counts, _ := views.data["Counts"].(collections.Counts); counts.Favorites != 2 {
			t.Errorf("%s: expected collection counts in the page", path)
		}
	}
}
