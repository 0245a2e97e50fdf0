package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/contre95/songsheet/src/features/config"
	"github.com/contre95/songsheet/src/music"
	"github.com/gofiber/fiber/v2"
)

// fakeSource serves canned sheets and counts fetches.
type fakeSource struct {
	mu      sync.Mutex
	sheets  map[string][]music.Song
	fetches map[string]int
}

func newFakeSource(sheets map[string][]music.Song) *fakeSource {
	return &fakeSource{sheets: sheets, fetches: make(map[string]int)}
}

func (f *fakeSource) Fetch(ctx context.Context, source string) []music.Song {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[source]++
	if songs, ok := f.sheets[source]; ok {
		return songs
	}
	return []music.Song{}
}

func newTestManager(sheets map[string]string) *config.Manager {
	return config.NewManager(&config.Config{
		Site:   config.Site{Name: "Test", Artist: "Tester"},
		Sheets: sheets,
		Fetch:  config.Fetch{Concurrency: 2},
	})
}

func newTestService() (*Service, *fakeSource) {
	source := newFakeSource(map[string][]music.Song{
		"mem://tamil": {
			{"song": "Kannalane", "movie": "Bombay", "year": "1995", "composer": "A.R. Rahman"},
			{"song": "Ninnukori Varnam", "movie": "Agni Natchathiram", "year": "1988", "composer": "Ilaiyaraaja"},
		},
		"mem://malayalam": {
			{"song": "Rajahamsame", "movie": "Chamayam", "year": "1993", "composer": "Johnson", "language": "Malayalam"},
		},
	})
	manager := newTestManager(map[string]string{
		"tamil":     "mem://tamil",
		"malayalam": "mem://malayalam",
		"hindi":     "mem://hindi",
	})
	return NewService(source, manager, nil), source
}

func TestService_SongsCachesSheets(t *testing.T) {
	ctx := context.Background()
	service, source := newTestService()

	for i := 0; i < 3; i++ {
		songs, err := service.Songs(ctx, "tamil")
		if err != nil {
			t.Fatal(err)
		}
		if len(songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(songs))
		}
	}
	if source.fetches["mem://tamil"] != 1 {
		t.Errorf("expected a single fetch, got %d", source.fetches["mem://tamil"])
	}

	if _, err := service.Reload(ctx, "tamil"); err != nil {
		t.Fatal(err)
	}
	if source.fetches["mem://tamil"] != 2 {
		t.Errorf("expected reload to fetch again, got %d", source.fetches["mem://tamil"])
	}
}

func TestService_UnknownLanguage(t *testing.T) {
	service, _ := newTestService()
	if _, err := service.Songs(context.Background(), "klingon"); !errors.Is(err, music.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_AllLanguages(t *testing.T) {
	ctx := context.Background()
	service, source := newTestService()

	if err := service.LoadAll(ctx); err != nil {
		t.Fatal(err)
	}
	all, err := service.Songs(ctx, AllLanguages)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 songs across sheets, got %d", len(all))
	}
	// hindi, malayalam, tamil
	if all[0].Language() != "Malayalam" || all[1].Language() != "tamil" {
		t.Errorf("expected sheet language to fill missing columns, got %q and %q", all[0].Language(), all[1].Language())
	}
	for src, n := range source.fetches {
		if n != 1 {
			t.Errorf("expected one fetch of %s, got %d", src, n)
		}
	}

	tamil, _ := service.Songs(ctx, "tamil")
	if tamil[0].Language() != "" {
		t.Error("the union must not modify cached rows")
	}
}

func TestService_Search(t *testing.T) {
	service, _ := newTestService()
	result, err := service.Search(context.Background(), "tamil", Filter{Query: "ilaiyaraaja"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Summary() != "Showing 1 of 2 songs" {
		t.Errorf("unexpected summary %q", result.Summary())
	}
	cards := result.Cards()
	if len(cards) != 1 || cards[0].Language != "tamil" || cards[0].LanguageClass != "tamil" {
		t.Errorf("unexpected cards %+v", cards)
	}
}

func TestService_FindByTitle(t *testing.T) {
	service, _ := newTestService()
	song, err := service.FindByTitle(context.Background(), "tamil", "kannalane")
	if err != nil || song.Movie() != "Bombay" {
		t.Errorf("expected Kannalane, got %v (%v)", song, err)
	}
	if _, err := service.FindByTitle(context.Background(), "tamil", "nope"); !errors.Is(err, music.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

type fakeFavorites struct{ keys map[music.SongKey]bool }

func (f fakeFavorites) FavoriteKeys(ctx context.Context) (map[music.SongKey]bool, error) {
	return f.keys, nil
}

func TestHandler_GetSongsJSON(t *testing.T) {
	service, _ := newTestService()
	app := fiber.New()
	RegisterRoutes(app, service, fakeFavorites{keys: map[music.SongKey]bool{{Title: "Kannalane", Movie: "Bombay"}: true}})

	resp, err := app.Test(httptest.NewRequest("GET", "/songs/tamil?q=bombay&quick=golden&sort=year", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Summary string `json:"summary"`
		Songs   []Card `json:"songs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Summary != "Showing 1 of 2 songs" {
		t.Errorf("unexpected summary %q", body.Summary)
	}
	if len(body.Songs) != 1 || !body.Songs[0].Favorite {
		t.Errorf("expected Kannalane marked as favorite, got %+v", body.Songs)
	}
}

func TestHandler_Errors(t *testing.T) {
	service, _ := newTestService()
	app := fiber.New()
	RegisterRoutes(app, service, nil)

	cases := map[string]int{
		"/songs/klingon":               fiber.StatusNotFound,
		"/songs/tamil?decade=nineties": fiber.StatusBadRequest,
		"/songs/tamil?quick=vintage":   fiber.StatusBadRequest,
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != want {
			t.Errorf("%s: expected %d, got %d", path, want, resp.StatusCode)
		}
	}
}

func TestHandler_ExportCSV(t *testing.T) {
	service, _ := newTestService()
	app := fiber.New()
	RegisterRoutes(app, service, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/songs/tamil/export.csv?sort=title", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", body)
	}
	if !strings.HasPrefix(lines[0], "Song,Movie,Year") || !strings.HasPrefix(lines[1], "Kannalane,Bombay,1995") {
		t.Errorf("unexpected csv %q", body)
	}
	if !strings.Contains(resp.Header.Get("Content-Disposition"), "tamil-songs.csv") {
		t.Errorf("unexpected disposition %q", resp.Header.Get("Content-Disposition"))
	}
}

func TestHandler_ReloadKeepsCacheKeys(t *testing.T) {
	service, _ := newTestService()
	app := fiber.New()
	RegisterRoutes(app, service, nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/songs/tamil/reload", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode >= fiber.StatusBadRequest {
		t.Fatalf("reload failed with %d", resp.StatusCode)
	}
	for _, q := range []string{"a", "bombay", "rahman", "x", "ilaiyaraaja"} {
		for _, language := range []string{"hindi", "malayalam"} {
			resp, err := app.Test(httptest.NewRequest("GET", "/songs/"+language+"?q="+q, nil))
			if err != nil {
				t.Fatal(err)
			}
			io.Copy(io.Discard, resp.Body)
		}
	}

	service.mu.RLock()
	defer service.mu.RUnlock()
	if len(service.sheets) != 3 {
		t.Errorf("expected 3 cached sheets, got %d", len(service.sheets))
	}
	for key, sheet := range service.sheets {
		if key != sheet.Language {
			t.Errorf("cache key %q holds sheet for %q", key, sheet.Language)
		}
	}
	tamil, ok := service.sheets["tamil"]
	if !ok {
		t.Fatal("tamil sheet missing from cache")
	}
	if len(tamil.Songs) != 2 {
		t.Errorf("expected 2 tamil songs, got %d", len(tamil.Songs))
	}
}
