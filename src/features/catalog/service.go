package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/contre95/songsheet/src/features/config"
	"github.com/contre95/songsheet/src/infra/telemetry"
	"github.com/contre95/songsheet/src/music"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// AllLanguages selects the union of every configured sheet.
const AllLanguages = "all"

// Sheet is the cached content of one language sheet.
type Sheet struct {
	Language string
	Songs    []music.Song
	LoadedAt time.Time
}

// Service is the domain service for the catalog feature.
type Service struct {
	source        music.SongSource
	configManager *config.Manager
	metrics       *telemetry.Collectors

	mu     sync.RWMutex
	sheets map[string]Sheet
	group  singleflight.Group
	now    func() time.Time
}

// NewService creates a new catalog service.
func NewService(source music.SongSource, cfgManager *config.Manager, metrics *telemetry.Collectors) *Service {
	if metrics == nil {
		metrics = telemetry.Nop()
	}
	return &Service{
		source:        source,
		configManager: cfgManager,
		metrics:       metrics,
		sheets:        make(map[string]Sheet),
		now:           time.Now,
	}
}

// Languages returns the configured sheet names.
func (s *Service) Languages() []string {
	return s.configManager.Languages()
}

// Songs returns the songs of a language, fetching the sheet on first use.
// AllLanguages returns every sheet concatenated in language order, with rows lacking a
// language column tagged with their sheet name.
func (s *Service) Songs(ctx context.Context, language string) ([]music.Song, error) {
	if language == AllLanguages {
		sheets, err := s.Sheets(ctx)
		if err != nil {
			return nil, err
		}
		var all []music.Song
		for _, sheet := range sheets {
			for _, song := range sheet.Songs {
				if song.Language() == "" {
					song = song.With("language", sheet.Language)
				}
				all = append(all, song)
			}
		}
		return all, nil
	}
	sheet, err := s.Sheet(ctx, language)
	if err != nil {
		return nil, err
	}
	return sheet.Songs, nil
}

// Sheet returns the cached sheet of a language, fetching it on first use.
func (s *Service) Sheet(ctx context.Context, language string) (Sheet, error) {
	s.mu.RLock()
	sheet, ok := s.sheets[language]
	s.mu.RUnlock()
	if ok {
		return sheet, nil
	}
	return s.Reload(ctx, language)
}

// Sheets returns every configured sheet, loading the missing ones.
func (s *Service) Sheets(ctx context.Context) ([]Sheet, error) {
	if err := s.loadMissing(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheets := make([]Sheet, 0, len(s.sheets))
	for _, language := range s.Languages() {
		if sheet, ok := s.sheets[language]; ok {
			sheets = append(sheets, sheet)
		}
	}
	return sheets, nil
}

// Reload fetches a language sheet again and replaces the cached copy.
// Concurrent reloads of the same language share one fetch.
func (s *Service) Reload(ctx context.Context, language string) (Sheet, error) {
	// language becomes a cache key and a metric label, so it must not alias a request buffer.
	language = strings.Clone(language)
	slog.Debug("Reload service called", "language", language)
	source, ok := s.configManager.SheetURL(language)
	if !ok {
		return Sheet{}, fmt.Errorf("language %q: %w", language, music.ErrNotFound)
	}

	v, err, _ := s.group.Do(language, func() (any, error) {
		s.metrics.SheetFetches.WithLabelValues(language).Inc()
		songs := s.source.Fetch(ctx, source)
		sheet := Sheet{Language: language, Songs: songs, LoadedAt: s.now()}

		s.mu.Lock()
		s.sheets[language] = sheet
		s.mu.Unlock()

		s.metrics.SongsLoaded.WithLabelValues(language).Set(float64(len(songs)))
		return sheet, nil
	})
	if err != nil {
		return Sheet{}, err
	}
	sheet := v.(Sheet)
	slog.Debug("Reload completed", "language", language, "songs", len(sheet.Songs))
	return sheet, nil
}

// LoadAll fetches every configured sheet with bounded concurrency.
func (s *Service) LoadAll(ctx context.Context) error {
	return s.load(ctx, s.Languages())
}

func (s *Service) loadMissing(ctx context.Context) error {
	s.mu.RLock()
	var missing []string
	for _, language := range s.Languages() {
		if _, ok := s.sheets[language]; !ok {
			missing = append(missing, language)
		}
	}
	s.mu.RUnlock()
	if len(missing) == 0 {
		return nil
	}
	return s.load(ctx, missing)
}

func (s *Service) load(ctx context.Context, languages []string) error {
	slog.Debug("LoadAll service called", "languages", len(languages))
	g, ctx := errgroup.WithContext(ctx)
	if limit := s.configManager.Get().Fetch.Concurrency; limit > 0 {
		g.SetLimit(limit)
	}
	for _, language := range languages {
		g.Go(func() error {
			_, err := s.Reload(ctx, language)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("LoadAll failed", "error", err)
		return err
	}
	slog.Debug("LoadAll completed", "languages", len(languages))
	return nil
}

// Search filters the songs of a language.
func (s *Service) Search(ctx context.Context, language string, filter Filter) (Result, error) {
	slog.Debug("Search service called", "language", language, "query", filter.Query)
	all, err := s.Songs(ctx, language)
	if err != nil {
		return Result{}, err
	}
	filter.FoldAccents = s.configManager.Get().Catalog.FoldAccents
	songs := filter.Apply(all)
	slog.Debug("Search completed", "language", language, "matches", len(songs), "total", len(all))
	return Result{
		Language: language,
		Songs:    songs,
		Total:    len(all),
		Filter:   filter,
	}, nil
}

// Find returns the first song of a language with the given title and movie.
func (s *Service) Find(ctx context.Context, language string, key music.SongKey) (music.Song, error) {
	songs, err := s.Songs(ctx, language)
	if err != nil {
		return nil, err
	}
	for _, song := range songs {
		if song.Key() == key {
			return song, nil
		}
	}
	return nil, fmt.Errorf("song %q: %w", key.Title, music.ErrNotFound)
}

// FindByTitle returns the first song whose title matches case-insensitively.
// Shared links only carry the title.
func (s *Service) FindByTitle(ctx context.Context, language, title string) (music.Song, error) {
	songs, err := s.Songs(ctx, language)
	if err != nil {
		return nil, err
	}
	for _, song := range songs {
		if strings.EqualFold(song.Title(), title) {
			return song, nil
		}
	}
	return nil, fmt.Errorf("song %q: %w", title, music.ErrNotFound)
}

// StartRefresh reloads every sheet on the configured interval until ctx is done.
func (s *Service) StartRefresh(ctx context.Context) {
	interval := s.configManager.Get().Fetch.RefreshInterval
	if interval <= 0 {
		return
	}
	slog.Info("Periodic sheet refresh enabled", "interval", interval)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.LoadAll(ctx); err != nil {
					slog.Error("Periodic sheet refresh failed", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Result is a filtered view over a language sheet.
type Result struct {
	Language string
	Songs    []music.Song
	Total    int
	Filter   Filter
}

// Summary is the "Showing N of M songs" line.
func (r Result) Summary() string {
	return Summary(len(r.Songs), r.Total)
}

// Cards converts the matching songs to card view models.
func (r Result) Cards() []Card {
	if r.Language == AllLanguages {
		return NewCards(r.Songs, "")
	}
	return NewCards(r.Songs, r.Language)
}
