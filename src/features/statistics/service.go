package statistics

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/contre95/songsheet/src/features/catalog"
	"github.com/contre95/songsheet/src/music"
)

// SongCatalog is the part of the catalog the dashboard reads.
type SongCatalog interface {
	Songs(ctx context.Context, language string) ([]music.Song, error)
	Sheets(ctx context.Context) ([]catalog.Sheet, error)
}

// Service is the domain service for the statistics feature.
type Service struct {
	catalog SongCatalog
}

// NewService creates a new statistics service.
func NewService(songCatalog SongCatalog) *Service {
	return &Service{catalog: songCatalog}
}

// Statistics computes the dashboard of a language, or of every sheet for catalog.AllLanguages.
func (s *Service) Statistics(ctx context.Context, language string) (Statistics, error) {
	slog.Debug("Statistics service called", "language", language)
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = catalog.AllLanguages
	}

	songs, err := s.catalog.Songs(ctx, language)
	if err != nil {
		return Statistics{}, fmt.Errorf("failed to load songs: %w", err)
	}
	sheets, err := s.catalog.Sheets(ctx)
	if err != nil {
		return Statistics{}, fmt.Errorf("failed to load sheets: %w", err)
	}
	sizes := make(map[string]int, len(sheets))
	order := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		sizes[sheet.Language] = len(sheet.Songs)
		order = append(order, sheet.Language)
	}

	stats := Compute(language, songs, LanguageCounts(sizes, order))
	slog.Debug("Statistics completed", "language", language, "songs", stats.Summary.TotalSongs)
	return stats, nil
}

// Chart returns one dashboard chart in Chart.js format.
func (s *Service) Chart(ctx context.Context, language, name string) (*ChartData, error) {
	stats, err := s.Statistics(ctx, language)
	if err != nil {
		return nil, err
	}
	return stats.Chart(name)
}

// ChartPNG renders one dashboard chart as a PNG image.
func (s *Service) ChartPNG(ctx context.Context, language, name string) ([]byte, error) {
	chart, err := s.Chart(ctx, language, name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := RenderPNG(&buf, chartTitle(name), chart); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func chartTitle(name string) string {
	switch name {
	case ChartYear:
		return "Songs per year"
	case ChartDecade:
		return "Songs per decade"
	case ChartLanguage:
		return "Songs per language"
	case ChartGenre:
		return "Top genres"
	}
	return name
}
