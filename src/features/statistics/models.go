package statistics

import (
	"fmt"
	"strconv"

	"github.com/contre95/songsheet/src/music"
)

// ChartData represents data for Chart.js charts.
type ChartData struct {
	Type     string    `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset represents a Chart.js dataset.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     []string  `json:"borderColor,omitempty"`
}

// Count is a label with the number of songs it covers.
type Count struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Summary holds the headline numbers of the dashboard.
type Summary struct {
	TotalSongs int  `json:"totalSongs"`
	Movies     int  `json:"movies"`
	Composers  int  `json:"composers"`
	CoSingers  int  `json:"cosingers"`
	YearSpan   int  `json:"yearSpan"`
	HasYears   bool `json:"hasYears"`
}

// YearSpanText renders the career length card, "-" when no song has a year.
func (s Summary) YearSpanText() string {
	if !s.HasYears {
		return "-"
	}
	return fmt.Sprintf("%d+", s.YearSpan)
}

// Milestone is one decade on the career timeline.
type Milestone struct {
	Decade int     `json:"decade"`
	Label  string  `json:"label"`
	Songs  int     `json:"songs"`
	Width  float64 `json:"width"` // percent of the busiest decade
}

// Statistics is everything the dashboard shows for one selection.
type Statistics struct {
	Language       string      `json:"language"`
	Summary        Summary     `json:"summary"`
	SongsPerYear   []Count     `json:"songsPerYear"`
	SongsPerDecade []Count     `json:"songsPerDecade"`
	Languages      []Count     `json:"languages"`
	Genres         []Count     `json:"genres"`
	TopComposers   []Count     `json:"topComposers"`
	TopCoSingers   []Count     `json:"topCosingers"`
	TopGenres      []Count     `json:"topGenres"`
	TopYears       []Count     `json:"topYears"`
	Timeline       []Milestone `json:"timeline"`
}

// Chart names.
const (
	ChartYear     = "year"
	ChartDecade   = "decade"
	ChartLanguage = "language"
	ChartGenre    = "genre"
)

// Charts lists the available chart names.
var Charts = []string{ChartYear, ChartDecade, ChartLanguage, ChartGenre}

var languagePalette = []string{"#8B4513", "#D2691E", "#CD853F", "#DEB887", "#F4A460", "#FFD700"}

// Chart converts one section of the statistics to chart format.
func (s *Statistics) Chart(name string) (*ChartData, error) {
	switch name {
	case ChartYear:
		return countChart("line", "Songs", s.SongsPerYear, []string{"rgba(210, 105, 30, 0.1)"}, []string{"#D2691E"}), nil
	case ChartDecade:
		return countChart("bar", "Songs", s.SongsPerDecade, []string{"rgba(139, 69, 19, 0.8)"}, []string{"#8B4513"}), nil
	case ChartLanguage:
		colors := make([]string, len(s.Languages))
		for i := range colors {
			colors[i] = languagePalette[i%len(languagePalette)]
		}
		return countChart("doughnut", "Songs", s.Languages, colors, []string{"#fff"}), nil
	case ChartGenre:
		return countChart("bar", "Songs", s.Genres, []string{"rgba(210, 105, 30, 0.8)"}, []string{"#D2691E"}), nil
	}
	return nil, fmt.Errorf("chart %q: %w", name, music.ErrNotFound)
}

func countChart(kind, label string, counts []Count, background, border []string) *ChartData {
	labels := make([]string, len(counts))
	data := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = c.Key
		data[i] = float64(c.Value)
	}
	return &ChartData{
		Type:   kind,
		Labels: labels,
		Datasets: []Dataset{{
			Label:           label,
			Data:            data,
			BackgroundColor: background,
			BorderColor:     border,
		}},
	}
}

func decadeLabel(decade int) string {
	return strconv.Itoa(decade) + "s"
}
