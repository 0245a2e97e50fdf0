package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/contre95/songsheet/src/music"
	"github.com/gosimple/unidecode"
)

// Filter is the set of active search and filter criteria. Zero values mean "all".
type Filter struct {
	Query    string
	Type     string
	Language string
	Genre    string
	Composer string
	CoSinger string
	Decade   *int
	YearFrom *int
	YearTo   *int
	Sort     string

	// FoldAccents transliterates both the query and the song fields to ASCII before matching.
	FoldAccents bool
}

// IsEmpty reports whether the filter would keep every song.
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Query) == "" && f.Type == "" && f.Language == "" && f.Genre == "" &&
		f.Composer == "" && f.CoSinger == "" && f.Decade == nil && f.YearFrom == nil && f.YearTo == nil
}

// Apply returns the songs that match the filter, sorted by f.Sort.
// The input slice is never modified.
func (f Filter) Apply(all []music.Song) []music.Song {
	query := f.normalize(strings.TrimSpace(f.Query))
	out := make([]music.Song, 0, len(all))
	for _, song := range all {
		if f.matches(song, query) {
			out = append(out, song)
		}
	}
	return SortSongs(out, f.Sort)
}

func (f Filter) normalize(text string) string {
	text = strings.ToLower(text)
	if f.FoldAccents {
		text = unidecode.Unidecode(text)
	}
	return text
}

func (f Filter) matches(song music.Song, query string) bool {
	if query != "" {
		found := false
		for _, field := range []string{song.Title(), song.Movie(), song.Composer(), song.CoSinger(), song.Genre()} {
			if strings.Contains(f.normalize(field), query) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Type != "" && song.Type() != f.Type {
		return false
	}
	if f.Language != "" && song.Language() != f.Language {
		return false
	}
	if f.Genre != "" && song.Genre() != f.Genre {
		return false
	}
	if f.Composer != "" && song.Composer() != f.Composer {
		return false
	}
	if f.CoSinger != "" && !contains(song.CoSingers(), f.CoSinger) {
		return false
	}

	if f.Decade != nil {
		decade, ok := song.Decade()
		if !ok || decade != *f.Decade {
			return false
		}
	}

	if f.YearFrom != nil || f.YearTo != nil {
		year, ok := song.Year()
		if !ok {
			return false
		}
		if f.YearFrom != nil && year < *f.YearFrom {
			return false
		}
		if f.YearTo != nil && year > *f.YearTo {
			return false
		}
	}
	return true
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// Quick filter names.
const (
	QuickRecent  = "recent"
	QuickClassic = "classic"
	QuickGolden  = "golden"
	QuickModern  = "modern"
)

// QuickFilter returns the year range of a named preset.
func QuickFilter(name string, now time.Time) (from, to int, ok bool) {
	switch name {
	case QuickRecent:
		return now.Year() - 10, now.Year(), true
	case QuickClassic:
		return 1980, 2000, true
	case QuickGolden:
		return 1985, 1995, true
	case QuickModern:
		return 2000, 2015, true
	}
	return 0, 0, false
}

// WithQuick replaces the year range with the named preset. The decade filter is
// cleared, like picking a preset in the year controls does.
func (f Filter) WithQuick(name string, now time.Time) (Filter, error) {
	from, to, ok := QuickFilter(name, now)
	if !ok {
		return f, fmt.Errorf("unknown quick filter %q", name)
	}
	f.YearFrom, f.YearTo, f.Decade = &from, &to, nil
	return f, nil
}

// ActiveFilter is a label/value pair shown as a removable chip.
type ActiveFilter struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ActiveFilters lists the filters currently narrowing the results.
func (f Filter) ActiveFilters() []ActiveFilter {
	var active []ActiveFilter
	add := func(key, label, value string) {
		if value != "" {
			active = append(active, ActiveFilter{Key: key, Label: label, Value: value})
		}
	}
	add("type", "Type", f.Type)
	add("language", "Language", f.Language)
	add("genre", "Genre", f.Genre)
	add("composer", "Composer", f.Composer)
	add("cosinger", "Co-Singer", f.CoSinger)
	if f.Decade != nil {
		add("decade", "Decade", fmt.Sprintf("%ds", *f.Decade))
	}
	if f.YearFrom != nil || f.YearTo != nil {
		add("year", "Year Range", boundText(f.YearFrom)+" - "+boundText(f.YearTo))
	}
	return active
}

func boundText(year *int) string {
	if year == nil {
		return "?"
	}
	return strconv.Itoa(*year)
}

// Summary is the results line shown above the grid.
func Summary(shown, total int) string {
	return fmt.Sprintf("Showing %d of %d songs", shown, total)
}

// Options holds the distinct values used to populate the filter dropdowns.
type Options struct {
	Types     []string `json:"types"`
	Languages []string `json:"languages"`
	Genres    []string `json:"genres"`
	Composers []string `json:"composers"`
	CoSingers []string `json:"cosingers"`
	Decades   []int    `json:"decades"`
}

// BuildOptions collects the dropdown values present in songs.
func BuildOptions(songs []music.Song) Options {
	types := map[string]struct{}{}
	languages := map[string]struct{}{}
	genres := map[string]struct{}{}
	composers := map[string]struct{}{}
	cosingers := map[string]struct{}{}
	decades := map[int]struct{}{}

	for _, song := range songs {
		addValue(types, song.Type())
		addValue(languages, song.Language())
		addValue(genres, song.Genre())
		addValue(composers, song.Composer())
		for _, name := range song.CoSingers() {
			addValue(cosingers, name)
		}
		if decade, ok := song.Decade(); ok {
			decades[decade] = struct{}{}
		}
	}

	opts := Options{
		Types:     sortedKeys(types),
		Languages: sortedKeys(languages),
		Genres:    sortedKeys(genres),
		Composers: sortedKeys(composers),
		CoSingers: sortedKeys(cosingers),
		Decades:   make([]int, 0, len(decades)),
	}
	for d := range decades {
		opts.Decades = append(opts.Decades, d)
	}
	sort.Ints(opts.Decades)
	return opts
}

func addValue(set map[string]struct{}, value string) {
	if value != "" {
		set[value] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
