package statistics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/contre95/songsheet/src/music"
)

// TopN is the length of every ranking.
const TopN = 10

// The dashboard reads a narrower set of columns than the song cards do.
func movieOf(s music.Song) string {
	if v := s["movie"]; v != "" {
		return v
	}
	return s["film"]
}

func composerOf(s music.Song) string {
	if v := s["composer"]; v != "" {
		return v
	}
	return s["music director"]
}

func coSingersOf(s music.Song) []string {
	joined := s["cosinger"]
	if joined == "" {
		joined = s["co-singer"]
	}
	return music.SplitNames(joined)
}

// Compute builds the statistics of songs. languages holds the size of every sheet
// and is reported as is, whatever the selection.
func Compute(language string, songs []music.Song, languages []Count) Statistics {
	movies := map[string]struct{}{}
	composers := map[string]int{}
	cosingers := map[string]int{}
	genres := map[string]int{}
	genresWithUnknown := map[string]int{}
	years := map[int]int{}
	decades := map[int]int{}

	for _, song := range songs {
		if movie := movieOf(song); movie != "" {
			movies[movie] = struct{}{}
		}
		if composer := composerOf(song); composer != "" {
			composers[composer]++
		}
		for _, name := range coSingersOf(song) {
			cosingers[name]++
		}
		genre := song.Genre()
		if genre != "" {
			genres[genre]++
		} else {
			genre = "Unknown"
		}
		genresWithUnknown[genre]++
		if year, ok := song.Year(); ok {
			years[year]++
			decades[music.DecadeOf(year)]++
		}
	}

	stats := Statistics{
		Language: language,
		Summary: Summary{
			TotalSongs: len(songs),
			Movies:     len(movies),
			Composers:  len(composers),
			CoSingers:  len(cosingers),
		},
		SongsPerYear:   yearCounts(years),
		SongsPerDecade: decadeCounts(decades),
		Languages:      languages,
		Genres:         top(genresWithUnknown, TopN),
		TopComposers:   top(composers, TopN),
		TopCoSingers:   top(cosingers, TopN),
		TopGenres:      top(genres, TopN),
		TopYears:       topYears(years, TopN),
		Timeline:       timeline(years, decades),
	}
	if len(years) > 0 {
		first, last := yearBounds(years)
		stats.Summary.YearSpan = last - first
		stats.Summary.HasYears = true
	}
	return stats
}

// LanguageCounts reports the size of every sheet under its capitalized name.
func LanguageCounts(sheets map[string]int, order []string) []Count {
	counts := make([]Count, 0, len(order))
	for _, language := range order {
		counts = append(counts, Count{Key: capitalize(language), Value: sheets[language]})
	}
	return counts
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func yearBounds(years map[int]int) (int, int) {
	first, last := 0, 0
	started := false
	for y := range years {
		if !started || y < first {
			first = y
		}
		if !started || y > last {
			last = y
		}
		started = true
	}
	return first, last
}

func sortedInts(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func yearCounts(years map[int]int) []Count {
	counts := make([]Count, 0, len(years))
	for _, y := range sortedInts(years) {
		counts = append(counts, Count{Key: strconv.Itoa(y), Value: years[y]})
	}
	return counts
}

func decadeCounts(decades map[int]int) []Count {
	counts := make([]Count, 0, len(decades))
	for _, d := range sortedInts(decades) {
		counts = append(counts, Count{Key: decadeLabel(d), Value: decades[d]})
	}
	return counts
}

// top returns the n biggest entries, ties broken by key.
func top(m map[string]int, n int) []Count {
	counts := make([]Count, 0, len(m))
	for k, v := range m {
		counts = append(counts, Count{Key: k, Value: v})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Value != counts[j].Value {
			return counts[i].Value > counts[j].Value
		}
		return counts[i].Key < counts[j].Key
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// topYears ranks years by song count, ties broken by the earlier year.
func topYears(years map[int]int, n int) []Count {
	keys := sortedInts(years)
	sort.SliceStable(keys, func(i, j int) bool {
		return years[keys[i]] > years[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	counts := make([]Count, 0, len(keys))
	for _, y := range keys {
		counts = append(counts, Count{Key: strconv.Itoa(y), Value: years[y]})
	}
	return counts
}

// timeline walks the decades from the first to the last dated song, skipping empty ones.
func timeline(years, decades map[int]int) []Milestone {
	if len(years) == 0 {
		return nil
	}
	first, last := yearBounds(years)
	busiest := 0
	for _, n := range decades {
		busiest = max(busiest, n)
	}

	var milestones []Milestone
	for d := music.DecadeOf(first); d <= music.DecadeOf(last); d += 10 {
		n := decades[d]
		if n == 0 {
			continue
		}
		milestones = append(milestones, Milestone{
			Decade: d,
			Label:  decadeLabel(d),
			Songs:  n,
			Width:  float64(n) / float64(busiest) * 100,
		})
	}
	return milestones
}
