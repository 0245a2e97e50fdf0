package catalog

import (
	"reflect"
	"testing"
	"time"

	"github.com/contre95/songsheet/src/music"
)

func intPtr(v int) *int { return &v }

func sampleSongs() []music.Song {
	return []music.Song{
		{"song": "Manjal Prasadavum", "movie": "Nakhakshathangal", "year": "1986", "composer": "Bombay Ravi", "genre": "Melody", "type": "Film"},
		{"song": "Kannalane", "movie": "Bombay", "year": "1995", "composer": "A.R. Rahman", "cosinger": "Chorus", "genre": "Melody", "type": "Film"},
		{"song": "Paadariyen", "movie": "Sargam", "year": "1992", "composer": "Bombay Ravi", "cosinger": "K.J. Yesudas, Chorus", "genre": "Classical", "type": "Film"},
		{"song": "Ormakal", "album": "Devotional Hits", "year": "2008", "music": "Berny Ignatius", "genre": "Devotional", "type": "Album"},
		{"song": "Undated", "movie": "Unknown", "year": "", "composer": "Someone", "type": "Film"},
		{"title": "Rajahamsame", "movie": "Chamayam", "year": "1993 (remastered)", "composer": "Johnson", "language": "Malayalam", "type": "Film"},
	}
}

func titles(songs []music.Song) []string {
	out := make([]string, 0, len(songs))
	for _, s := range songs {
		out = append(out, s.Title())
	}
	return out
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty keeps everything", Filter{}, []string{"Manjal Prasadavum", "Kannalane", "Paadariyen", "Ormakal", "Undated", "Rajahamsame"}},
		{"search title", Filter{Query: "kanna"}, []string{"Kannalane"}},
		{"search is case insensitive over composer", Filter{Query: "BOMBAY RAVI"}, []string{"Manjal Prasadavum", "Paadariyen"}},
		{"search movie", Filter{Query: "bombay"}, []string{"Manjal Prasadavum", "Kannalane", "Paadariyen"}},
		{"search co-singer", Filter{Query: "yesudas"}, []string{"Paadariyen"}},
		{"search genre", Filter{Query: "devotional"}, []string{"Ormakal"}},
		{"search trims whitespace", Filter{Query: "  ormakal  "}, []string{"Ormakal"}},
		{"type exact", Filter{Type: "Album"}, []string{"Ormakal"}},
		{"genre exact", Filter{Genre: "Melody"}, []string{"Manjal Prasadavum", "Kannalane"}},
		{"composer uses aliases", Filter{Composer: "Berny Ignatius"}, []string{"Ormakal"}},
		{"co-singer membership", Filter{CoSinger: "Chorus"}, []string{"Kannalane", "Paadariyen"}},
		{"co-singer is not a substring match", Filter{CoSinger: "Yesu"}, nil},
		{"language exact", Filter{Language: "Malayalam"}, []string{"Rajahamsame"}},
		{"decade", Filter{Decade: intPtr(1990)}, []string{"Kannalane", "Paadariyen", "Rajahamsame"}},
		{"year from inclusive", Filter{YearFrom: intPtr(1995)}, []string{"Kannalane", "Ormakal"}},
		{"year to inclusive", Filter{YearTo: intPtr(1992)}, []string{"Manjal Prasadavum", "Paadariyen"}},
		{"year range excludes undated", Filter{YearFrom: intPtr(1900), YearTo: intPtr(2100)}, []string{"Manjal Prasadavum", "Kannalane", "Paadariyen", "Ormakal", "Rajahamsame"}},
		{"combined", Filter{Genre: "Melody", YearFrom: intPtr(1990)}, []string{"Kannalane"}},
		{"sorted by title", Filter{Genre: "Melody", Sort: "title"}, []string{"Kannalane", "Manjal Prasadavum"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(tt.filter.Apply(sampleSongs()))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterApply_FoldAccents(t *testing.T) {
	songs := []music.Song{{"song": "Café Nights", "movie": "Paris"}}

	if got := (Filter{Query: "cafe"}).Apply(songs); len(got) != 0 {
		t.Errorf("expected no match without folding, got %v", titles(got))
	}
	if got := (Filter{Query: "cafe", FoldAccents: true}).Apply(songs); len(got) != 1 {
		t.Errorf("expected a match with folding, got %v", titles(got))
	}
}

func TestFilterApply_IsPure(t *testing.T) {
	all := sampleSongs()
	before := titles(all)

	filter := Filter{Query: "a", Sort: "-year"}
	filter.Apply(all)

	if !reflect.DeepEqual(titles(all), before) {
		t.Errorf("Apply reordered its input: %v", titles(all))
	}
	if !reflect.DeepEqual(all, sampleSongs()) {
		t.Error("Apply modified its input")
	}
}

func TestFilterApply_IsIdempotent(t *testing.T) {
	filters := []Filter{
		{},
		{Query: "bombay"},
		{CoSinger: "Chorus", Sort: "year"},
		{YearFrom: intPtr(1985), YearTo: intPtr(1995), Sort: "-title"},
		{Decade: intPtr(1990), Genre: "Melody"},
	}
	for _, f := range filters {
		once := f.Apply(sampleSongs())
		twice := f.Apply(once)
		if !reflect.DeepEqual(titles(once), titles(twice)) {
			t.Errorf("filter %+v not idempotent: %v then %v", f, titles(once), titles(twice))
		}
	}
}

func TestQuickFilter(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		from, to int
		ok       bool
	}{
		{QuickRecent, 2016, 2026, true},
		{QuickClassic, 1980, 2000, true},
		{QuickGolden, 1985, 1995, true},
		{QuickModern, 2000, 2015, true},
		{"vintage", 0, 0, false},
	}
	for _, tt := range tests {
		from, to, ok := QuickFilter(tt.name, now)
		if from != tt.from || to != tt.to || ok != tt.ok {
			t.Errorf("QuickFilter(%q) = (%d, %d, %v), want (%d, %d, %v)", tt.name, from, to, ok, tt.from, tt.to, tt.ok)
		}
	}

	f, err := Filter{Decade: intPtr(1990)}.WithQuick(QuickGolden, now)
	if err != nil {
		t.Fatal(err)
	}
	if f.Decade != nil || *f.YearFrom != 1985 || *f.YearTo != 1995 {
		t.Errorf("unexpected filter after quick preset: %+v", f)
	}
	if _, err := (Filter{}).WithQuick("vintage", now); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestActiveFilters(t *testing.T) {
	f := Filter{Query: "ignored", Genre: "Melody", CoSinger: "Chorus", Decade: intPtr(1990), YearTo: intPtr(1995)}
	got := f.ActiveFilters()
	want := []ActiveFilter{
		{Key: "genre", Label: "Genre", Value: "Melody"},
		{Key: "cosinger", Label: "Co-Singer", Value: "Chorus"},
		{Key: "decade", Label: "Decade", Value: "1990s"},
		{Key: "year", Label: "Year Range", Value: "? - 1995"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if (Filter{}).ActiveFilters() != nil {
		t.Error("expected no active filters")
	}
}

func TestSummary(t *testing.T) {
	if got := Summary(3, 120); got != "Showing 3 of 120 songs" {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions(sampleSongs())

	if !reflect.DeepEqual(opts.Types, []string{"Album", "Film"}) {
		t.Errorf("types: %v", opts.Types)
	}
	if !reflect.DeepEqual(opts.CoSingers, []string{"Chorus", "K.J. Yesudas"}) {
		t.Errorf("co-singers: %v", opts.CoSingers)
	}
	if !reflect.DeepEqual(opts.Decades, []int{1980, 1990, 2000}) {
		t.Errorf("decades: %v", opts.Decades)
	}
	if !reflect.DeepEqual(opts.Composers, []string{"A.R. Rahman", "Berny Ignatius", "Bombay Ravi", "Johnson", "Someone"}) {
		t.Errorf("composers: %v", opts.Composers)
	}
	if !reflect.DeepEqual(opts.Languages, []string{"Malayalam"}) {
		t.Errorf("languages: %v", opts.Languages)
	}
}

func TestSortSongs(t *testing.T) {
	tests := []struct {
		by   string
		want []string
	}{
		{"", []string{"Manjal Prasadavum", "Kannalane", "Paadariyen", "Ormakal", "Undated", "Rajahamsame"}},
		{"year", []string{"Manjal Prasadavum", "Paadariyen", "Rajahamsame", "Kannalane", "Ormakal", "Undated"}},
		{"-year", []string{"Ormakal", "Kannalane", "Rajahamsame", "Paadariyen", "Manjal Prasadavum", "Undated"}},
		{"title", []string{"Kannalane", "Manjal Prasadavum", "Ormakal", "Paadariyen", "Rajahamsame", "Undated"}},
		{"-movie", []string{"Unknown", "Sargam", "Nakhakshathangal", "Devotional Hits", "Chamayam", "Bombay"}},
	}
	for _, tt := range tests {
		t.Run(tt.by, func(t *testing.T) {
			sorted := SortSongs(sampleSongs(), tt.by)
			got := titles(sorted)
			if tt.by == "-movie" {
				got = got[:0]
				for _, s := range sorted {
					got = append(got, s.Movie())
				}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortSongs(%q) = %v, want %v", tt.by, got, tt.want)
			}
		})
	}
}
