package music

import (
	"testing"
	"time"
)

func TestSongAliases(t *testing.T) {
	song := Song{
		"song":           "Manjal Prasadavum",
		"film":           "Nakhakshathangal",
		"music director": "Bombay Ravi",
		"co-singer":      " K.J. Yesudas ,, P. Jayachandran ",
		"category":       "Melody",
		"youtube link":   "https://youtu.be/abcdefghijk",
		"type":           "Film Song",
	}

	if got := song.Title(); got != "Manjal Prasadavum" {
		t.Errorf("Title() = %q", got)
	}
	if got := song.Movie(); got != "Nakhakshathangal" {
		t.Errorf("Movie() = %q", got)
	}
	if got := song.Composer(); got != "Bombay Ravi" {
		t.Errorf("Composer() = %q", got)
	}
	if got := song.Genre(); got != "Melody" {
		t.Errorf("Genre() = %q", got)
	}
	if !song.HasVideo() {
		t.Error("expected song to have a video")
	}
	if got := song.MovieLabel(); got != "Movie:" {
		t.Errorf("MovieLabel() = %q", got)
	}

	singers := song.CoSingers()
	if len(singers) != 2 || singers[0] != "K.J. Yesudas" || singers[1] != "P. Jayachandran" {
		t.Errorf("CoSingers() = %#v", singers)
	}
}

func TestSongAliasPrecedence(t *testing.T) {
	song := Song{"song": "", "title": "Fallback", "movie": "", "album": "Devotional Vol. 1"}
	if got := song.Title(); got != "Fallback" {
		t.Errorf("Title() = %q, want Fallback", got)
	}
	if got := song.Movie(); got != "Devotional Vol. 1" {
		t.Errorf("Movie() = %q", got)
	}
	if got := song.MovieLabel(); got != "Album:" {
		t.Errorf("MovieLabel() = %q", got)
	}
	if got := (Song{}).DisplayTitle(); got != "Untitled" {
		t.Errorf("DisplayTitle() = %q", got)
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1994", 1994, true},
		{" 1987 ", 1987, true},
		{"2001 (re-recorded)", 2001, true},
		{"", 0, false},
		{"unknown", 0, false},
		{"c. 1990", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseYear(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseYear(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDecade(t *testing.T) {
	if d, ok := (Song{"year": "1989"}).Decade(); !ok || d != 1980 {
		t.Errorf("Decade() = %d, %v", d, ok)
	}
	if _, ok := (Song{"year": "n/a"}).Decade(); ok {
		t.Error("expected no decade for an unparseable year")
	}
}

func TestVideoID(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                     "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0":  "dQw4w9WgXcQ",
		"dQw4w9WgXcQ":                   "dQw4w9WgXcQ",
		"https://example.com/video.mp4": "",
		"":                              "",
	}
	for in, want := range tests {
		if got := VideoID(in); got != want {
			t.Errorf("VideoID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLanguageClass(t *testing.T) {
	if got := LanguageClass("Tamil  Devotional"); got != "tamil-devotional" {
		t.Errorf("LanguageClass() = %q", got)
	}
	if got := LanguageClass(""); got != "" {
		t.Errorf("LanguageClass(\"\") = %q", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	song := Song{"title": "Kannana Kanne", "movie": "Viswasam", "year": "2019", "language": "Tamil"}
	saved := Snapshot(song, now)

	if saved.Key() != song.Key() {
		t.Errorf("snapshot key %v differs from song key %v", saved.Key(), song.Key())
	}
	if saved.ID != GenerateSongID(song.Key()) {
		t.Error("expected deterministic id")
	}
	if back := saved.Song(); back.Key() != song.Key() || back.Language() != "Tamil" {
		t.Errorf("Song() = %#v", back)
	}
}

func TestPlaylistAddSongDeduplicates(t *testing.T) {
	p := &Playlist{Name: "Melodies"}
	a := SavedSong{Title: "A", Movie: "X"}
	sameKey := SavedSong{Title: "A", Movie: "X", Year: "1990"}
	otherMovie := SavedSong{Title: "A", Movie: "Y"}

	if !p.AddSong(a) {
		t.Fatal("expected first add to succeed")
	}
	if p.AddSong(sameKey) {
		t.Error("expected duplicate key to be rejected")
	}
	if !p.AddSong(otherMovie) {
		t.Error("expected same title from another movie to be accepted")
	}
	if !p.RemoveSong(a.Key()) || p.Contains(a.Key()) {
		t.Error("expected song to be removed")
	}
	if len(p.Songs) != 1 {
		t.Errorf("expected 1 song left, got %d", len(p.Songs))
	}
}

func TestLocalSheetPath(t *testing.T) {
	cases := []struct {
		source string
		path   string
		local  bool
	}{
		{"https://docs.google.com/x/pub?output=csv", "", false},
		{"http://localhost/sheet.csv", "", false},
		{"./sheets/tamil.csv", "./sheets/tamil.csv", true},
		{"file:///srv/sheets/hindi.csv", "/srv/sheets/hindi.csv", true},
	}
	for _, c := range cases {
		path, local := LocalSheetPath(c.source)
		if path != c.path || local != c.local {
			t.Errorf("LocalSheetPath(%q) = (%q, %v), want (%q, %v)", c.source, path, local, c.path, c.local)
		}
	}
}
