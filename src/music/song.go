package music

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Song is a single spreadsheet row keyed by its lowercased header.
// Sheets are maintained by hand, so every field is read through a list of aliases.
type Song map[string]string

var (
	titleAliases    = []string{"song", "title"}
	movieAliases    = []string{"movie", "film", "album"}
	composerAliases = []string{"composer", "music director", "music"}
	coSingerAliases = []string{"cosinger", "co-singer", "singer"}
	genreAliases    = []string{"genre", "category"}
	videoAliases    = []string{"youtube", "youtube link", "youtubelink", "link"}
)

// first returns the first non-empty value among the given columns.
func (s Song) first(keys []string) string {
	for _, k := range keys {
		if v := s[k]; v != "" {
			return v
		}
	}
	return ""
}

// With returns a copy of the song with one column set.
func (s Song) With(column, value string) Song {
	out := make(Song, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[column] = value
	return out
}

// Title returns the raw title, possibly empty.
func (s Song) Title() string { return s.first(titleAliases) }

// DisplayTitle returns the title or "Untitled".
func (s Song) DisplayTitle() string {
	if t := s.Title(); t != "" {
		return t
	}
	return "Untitled"
}

func (s Song) Movie() string    { return s.first(movieAliases) }
func (s Song) YearText() string { return s["year"] }
func (s Song) Composer() string { return s.first(composerAliases) }
func (s Song) CoSinger() string { return s.first(coSingerAliases) }
func (s Song) Genre() string    { return s.first(genreAliases) }
func (s Song) Language() string { return s["language"] }
func (s Song) Type() string     { return s["type"] }
func (s Song) VideoURL() string { return s.first(videoAliases) }

// HasVideo reports whether the row carries any video link.
func (s Song) HasVideo() bool { return s.VideoURL() != "" }

// IsFilmSong reports whether the type marks the song as a film song.
func (s Song) IsFilmSong() bool {
	return strings.Contains(strings.ToLower(s.Type()), "film")
}

// MovieLabel is "Movie:" for film songs and "Album:" otherwise.
func (s Song) MovieLabel() string {
	if s.IsFilmSong() {
		return "Movie:"
	}
	return "Album:"
}

// CoSingers splits the comma-joined co-singer column into trimmed, non-empty names.
func (s Song) CoSingers() []string {
	return SplitNames(s.CoSinger())
}

// Year parses the leading integer of the year column.
func (s Song) Year() (int, bool) {
	return ParseYear(s.YearText())
}

// Decade returns the decade of the song's year, e.g. 1994 -> 1990.
func (s Song) Decade() (int, bool) {
	year, ok := s.Year()
	if !ok {
		return 0, false
	}
	return DecadeOf(year), true
}

// Key returns the identity used by favorites, playlists and recently played.
func (s Song) Key() SongKey {
	return SongKey{Title: s.Title(), Movie: s.Movie()}
}

// SongKey identifies a song across collections.
type SongKey struct {
	Title string
	Movie string
}

// SplitNames splits a comma-joined list of names.
func SplitNames(joined string) []string {
	if joined == "" {
		return nil
	}
	var names []string
	for _, n := range strings.Split(joined, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// ParseYear reads an optional sign and leading digits after any whitespace,
// so "1994", " 1994 " and "1994 (re-recorded)" all yield 1994.
func ParseYear(text string) (int, bool) {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	end := 0
	if end < len(text) && (text[end] == '-' || text[end] == '+') {
		end++
	}
	start := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	year, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0, false
	}
	return year, true
}

// DecadeOf floors a year to its decade.
func DecadeOf(year int) int {
	d := year / 10 * 10
	if year < 0 && year%10 != 0 {
		d -= 10
	}
	return d
}

// SavedSong is the snapshot of a song kept in a collection.
type SavedSong struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Movie     string     `json:"movie"`
	Year      string     `json:"year,omitempty"`
	Composer  string     `json:"composer,omitempty"`
	CoSinger  string     `json:"cosinger,omitempty"`
	Genre     string     `json:"genre,omitempty"`
	Language  string     `json:"language,omitempty"`
	Type      string     `json:"type,omitempty"`
	YouTube   string     `json:"youtube,omitempty"`
	AddedDate time.Time  `json:"addedDate"`
	PlayedAt  *time.Time `json:"playedAt,omitempty"`
}

// Key returns the identity of the saved song.
func (s SavedSong) Key() SongKey {
	return SongKey{Title: s.Title, Movie: s.Movie}
}

// Song converts the snapshot back into a row so it can be rendered like any other.
func (s SavedSong) Song() Song {
	row := Song{
		"title":    s.Title,
		"movie":    s.Movie,
		"year":     s.Year,
		"composer": s.Composer,
		"cosinger": s.CoSinger,
		"genre":    s.Genre,
		"language": s.Language,
		"type":     s.Type,
		"youtube":  s.YouTube,
	}
	for k, v := range row {
		if v == "" {
			delete(row, k)
		}
	}
	return row
}

// Snapshot captures the song's display fields at the given time.
func Snapshot(song Song, at time.Time) SavedSong {
	return SavedSong{
		ID:        GenerateSongID(song.Key()),
		Title:     song.Title(),
		Movie:     song.Movie(),
		Year:      song.YearText(),
		Composer:  song.Composer(),
		CoSinger:  song.CoSinger(),
		Genre:     song.Genre(),
		Language:  song.Language(),
		Type:      song.Type(),
		YouTube:   song.VideoURL(),
		AddedDate: at,
	}
}

// GenerateSongID creates a deterministic UUID from a song key.
func GenerateSongID(key SongKey) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key.Title+"\x00"+key.Movie)).String()
}
