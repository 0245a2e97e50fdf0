package catalog

import (
	"sort"
	"strings"

	"github.com/contre95/songsheet/src/music"
)

// SortFields lists the accepted sort keys. A leading "-" sorts descending.
var SortFields = []string{"title", "year", "movie", "composer"}

// SortSongs sorts songs in place by the given key and returns them.
// Unknown or empty keys keep sheet order. Songs without a year go last when sorting by year.
func SortSongs(songs []music.Song, by string) []music.Song {
	desc := strings.HasPrefix(by, "-")
	field := strings.TrimPrefix(by, "-")

	var text func(music.Song) string
	switch field {
	case "title":
		text = music.Song.Title
	case "movie":
		text = music.Song.Movie
	case "composer":
		text = music.Song.Composer
	case "year":
		sort.SliceStable(songs, func(i, j int) bool {
			yi, oki := songs[i].Year()
			yj, okj := songs[j].Year()
			if oki != okj {
				return oki
			}
			if desc {
				return yi > yj
			}
			return yi < yj
		})
		return songs
	default:
		return songs
	}

	sort.SliceStable(songs, func(i, j int) bool {
		a, b := strings.ToLower(text(songs[i])), strings.ToLower(text(songs[j]))
		if desc {
			return a > b
		}
		return a < b
	})
	return songs
}
