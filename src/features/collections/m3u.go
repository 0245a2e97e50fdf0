package collections

import (
	"bufio"
	"fmt"
	"io"

	"github.com/contre95/songsheet/src/music"
)

// WriteM3U writes a playlist as an extended M3U list of its YouTube links.
// Songs without a video have no location and are left out.
func WriteM3U(w io.Writer, playlist music.Playlist, artist string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#EXTM3U\n#PLAYLIST:%s\n\n", playlist.Name)
	for _, song := range playlist.Songs {
		if song.YouTube == "" {
			continue
		}
		title := song.Title
		if song.Movie != "" {
			title += " (" + song.Movie + ")"
		}
		if artist != "" {
			title = artist + " - " + title
		}
		fmt.Fprintf(bw, "#EXTINF:-1,%s\n%s\n\n", title, song.YouTube)
	}
	return bw.Flush()
}
