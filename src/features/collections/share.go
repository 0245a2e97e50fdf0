package collections

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/contre95/songsheet/src/music"
)

// ShareLinks holds the ways a song can be shared.
type ShareLinks struct {
	Title    string `json:"title"`
	Movie    string `json:"movie,omitempty"`
	URL      string `json:"url"`
	WhatsApp string `json:"whatsapp"`
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
}

// Share builds the share links of a song. pageURL is the page the song lives on,
// its query is replaced by the song title.
func Share(song music.Song, artist, pageURL string) (ShareLinks, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return ShareLinks{}, fmt.Errorf("invalid page url: %w", err)
	}
	title := song.DisplayTitle()
	page.RawQuery = "song=" + escape(title)
	page.Fragment = ""
	link := page.String()

	whatsApp := fmt.Sprintf("Check out \"%s\" by %s! %s", title, artist, link)
	tweet := fmt.Sprintf("Listening to \"%s\" by %s", title, artist)

	return ShareLinks{
		Title:    title,
		Movie:    song.Movie(),
		URL:      link,
		WhatsApp: "https://wa.me/?text=" + escape(whatsApp),
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + escape(link),
		Twitter:  "https://twitter.com/intent/tweet?text=" + escape(tweet) + "&url=" + escape(link),
	}, nil
}

// escape percent-encodes a query component with %20 for spaces.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
