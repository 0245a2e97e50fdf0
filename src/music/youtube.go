package music

import (
	"regexp"
	"strings"

	"github.com/gosimple/unidecode"
)

var (
	videoURLPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)
	videoIDPattern  = regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// VideoID extracts the YouTube video id from a watch, short or embed link,
// or accepts a bare 11 character id. It returns "" when nothing matches.
func VideoID(link string) string {
	if link == "" {
		return ""
	}
	if m := videoURLPattern.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	if m := videoIDPattern.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return ""
}

// EmbedURL returns the autoplaying embed URL for a video id.
func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID + "?autoplay=1&rel=0"
}

// LanguageClass turns a language name into a css-friendly class, "Tamil Nadu" -> "tamil-nadu".
func LanguageClass(language string) string {
	if language == "" {
		return ""
	}
	class := strings.ToLower(unidecode.Unidecode(language))
	return whitespaceRun.ReplaceAllString(class, "-")
}
