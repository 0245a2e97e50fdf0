package sheets

import (
	"strings"

	"github.com/contre95/songsheet/src/music"
)

// Parse turns published sheet text into songs.
//
// The first line holds the headers, which are trimmed and lowercased. Blank lines are
// skipped, short rows get empty values, and rows with neither a "song" nor a "title"
// column are dropped. Every other row is kept, with or without a video link.
func Parse(text string) []music.Song {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return []music.Song{}
	}

	headers := ParseLine(lines[0])
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	songs := make([]music.Song, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := ParseLine(line)
		song := make(music.Song, len(headers))
		for i, header := range headers {
			value := ""
			if i < len(values) {
				value = strings.TrimSpace(values[i])
			}
			song[header] = value
		}
		if song["song"] != "" || song["title"] != "" {
			songs = append(songs, song)
		}
	}
	return songs
}

// ParseLine splits one CSV line on commas that are outside double quotes.
// Quote characters only toggle the quoted state and never end up in a value,
// so `"Chithra, Yesudas"` yields `Chithra, Yesudas`.
func ParseLine(line string) []string {
	var (
		values   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			values = append(values, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(values, current.String())
}
