package catalog

import (
	"strings"

	"github.com/contre95/songsheet/src/music"
)

// Card is what a song card needs to render.
type Card struct {
	Title         string `json:"title"`
	Movie         string `json:"movie"`
	MovieLabel    string `json:"movieLabel"`
	Year          string `json:"year"`
	Composer      string `json:"composer"`
	CoSingers     string `json:"cosingers"`
	Genre         string `json:"genre"`
	Language      string `json:"language"`
	LanguageClass string `json:"languageClass"`
	Type          string `json:"type"`
	HasVideo      bool   `json:"hasVideo"`
	VideoID       string `json:"videoId,omitempty"`
	VideoURL      string `json:"videoUrl,omitempty"`
	Favorite      bool   `json:"favorite"`
}

// NewCard builds the card of a song. sheet is the language of the sheet the song came
// from and is used when the row has no language column.
func NewCard(song music.Song, sheet string) Card {
	language := song.Language()
	if language == "" {
		language = sheet
	}
	card := Card{
		Title:         song.DisplayTitle(),
		Movie:         song.Movie(),
		MovieLabel:    song.MovieLabel(),
		Year:          song.YearText(),
		Composer:      song.Composer(),
		CoSingers:     strings.Join(song.CoSingers(), ", "),
		Genre:         song.Genre(),
		Language:      language,
		LanguageClass: music.LanguageClass(language),
		Type:          song.Type(),
		HasVideo:      song.HasVideo(),
		VideoURL:      song.VideoURL(),
	}
	card.VideoID = music.VideoID(card.VideoURL)
	return card
}

// NewCards builds the cards of a list of songs.
func NewCards(songs []music.Song, sheet string) []Card {
	cards := make([]Card, 0, len(songs))
	for _, song := range songs {
		cards = append(cards, NewCard(song, sheet))
	}
	return cards
}
