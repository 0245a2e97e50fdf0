package catalog

import (
	"io"

	"github.com/contre95/songsheet/src/music"
	"github.com/gocarina/gocsv"
)

// ExportRow is one line of a CSV export.
type ExportRow struct {
	Title    string `csv:"Song"`
	Movie    string `csv:"Movie"`
	Year     string `csv:"Year"`
	Composer string `csv:"Composer"`
	CoSinger string `csv:"Co-Singer"`
	Genre    string `csv:"Genre"`
	Language string `csv:"Language"`
	Type     string `csv:"Type"`
	YouTube  string `csv:"YouTube"`
}

// ExportCSV writes songs as CSV with a header row.
func ExportCSV(w io.Writer, songs []music.Song) error {
	rows := make([]*ExportRow, 0, len(songs))
	for _, song := range songs {
		rows = append(rows, &ExportRow{
			Title:    song.Title(),
			Movie:    song.Movie(),
			Year:     song.YearText(),
			Composer: song.Composer(),
			CoSinger: song.CoSinger(),
			Genre:    song.Genre(),
			Language: song.Language(),
			Type:     song.Type(),
			YouTube:  song.VideoURL(),
		})
	}
	return gocsv.Marshal(rows, w)
}
