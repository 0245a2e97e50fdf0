package player

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contre95/songsheet/src/music"
	"github.com/gofiber/fiber/v2"
)

type recorder struct {
	played []music.Song
	err    error
}

func (r *recorder) AddRecent(ctx context.Context, song music.Song) (music.SavedSong, error) {
	r.played = append(r.played, song)
	return music.SavedSong{}, r.err
}

func TestPlay(t *testing.T) {
	rec := &recorder{}
	service := NewService(rec, nil)

	song := music.Song{"song": "Kannalane", "movie": "Bombay", "cosinger": "Chorus", "youtube link": "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10"}
	playing, err := service.Play(context.Background(), song)
	if err != nil {
		t.Fatal(err)
	}
	want := NowPlaying{
		Title:    "Kannalane",
		Details:  "Bombay • Chorus",
		VideoID:  "dQw4w9WgXcQ",
		EmbedURL: "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1&rel=0",
	}
	if playing != want {
		t.Errorf("got %+v, want %+v", playing, want)
	}
	if len(rec.played) != 1 {
		t.Errorf("expected song to be recorded, got %d", len(rec.played))
	}
}

func TestPlay_NoVideo(t *testing.T) {
	rec := &recorder{}
	service := NewService(rec, nil)

	for _, link := range []string{"", "https://vimeo.com/12345"} {
		_, err := service.Play(context.Background(), music.Song{"song": "Silent", "youtube": link})
		if !errors.Is(err, music.ErrNoVideo) {
			t.Errorf("link %q: expected ErrNoVideo, got %v", link, err)
		}
	}
	if len(rec.played) != 0 {
		t.Error("songs without video must not be recorded")
	}
}

func TestPlay_HistoryFailureStillPlays(t *testing.T) {
	service := NewService(&recorder{err: errors.New("disk full")}, nil)
	if _, err := service.Play(context.Background(), music.Song{"song": "x", "link": "https://youtu.be/dQw4w9WgXcQ"}); err != nil {
		t.Errorf("expected playback despite history error, got %v", err)
	}
}

func TestDetails(t *testing.T) {
	cases := map[string]music.Song{
		"":             {"song": "Only title"},
		"Bombay":       {"movie": "Bombay"},
		"Chorus":       {"cosinger": "Chorus"},
		"Album • A, B": {"album": "Album", "co-singer": "A, B"},
	}
	for want, song := range cases {
		if got := Details(song); got != want {
			t.Errorf("Details(%v) = %q, want %q", song, got, want)
		}
	}
}

func TestHandler_Play(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, NewService(&recorder{}, nil))

	req := httptest.NewRequest("POST", "/player/play", strings.NewReader(`{"title":"Silent"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("expected 422 for a song without video, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/player/play", strings.NewReader(`{"title":"Kannalane","youtube":"https://youtu.be/dQw4w9WgXcQ"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
