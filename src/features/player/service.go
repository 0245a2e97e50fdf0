package player

import (
	"context"
	"log/slog"
	"strings"

	"github.com/contre95/songsheet/src/infra/telemetry"
	"github.com/contre95/songsheet/src/music"
)

// RecentRecorder keeps the recently played history.
type RecentRecorder interface {
	AddRecent(ctx context.Context, song music.Song) (music.SavedSong, error)
}

// NowPlaying is what the mini-player shows.
type NowPlaying struct {
	Title    string `json:"title"`
	Details  string `json:"details"`
	VideoID  string `json:"videoId"`
	EmbedURL string `json:"embedUrl"`
}

// Service opens songs in the mini-player.
type Service struct {
	recent  RecentRecorder
	metrics *telemetry.Collectors
}

// NewService creates a new player service.
func NewService(recent RecentRecorder, metrics *telemetry.Collectors) *Service {
	if metrics == nil {
		metrics = telemetry.Nop()
	}
	return &Service{recent: recent, metrics: metrics}
}

// Play resolves the video of a song and records it as recently played.
// Songs without a usable link return music.ErrNoVideo and are not recorded.
func (s *Service) Play(ctx context.Context, song music.Song) (NowPlaying, error) {
	slog.Debug("Play service called", "title", song.Title())
	videoID := music.VideoID(song.VideoURL())
	if videoID == "" {
		return NowPlaying{}, music.ErrNoVideo
	}

	if s.recent != nil {
		if _, err := s.recent.AddRecent(ctx, song); err != nil {
			// Playback still works when the history cannot be written.
			slog.Warn("Could not record recently played song", "title", song.Title(), "error", err)
		}
	}
	s.metrics.Plays.Inc()

	playing := NowPlaying{
		Title:    song.DisplayTitle(),
		Details:  Details(song),
		VideoID:  videoID,
		EmbedURL: music.EmbedURL(videoID),
	}
	slog.Debug("Play completed", "title", playing.Title, "video", videoID)
	return playing, nil
}

// Details joins the movie and co-singers shown under the title.
func Details(song music.Song) string {
	var parts []string
	for _, p := range []string{song.Movie(), song.CoSinger()} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " • ")
}
