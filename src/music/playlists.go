package music

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPlaylistIcon is used when a playlist is created without one.
const DefaultPlaylistIcon = "🎵"

// RecentLimit caps the recently played history.
const RecentLimit = 50

// Playlist is an ordered, user-curated list of saved songs.
type Playlist struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Songs       []SavedSong `json:"songs"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Validate validates the playlist fields.
func (p *Playlist) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("playlist name cannot be empty")
	}
	if len(p.Name) > 200 {
		return fmt.Errorf("playlist name cannot exceed 200 characters, got %d: name -> %s", len(p.Name), p.Name)
	}
	if len(p.Description) > 1000 {
		return fmt.Errorf("playlist description cannot exceed 1000 characters, got %d", len(p.Description))
	}
	return nil
}

// Pretty returns a formatted string representation of the playlist for logging/debugging.
func (p *Playlist) Pretty() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%-20s : %s\n", "ID", p.ID))
	builder.WriteString(fmt.Sprintf("%-20s : %s %s\n", "Name", p.Icon, p.Name))
	if p.Description != "" {
		builder.WriteString(fmt.Sprintf("%-20s : %s\n", "Description", p.Description))
	}
	builder.WriteString(fmt.Sprintf("%-20s : %d\n", "Song Count", len(p.Songs)))
	for i, song := range p.Songs {
		builder.WriteString(fmt.Sprintf("  %d. %s - %s\n", i+1, song.Title, song.Movie))
	}
	builder.WriteString(fmt.Sprintf("%-20s : %s\n", "Created", p.CreatedAt.Format("2006-01-02 15:04:05-07:00")))
	return builder.String()
}

// Contains checks if a song with the given key is in the playlist.
func (p *Playlist) Contains(key SongKey) bool {
	return IndexOf(p.Songs, key) >= 0
}

// AddSong appends a song unless one with the same key is already present.
// It reports whether the song was added.
func (p *Playlist) AddSong(song SavedSong) bool {
	if p.Contains(song.Key()) {
		return false
	}
	p.Songs = append(p.Songs, song)
	return true
}

// RemoveSong removes the song with the given key and reports whether it was found.
func (p *Playlist) RemoveSong(key SongKey) bool {
	before := len(p.Songs)
	p.Songs = RemoveKey(p.Songs, key)
	return len(p.Songs) != before
}

// IndexOf returns the position of the song with the given key, or -1.
func IndexOf(songs []SavedSong, key SongKey) int {
	for i, s := range songs {
		if s.Key() == key {
			return i
		}
	}
	return -1
}

// RemoveKey returns a new slice without any song matching the key.
func RemoveKey(songs []SavedSong, key SongKey) []SavedSong {
	out := make([]SavedSong, 0, len(songs))
	for _, s := range songs {
		if s.Key() != key {
			out = append(out, s)
		}
	}
	return out
}

// GeneratePlaylistID creates a UUID for a playlist.
func GeneratePlaylistID() string {
	return uuid.New().String()
}
