package collections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/contre95/songsheet/src/features/config"
	"github.com/contre95/songsheet/src/infra/telemetry"
	"github.com/contre95/songsheet/src/music"
)

// Blob names, prefixed with storage.key_prefix.
const (
	favoritesBlob = "favorites"
	playlistsBlob = "playlists"
	recentBlob    = "recent_played"
)

// Counts is the badge numbers shown on the collection tabs.
type Counts struct {
	Favorites int `json:"favorites"`
	Playlists int `json:"playlists"`
	Recent    int `json:"recent"`
}

// Service is the domain service for favorites, playlists and recently played songs.
// Every mutation is a read-modify-write of one blob, serialized by mu.
type Service struct {
	store         music.BlobStore
	configManager *config.Manager
	metrics       *telemetry.Collectors
	mu            sync.Mutex
	now           func() time.Time
}

// NewService creates a new collections service.
func NewService(store music.BlobStore, cfgManager *config.Manager, metrics *telemetry.Collectors) *Service {
	if metrics == nil {
		metrics = telemetry.Nop()
	}
	return &Service{
		store:         store,
		configManager: cfgManager,
		metrics:       metrics,
		now:           time.Now,
	}
}

func (s *Service) key(name string) string {
	prefix := ""
	if s.configManager != nil {
		prefix = s.configManager.Get().Storage.KeyPrefix
	}
	return prefix + name
}

// load decodes a blob into v. A missing blob leaves v untouched.
func (s *Service) load(ctx context.Context, name string, v any) error {
	data, err := s.store.GetBlob(ctx, s.key(name))
	if errors.Is(err, music.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		// A corrupt blob is treated as empty, like a fresh browser profile.
		slog.Warn("Discarding unreadable collection", "collection", name, "error", err)
		return nil
	}
	return nil
}

func (s *Service) save(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := s.store.PutBlob(ctx, s.key(name), data); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

func (s *Service) count(collection, action string) {
	s.metrics.Collection.WithLabelValues(collection, action).Inc()
}

func (s *Service) favorites(ctx context.Context) ([]music.SavedSong, error) {
	favorites := []music.SavedSong{}
	if err := s.load(ctx, favoritesBlob, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Favorites returns the favorite songs, most recently added first.
func (s *Service) Favorites(ctx context.Context) ([]music.SavedSong, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites(ctx)
}

// FavoriteKeys returns the set of favorite song keys.
func (s *Service) FavoriteKeys(ctx context.Context) (map[music.SongKey]bool, error) {
	favorites, err := s.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	keys := make(map[music.SongKey]bool, len(favorites))
	for _, f := range favorites {
		keys[f.Key()] = true
	}
	return keys, nil
}

// IsFavorite reports whether a song with the given key is a favorite.
func (s *Service) IsFavorite(ctx context.Context, key music.SongKey) (bool, error) {
	favorites, err := s.Favorites(ctx)
	if err != nil {
		return false, err
	}
	return music.IndexOf(favorites, key) >= 0, nil
}

// AddFavorite puts a song at the top of the favorites.
func (s *Service) AddFavorite(ctx context.Context, song music.Song) (music.SavedSong, error) {
	slog.Debug("AddFavorite service called", "title", song.Title())
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.favorites(ctx)
	if err != nil {
		return music.SavedSong{}, err
	}
	saved := music.Snapshot(song, s.now())
	if music.IndexOf(favorites, saved.Key()) >= 0 {
		return saved, fmt.Errorf("favorite %q: %w", saved.Title, music.ErrAlreadyExists)
	}
	favorites = append([]music.SavedSong{saved}, favorites...)
	if err := s.save(ctx, favoritesBlob, favorites); err != nil {
		return music.SavedSong{}, err
	}
	s.count(favoritesBlob, "add")
	slog.Debug("AddFavorite completed", "title", saved.Title, "count", len(favorites))
	return saved, nil
}

// RemoveFavorite drops a song from the favorites.
func (s *Service) RemoveFavorite(ctx context.Context, key music.SongKey) error {
	slog.Debug("RemoveFavorite service called", "title", key.Title)
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.favorites(ctx)
	if err != nil {
		return err
	}
	remaining := music.RemoveKey(favorites, key)
	if len(remaining) == len(favorites) {
		return fmt.Errorf("favorite %q: %w", key.Title, music.ErrNotFound)
	}
	if err := s.save(ctx, favoritesBlob, remaining); err != nil {
		return err
	}
	s.count(favoritesBlob, "remove")
	return nil
}

// ToggleFavorite adds the song when missing and removes it otherwise.
// It reports whether the song is a favorite afterwards.
func (s *Service) ToggleFavorite(ctx context.Context, song music.Song) (bool, error) {
	slog.Debug("ToggleFavorite service called", "title", song.Title())
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.favorites(ctx)
	if err != nil {
		return false, err
	}
	if remaining := music.RemoveKey(favorites, song.Key()); len(remaining) != len(favorites) {
		if err := s.save(ctx, favoritesBlob, remaining); err != nil {
			return true, err
		}
		s.count(favoritesBlob, "remove")
		return false, nil
	}
	favorites = append([]music.SavedSong{music.Snapshot(song, s.now())}, favorites...)
	if err := s.save(ctx, favoritesBlob, favorites); err != nil {
		return false, err
	}
	s.count(favoritesBlob, "add")
	return true, nil
}

// ClearFavorites removes every favorite.
func (s *Service) ClearFavorites(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.DeleteBlob(ctx, s.key(favoritesBlob)); err != nil {
		return err
	}
	s.count(favoritesBlob, "clear")
	slog.Info("Favorites cleared")
	return nil
}

func (s *Service) playlists(ctx context.Context) ([]music.Playlist, error) {
	playlists := []music.Playlist{}
	if err := s.load(ctx, playlistsBlob, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func findPlaylist(playlists []music.Playlist, id string) int {
	for i := range playlists {
		if playlists[i].ID == id {
			return i
		}
	}
	return -1
}

// Playlists returns every playlist in creation order.
func (s *Service) Playlists(ctx context.Context) ([]music.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlists(ctx)
}

// Playlist returns one playlist.
func (s *Service) Playlist(ctx context.Context, id string) (music.Playlist, error) {
	playlists, err := s.Playlists(ctx)
	if err != nil {
		return music.Playlist{}, err
	}
	i := findPlaylist(playlists, id)
	if i < 0 {
		return music.Playlist{}, fmt.Errorf("playlist %s: %w", id, music.ErrNotFound)
	}
	return playlists[i], nil
}

// CreatePlaylist creates an empty playlist.
func (s *Service) CreatePlaylist(ctx context.Context, name, description, icon string) (music.Playlist, error) {
	slog.Debug("CreatePlaylist service called", "name", name)
	playlist := music.Playlist{
		ID:          music.GeneratePlaylistID(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Icon:        strings.TrimSpace(icon),
		Songs:       []music.SavedSong{},
		CreatedAt:   s.now(),
	}
	if playlist.Icon == "" {
		playlist.Icon = music.DefaultPlaylistIcon
	}
	if err := playlist.Validate(); err != nil {
		return music.Playlist{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	playlists, err := s.playlists(ctx)
	if err != nil {
		return music.Playlist{}, err
	}
	playlists = append(playlists, playlist)
	if err := s.save(ctx, playlistsBlob, playlists); err != nil {
		return music.Playlist{}, err
	}
	s.count(playlistsBlob, "create")
	slog.Info("Playlist created", "id", playlist.ID, "name", playlist.Name)
	return playlist, nil
}

// DeletePlaylist removes a playlist.
func (s *Service) DeletePlaylist(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	playlists, err := s.playlists(ctx)
	if err != nil {
		return err
	}
	i := findPlaylist(playlists, id)
	if i < 0 {
		return fmt.Errorf("playlist %s: %w", id, music.ErrNotFound)
	}
	playlists = append(playlists[:i], playlists[i+1:]...)
	if err := s.save(ctx, playlistsBlob, playlists); err != nil {
		return err
	}
	s.count(playlistsBlob, "delete")
	return nil
}

// AddSongToPlaylist appends a song to a playlist.
func (s *Service) AddSongToPlaylist(ctx context.Context, id string, song music.Song) (music.Playlist, error) {
	slog.Debug("AddSongToPlaylist service called", "playlist", id, "title", song.Title())
	s.mu.Lock()
	defer s.mu.Unlock()

	playlists, err := s.playlists(ctx)
	if err != nil {
		return music.Playlist{}, err
	}
	i := findPlaylist(playlists, id)
	if i < 0 {
		return music.Playlist{}, fmt.Errorf("playlist %s: %w", id, music.ErrNotFound)
	}
	if !playlists[i].AddSong(music.Snapshot(song, s.now())) {
		return playlists[i], fmt.Errorf("%q in %s: %w", song.Title(), playlists[i].Name, music.ErrAlreadyExists)
	}
	if err := s.save(ctx, playlistsBlob, playlists); err != nil {
		return music.Playlist{}, err
	}
	s.count(playlistsBlob, "add_song")
	return playlists[i], nil
}

// RemoveSongFromPlaylist removes a song from a playlist.
func (s *Service) RemoveSongFromPlaylist(ctx context.Context, id string, key music.SongKey) (music.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	playlists, err := s.playlists(ctx)
	if err != nil {
		return music.Playlist{}, err
	}
	i := findPlaylist(playlists, id)
	if i < 0 {
		return music.Playlist{}, fmt.Errorf("playlist %s: %w", id, music.ErrNotFound)
	}
	if !playlists[i].RemoveSong(key) {
		return playlists[i], fmt.Errorf("%q in %s: %w", key.Title, playlists[i].Name, music.ErrNotFound)
	}
	if err := s.save(ctx, playlistsBlob, playlists); err != nil {
		return music.Playlist{}, err
	}
	s.count(playlistsBlob, "remove_song")
	return playlists[i], nil
}

func (s *Service) recent(ctx context.Context) ([]music.SavedSong, error) {
	recent := []music.SavedSong{}
	if err := s.load(ctx, recentBlob, &recent); err != nil {
		return nil, err
	}
	return recent, nil
}

// Recent returns the recently played songs, most recent first.
func (s *Service) Recent(ctx context.Context) ([]music.SavedSong, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recent(ctx)
}

// AddRecent moves a song to the top of the history, keeping at most music.RecentLimit entries.
func (s *Service) AddRecent(ctx context.Context, song music.Song) (music.SavedSong, error) {
	slog.Debug("AddRecent service called", "title", song.Title())
	s.mu.Lock()
	defer s.mu.Unlock()

	recent, err := s.recent(ctx)
	if err != nil {
		return music.SavedSong{}, err
	}
	now := s.now()
	saved := music.Snapshot(song, now)
	saved.PlayedAt = &now

	recent = append([]music.SavedSong{saved}, music.RemoveKey(recent, saved.Key())...)
	if len(recent) > music.RecentLimit {
		recent = recent[:music.RecentLimit]
	}
	if err := s.save(ctx, recentBlob, recent); err != nil {
		return music.SavedSong{}, err
	}
	s.count(recentBlob, "add")
	return saved, nil
}

// RemoveRecent drops one song from the history.
func (s *Service) RemoveRecent(ctx context.Context, key music.SongKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent, err := s.recent(ctx)
	if err != nil {
		return err
	}
	remaining := music.RemoveKey(recent, key)
	if len(remaining) == len(recent) {
		return fmt.Errorf("recent %q: %w", key.Title, music.ErrNotFound)
	}
	if err := s.save(ctx, recentBlob, remaining); err != nil {
		return err
	}
	s.count(recentBlob, "remove")
	return nil
}

// ClearRecent empties the history.
func (s *Service) ClearRecent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.DeleteBlob(ctx, s.key(recentBlob)); err != nil {
		return err
	}
	s.count(recentBlob, "clear")
	slog.Info("Recently played cleared")
	return nil
}

// Counts returns the size of every collection.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.favorites(ctx)
	if err != nil {
		return Counts{}, err
	}
	playlists, err := s.playlists(ctx)
	if err != nil {
		return Counts{}, err
	}
	recent, err := s.recent(ctx)
	if err != nil {
		return Counts{}, err
	}
	return Counts{Favorites: len(favorites), Playlists: len(playlists), Recent: len(recent)}, nil
}
