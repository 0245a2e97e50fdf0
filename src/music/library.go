package music

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a playlist or stored blob does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a song is already part of a collection.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNoVideo is returned when a song has no playable video link.
	ErrNoVideo = errors.New("YouTube video not available for this song")
)

// BlobStore persists named JSON documents, the server-side stand-in for browser local storage.
type BlobStore interface {
	// GetBlob returns ErrNotFound when the key was never written.
	GetBlob(ctx context.Context, key string) ([]byte, error)
	PutBlob(ctx context.Context, key string, value []byte) error
	DeleteBlob(ctx context.Context, key string) error
}

// SongSource fetches the rows of one published sheet.
type SongSource interface {
	Fetch(ctx context.Context, source string) []Song
}

// LocalSheetPath returns the filesystem path of a sheet source, and false when the
// source is an http(s) URL.
func LocalSheetPath(source string) (string, bool) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return "", false
	}
	return strings.TrimPrefix(source, "file://"), true
}
