package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/contre95/songsheet/src/music"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteBlobStore is a SQLite implementation of the music.BlobStore interface.
type SqliteBlobStore struct {
	db *sql.DB
}

// NewSqliteBlobStore opens (or creates) the database at path.
func NewSqliteBlobStore(path string) (*SqliteBlobStore, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// One writer keeps read-modify-write of a blob consistent.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SqliteBlobStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT
		);
	`)
	return err
}

// GetBlob returns the stored document for key.
func (d *SqliteBlobStore) GetBlob(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := d.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, music.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return []byte(value), nil
}

// PutBlob inserts or replaces the document stored under key.
func (d *SqliteBlobStore) PutBlob(ctx context.Context, key string, value []byte) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		slog.Error("PutBlob: write failed", "key", key, "error", err)
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	return nil
}

// DeleteBlob removes key. Deleting a missing key is not an error.
func (d *SqliteBlobStore) DeleteBlob(ctx context.Context, key string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys, used by the settings page.
func (d *SqliteBlobStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT key FROM blobs ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Ping checks the database connection for the health endpoint.
func (d *SqliteBlobStore) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close closes the database.
func (d *SqliteBlobStore) Close() error {
	return d.db.Close()
}
