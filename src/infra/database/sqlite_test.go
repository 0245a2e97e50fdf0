package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/contre95/songsheet/src/music"
)

func newTestStore(t *testing.T) *SqliteBlobStore {
	t.Helper()
	store, err := NewSqliteBlobStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSqliteBlobStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.GetBlob(ctx, "songsheet_favorites"); !errors.Is(err, music.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := store.PutBlob(ctx, "songsheet_favorites", []byte(`[{"title":"a"}]`)); err != nil {
		t.Fatal(err)
	}
	if err := store.PutBlob(ctx, "songsheet_favorites", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetBlob(ctx, "songsheet_favorites")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]" {
		t.Errorf("expected overwritten value, got %s", got)
	}

	keys, err := store.Keys(ctx)
	if err != nil || len(keys) != 1 {
		t.Errorf("expected one key, got %v (%v)", keys, err)
	}

	if err := store.DeleteBlob(ctx, "songsheet_favorites"); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteBlob(ctx, "songsheet_favorites"); err != nil {
		t.Errorf("deleting a missing key should succeed, got %v", err)
	}
	if _, err := store.GetBlob(ctx, "songsheet_favorites"); !errors.Is(err, music.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSqliteBlobStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	store, err := NewSqliteBlobStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.PutBlob(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := NewSqliteBlobStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	got, err := reopened.GetBlob(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("expected value to survive reopen, got %q (%v)", got, err)
	}
}
