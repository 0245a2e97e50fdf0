package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClient_FetchHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("song,movie,year\nPoovinu,Vidaparayum,1987\n"))
	}))
	defer server.Close()

	client := NewClient(time.Second, nil)
	songs := client.Fetch(context.Background(), server.URL)
	if len(songs) != 1 || songs[0].Title() != "Poovinu" {
		t.Fatalf("unexpected songs: %v", songs)
	}
}

func TestClient_FetchFailuresYieldEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(time.Second, nil)
	for _, source := range []string{server.URL, "http://127.0.0.1:1/sheet.csv", filepath.Join(t.TempDir(), "missing.csv")} {
		songs := client.Fetch(context.Background(), source)
		if songs == nil || len(songs) != 0 {
			t.Errorf("Fetch(%q) = %v, want empty non-nil list", source, songs)
		}
	}
}

func TestClient_FetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tamil.csv")
	if err := os.WriteFile(path, []byte("title,album\nKannalane,Bombay\n"), 0644); err != nil {
		t.Fatal(err)
	}

	client := NewClient(0, nil)
	for _, source := range []string{path, "file://" + path} {
		songs := client.Fetch(context.Background(), source)
		if len(songs) != 1 || songs[0].Movie() != "Bombay" {
			t.Errorf("Fetch(%q) = %v", source, songs)
		}
	}
}
