package sheets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/contre95/songsheet/src/infra/telemetry"
	"github.com/contre95/songsheet/src/music"
)

// maxSheetSize caps how much of a published sheet is read into memory.
const maxSheetSize = 16 << 20

// Client downloads published sheets over HTTP or reads them from disk.
type Client struct {
	http    *http.Client
	metrics *telemetry.Collectors
}

// NewClient creates a sheet client. A zero timeout means no timeout.
func NewClient(timeout time.Duration, metrics *telemetry.Collectors) *Client {
	if metrics == nil {
		metrics = telemetry.Nop()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		metrics: metrics,
	}
}

// Fetch returns the songs of the sheet at source. Any failure is logged and yields an empty list.
func (c *Client) Fetch(ctx context.Context, source string) []music.Song {
	text, reason, err := c.read(ctx, source)
	if err != nil {
		slog.Error("Error fetching sheet", "source", source, "reason", reason, "error", err)
		c.metrics.SheetFailures.WithLabelValues(reason).Inc()
		return []music.Song{}
	}
	songs := Parse(text)
	slog.Debug("Sheet fetched", "source", source, "songs", len(songs))
	return songs
}

func (c *Client) read(ctx context.Context, source string) (string, string, error) {
	if path, local := music.LocalSheetPath(source); local {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "file", fmt.Errorf("failed to read sheet file: %w", err)
		}
		return string(data), "", nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", source, nil)
	if err != nil {
		return "", "request", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Songsheet/1.0")
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "network", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "status", fmt.Errorf("sheet request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetSize))
	if err != nil {
		return "", "read", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), "", nil
}
