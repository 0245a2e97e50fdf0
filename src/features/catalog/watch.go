package catalog

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/contre95/songsheet/src/music"
)

// SheetWatcher reports changes to sheet files on disk.
type SheetWatcher interface {
	Start(ctx context.Context, paths []string) error
	Stop()
}

// LocalSheets maps the absolute path of every file-backed sheet to its language.
func (s *Service) LocalSheets() map[string]string {
	local := make(map[string]string)
	for language, source := range s.configManager.Get().Sheets {
		path, ok := music.LocalSheetPath(source)
		if !ok {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			local[abs] = language
		}
	}
	return local
}

// WatchLocalSheets starts w on every file-backed sheet. It does nothing when
// watching is disabled or every sheet is remote.
func (s *Service) WatchLocalSheets(ctx context.Context, w SheetWatcher) error {
	if !s.configManager.Get().Fetch.WatchLocal {
		return nil
	}
	local := s.LocalSheets()
	if len(local) == 0 {
		return nil
	}
	paths := make([]string, 0, len(local))
	for path := range local {
		paths = append(paths, path)
	}
	return w.Start(ctx, paths)
}

// FileChanged reloads the sheet stored at path, if any.
func (s *Service) FileChanged(ctx context.Context, path string) {
	language, ok := s.LocalSheets()[path]
	if !ok {
		return
	}
	slog.Info("Sheet file changed, reloading", "language", language, "path", path)
	if _, err := s.Reload(ctx, language); err != nil {
		slog.Error("Error reloading sheet", "language", language, "error", err)
	}
}
