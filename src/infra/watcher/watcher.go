package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before an event is emitted.
const DefaultDebounce = 2 * time.Second

// Watcher monitors local sheet files and emits one event per file once writes settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	files    map[string]struct{}

	mu      sync.Mutex
	timers  map[string]*time.Timer
	running bool

	stopChan  chan struct{}
	eventChan chan<- FileEvent
}

// NewWatcher creates a new file system watcher
func NewWatcher(eventChan chan<- FileEvent, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:   watcher,
		debounce:  debounce,
		files:     make(map[string]struct{}),
		timers:    make(map[string]*time.Timer),
		eventChan: eventChan,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start watches the given files. Their parent directories are watched so that
// editors replacing a file through a rename are still noticed.
func (w *Watcher) Start(ctx context.Context, paths []string) error {
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		slog.Info("Watching sheet directory", "path", dir)
	}

	w.mu.Lock()
	w.running = true
	w.mu.Unlock()

	go w.watchLoop(ctx)

	slog.Info("File watcher started successfully", "files", len(w.files))
	return nil
}

// Stop stops the file watcher
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	slog.Info("Stopping file watcher")
	w.running = false
	close(w.stopChan)
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			w.Stop()
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if _, watched := w.files[path]; !watched {
		return
	}

	eventType := FileModified
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eventType = FileRemoved
	default:
		return
	}

	slog.Debug("Sheet file changed", "file", path, "op", event.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		w.emit(FileEvent{Path: path, EventType: eventType, Timestamp: time.Now()}, &timer)
	})
	w.timers[path] = timer
}

// emit sends the event and forgets the timer that fired, unless a newer one replaced it.
// fired is read under w.mu because handleEvent assigns it while holding the lock.
func (w *Watcher) emit(event FileEvent, fired **time.Timer) {
	w.mu.Lock()
	if w.timers[event.Path] == *fired {
		delete(w.timers, event.Path)
	}
	w.mu.Unlock()

	select {
	case w.eventChan <- event:
		slog.Info("Emitted file event after debounce", "path", event.Path, "type", event.EventType)
	default:
		slog.Warn("Event channel full, dropping file event", "path", event.Path)
	}
}
