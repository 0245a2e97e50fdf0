package watcher

import (
	"time"
)

// FileEventType represents the type of file system event
type FileEventType string

const (
	FileModified FileEventType = "modified"
	FileRemoved  FileEventType = "removed"
)

// FileEvent reports that a watched sheet file settled after a change.
type FileEvent struct {
	Path      string
	EventType FileEventType
	Timestamp time.Time
}
