package watcher

import "context"

// Watcher monitors an inbox directory and registers a job for every
// audio file dropped into it.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler receives the path of each detected audio file.
type EventHandler func(ctx context.Context, filePath string) error
