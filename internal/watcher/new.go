package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"meeting-summarizer/internal/logger"
)

// New creates a Watcher over inboxDir. Only files whose extension is
// in allowedExts reach the handler.
func New(inboxDir string, allowedExts []string, handler EventHandler, log logger.Logger) (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(inboxDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inboxDir:    inboxDir,
		allowedExts: allowedExts,
		handler:     handler,
		logger:      log,
		watcher:     fw,
	}, nil
}
