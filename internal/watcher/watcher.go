package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"meeting-summarizer/internal/logger"
)

// settleDelay gives the producer time to finish writing the file
// before it is handed off.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	inboxDir    string
	allowedExts []string
	handler     EventHandler
	logger      logger.Logger
	watcher     *fsnotify.Watcher
}

// Start begins monitoring the inbox directory for new audio files.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started. Monitoring: %s", w.inboxDir)
	w.logger.Info(ctx, "Accepted formats: %s", strings.Join(w.allowedExts, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !w.isAudioFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-audio file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New audio file detected: %s", event.Name)
			time.Sleep(settleDelay)

			if err := w.handler(ctx, event.Name); err != nil {
				w.logger.Error(ctx, "Failed to register %s: %v", event.Name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) isAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range w.allowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}
