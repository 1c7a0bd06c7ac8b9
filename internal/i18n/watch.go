package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the catalog whenever a JSON file in the override directory
// changes. It blocks until ctx is cancelled. Without an override directory it
// returns immediately.
func (b *Bundle) Watch(ctx context.Context) error {
	if b.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("i18n: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(b.dir); err != nil {
		return fmt.Errorf("i18n: watch %s: %w", b.dir, err)
	}
	slog.Info("Watching locales for changes", "dir", b.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := b.Reload(); err != nil {
				slog.Error("Failed to reload locales, keeping previous catalog", "file", event.Name, "error", err)
				continue
			}
			slog.Info("Locales reloaded", "file", event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Locale watcher error", "error", err)
		}
	}
}
