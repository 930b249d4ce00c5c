package arxsense

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch observes the descriptor directory and triggers a full Reload on
// every create, write, rename, or remove of a descriptor file. It blocks
// until ctx is done or the watcher fails.
//
// Rebuilds are not debounced: descriptor sets are small and edits are
// infrequent, so rapid successive events each pay the (cheap) full-rebuild
// cost rather than adding latency to every change.
//
// If the descriptor directory does not exist when Watch is called,
// watching is skipped silently and Watch returns nil: a directory created
// afterwards is not picked up until Watch is called again. Known gap,
// preserved deliberately.
func (e *Engine) Watch(ctx context.Context) error {
	dir := e.DescriptorDir()
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("arxsense: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("arxsense: watch %s: %w", dir, err)
	}
	e.logger.Info("watching descriptor directory", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !e.isDescriptorEvent(ev) {
				continue
			}
			if err := e.Reload(); err != nil {
				// A failed rebuild leaves the previous registry in place;
				// the next event retries from scratch.
				e.logger.Warn("reload after change failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("descriptor watch error", "error", err)
		}
	}
}

// isDescriptorEvent reports whether a filesystem event concerns a
// descriptor file. Chmod-only events are ignored.
func (e *Engine) isDescriptorEvent(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasSuffix(ev.Name, e.ext)
}
