// Package watch reports changes to a single file made by other processes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts such as temp-file-then-rename writes.
const DefaultDebounce = 150 * time.Millisecond

// siblings are files SQLite writes next to the database.
var siblings = []string{"-wal", "-journal", "-shm"}

type options struct {
	logger *slog.Logger
}

// Option configures File.
type Option func(*options)

// WithLogger sets the logger for watcher errors.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// File watches path and sends on the returned channel after changes settle
// for debounce. Notifications coalesce: a slow reader sees at most one
// pending signal. The channel is closed once ctx is done.
func File(ctx context.Context, path string, debounce time.Duration, opts ...Option) (<-chan struct{}, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create watch dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// The parent directory is watched since atomic writes replace the file.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan struct{}, 1)
	go run(ctx, watcher, filepath.Base(path), debounce, out, o.logger)
	return out, nil
}

func run(ctx context.Context, watcher *fsnotify.Watcher, name string, debounce time.Duration, out chan<- struct{}, logger *slog.Logger) {
	defer close(out)
	defer watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !matches(filepath.Base(event.Name), name) || event.Op == fsnotify.Chmod {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch: fsnotify error", "error", err)

		case <-fire:
			fire = nil
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

func matches(base, name string) bool {
	if base == name {
		return true
	}
	for _, s := range siblings {
		if base == name+s {
			return true
		}
	}
	return false
}
