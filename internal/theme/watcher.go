package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a theme entry file and signals when it changes.
type Watcher struct {
	mu      sync.Mutex
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	path    string
	running bool
}

// NewWatcher creates a watcher for the entry file at path.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		logger:  logger,
		watcher: watcher,
		path:    path,
	}, nil
}

// Run starts watching and returns a channel that receives a value after each
// change. Bursts of changes collapse into one pending signal. The channel is
// closed once ctx is cancelled; the watcher cannot be restarted.
func (w *Watcher) Run(ctx context.Context) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Watch the directory containing the file (more reliable for atomic writes)
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = w.watcher.Close()
		return nil, err
	}
	w.running = true

	changes := make(chan struct{}, 1)
	go w.watch(ctx, changes)

	w.logger.Debug("theme watcher started", "path", w.path)
	return changes, nil
}

// watch is the main watch loop.
func (w *Watcher) watch(ctx context.Context, changes chan<- struct{}) {
	defer func() {
		_ = w.watcher.Close()
		close(changes)

		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.logger.Debug("theme watcher stopped", "path", w.path)
	}()

	filename := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only care about our file
			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("theme entry changed", "path", w.path, "op", event.Op.String())
				select {
				case changes <- struct{}{}:
				default:
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)
		}
	}
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
