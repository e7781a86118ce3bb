// Package watch monitors a catalog file and re-runs a callback when it
// changes. It backs the CLI's batch --watch mode: edit the target list,
// and the batch is fetched again.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/skyviewhq/skyview/internal/ports"
	"github.com/skyviewhq/skyview/pkg/log"
)

// DefaultDebounce is the quiet period after a change before the callback
// fires. Editors often produce several events per save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher re-runs a callback when one file changes.
type Watcher struct {
	mu       sync.Mutex
	path     string
	debounce time.Duration
	logger   ports.Logger
	onChange func()
	timer    *time.Timer
}

// New creates a watcher for path. A non-positive debounce selects
// DefaultDebounce. The callback runs on the watcher goroutine; long work
// inside it delays further change handling, which is the desired behavior
// for re-fetching a batch.
func New(path string, debounce time.Duration, logger ports.Logger, onChange func()) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{path: path, debounce: debounce, logger: logger, onChange: onChange}
}

// Run watches until the context is canceled. The parent directory is
// watched rather than the file itself so atomic rename-style saves keep
// being observed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return err
	}

	w.logger.Info("watching catalog", log.String("path", w.path))

	fired := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.scheduleFire(fired)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", log.Err(err))
		case <-fired:
			w.logger.Info("catalog changed, refetching", log.String("path", w.path))
			w.onChange()
		}
	}
}

// scheduleFire arms the debounce timer, resetting it on bursts.
func (w *Watcher) scheduleFire(fired chan<- struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
}
