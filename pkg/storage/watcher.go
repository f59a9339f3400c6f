package storage

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/statekit/persist/pkg/log"
)

// watchDebounce coalesces the write bursts editors and atomic renames
// produce into a single reload.
const watchDebounce = 100 * time.Millisecond

// FileWatcher monitors a FileStore's backing file via fsnotify and reloads
// the snapshot when it changes on disk.
type FileWatcher struct {
	store    *FileStore
	logger   log.Logger
	onReload func()

	mu       sync.Mutex
	debounce *time.Timer
}

// NewFileWatcher creates a watcher for the given store. onReload, if not nil,
// is invoked after each successful reload.
func NewFileWatcher(store *FileStore, logger log.Logger, onReload func()) *FileWatcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &FileWatcher{store: store, logger: logger, onReload: onReload}
}

// Run watches the store file until the context is cancelled. The parent
// directory is watched rather than the file itself so atomic renames are
// observed.
func (w *FileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(w.store.Path())
	if err := watcher.Add(dir); err != nil {
		return err
	}

	name := filepath.Base(w.store.Path())

	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("store watcher error", log.Err(err))
		}
	}
}

func (w *FileWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(watchDebounce, w.reload)
}

func (w *FileWatcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
		w.debounce = nil
	}
}

func (w *FileWatcher) reload() {
	if err := w.store.Reload(); err != nil {
		w.logger.Error("store reload failed", log.String("path", w.store.Path()), log.Err(err))
		return
	}
	w.logger.Debug("store reloaded", log.String("path", w.store.Path()))
	if w.onReload != nil {
		w.onReload()
	}
}
