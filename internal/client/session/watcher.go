package session

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/AleeDe/nafaverse/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// storeWatcher calls onChange, debounced, whenever the database file or its
// journal files are written. SQLite replaces and appends to sibling files,
// so the parent directory is watched and events are filtered by name.
type storeWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	base     string
	debounce time.Duration
	onChange func()
	log      logging.Logger

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

func newStoreWatcher(path string, debounce time.Duration, onChange func(), log logging.Logger) (*storeWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &storeWatcher{
		watcher:  w,
		dir:      dir,
		base:     filepath.Base(abs),
		debounce: debounce,
		onChange: onChange,
		log:      log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

func (w *storeWatcher) Start(ctx context.Context) {
	w.log.Debug(ctx, "watching store", "dir", w.dir, "file", w.base)
	go w.run(ctx)
}

// Stop ends the loop and waits for it.
func (w *storeWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		_ = w.watcher.Close()
	})
}

func (w *storeWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasPrefix(filepath.Base(ev.Name), w.base)
}

func (w *storeWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn(ctx, "store watcher", "error", err)
		case <-timer.C:
			w.onChange()
		}
	}
}
