package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watcherDebounce = 200 * time.Millisecond

// watchDirFn is a test hook for injecting errors into fsnotify.Add.
var watchDirFn func(w *fsnotify.Watcher, dir string) error

// Watcher watches the config file and fires a debounced callback when
// it changes. Editors replace files with rename/create pairs, so the
// watch is on the containing directory rather than the file itself.
type Watcher struct {
	watcher *fsnotify.Watcher

	configPath string

	onChanged func()
	debounce  time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewWatcher creates a watcher for the given config path.
func NewWatcher(configPath string, onChanged func()) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:    watcher,
		configPath: filepath.Clean(configPath),
		onChanged:  onChanged,
		debounce:   watcherDebounce,
	}

	dir := filepath.Dir(w.configPath)
	if err := w.addWatch(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return w, nil
}

// Run processes events until the context is cancelled or the watcher
// is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isConfigEvent(event) {
				w.scheduleNotify()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			// Ignore errors; the watcher keeps running.
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		if w.watcher != nil {
			err = w.watcher.Close()
		}
	})
	return err
}

// addWatch delegates to the test hook or the real watcher.
func (w *Watcher) addWatch(dir string) error {
	if watchDirFn != nil {
		return watchDirFn(w.watcher, dir)
	}
	return w.watcher.Add(dir)
}

func (w *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.configPath {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleNotify() {
	if w.onChanged == nil {
		return
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
	w.mu.Unlock()
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	if w.onChanged != nil {
		w.onChanged()
	}
}
