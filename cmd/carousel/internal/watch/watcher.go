// Package watch reports changes to a configuration file.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// ConfigWatcher calls onChange after the watched file is written, created
// or replaced. Bursts of events within the debounce window produce one call.
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	onChange func()
	watcher  *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// NewConfigWatcher watches path. A non-positive debounce uses DefaultDebounce.
// onChange runs on a timer goroutine.
func NewConfigWatcher(path string, debounce time.Duration, onChange func()) (*ConfigWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// The directory is watched so editors that replace the file on save
	// keep being observed.
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}
	return &ConfigWatcher{path: absPath, debounce: debounce, onChange: onChange, watcher: w}, nil
}

// Path returns the absolute path being watched.
func (cw *ConfigWatcher) Path() string { return cw.path }

// Run processes events until ctx is cancelled or the watcher is closed.
func (cw *ConfigWatcher) Run(ctx context.Context) {
	name := filepath.Base(cw.path)
	for {
		select {
		case <-ctx.Done():
			cw.stopTimer()
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				cw.stopTimer()
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("config change detected", slog.String("file", event.Name), slog.String("op", event.Op.String()))
				cw.trigger()
			case event.Has(fsnotify.Remove):
				slog.Warn("config file removed", slog.String("file", event.Name))
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", slog.Any("error", err))
		}
	}
}

// Close stops watching. Pending debounced calls are dropped.
func (cw *ConfigWatcher) Close() error {
	cw.stopTimer()
	return cw.watcher.Close()
}

func (cw *ConfigWatcher) trigger() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.debounce, cw.onChange)
}

func (cw *ConfigWatcher) stopTimer() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.timer != nil {
		cw.timer.Stop()
		cw.timer = nil
	}
}
