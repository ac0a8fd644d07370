package cliconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openroberta/oraclient/internal/ports"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the config file when it changes and hands the parsed
// result to a callback. Only settings that are safe to change at runtime
// should be applied by the callback.
type Watcher struct {
	path     string
	onReload func(FileConfig)
	logger   ports.Logger
	watcher  *fsnotify.Watcher

	mu       sync.Mutex
	debounce *time.Timer
}

// NewWatcher starts watching the directory holding path. Changes made after
// NewWatcher returns are reported once Run is called.
func NewWatcher(path string, logger ports.Logger, onReload func(FileConfig)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Editors replace files on save, so the directory is watched instead of
	// the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{path: path, onReload: onReload, logger: logger, watcher: fw}, nil
}

// Run delivers reloads until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.stopDebounce()

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.scheduleReload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", ports.Err(err))
		}
	}
}

func (w *Watcher) scheduleReload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(reloadDebounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.reload()
	})
}

func (w *Watcher) stopDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
}

func (w *Watcher) reload() {
	fc, err := LoadFileConfig(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", ports.String("path", w.path), ports.Err(err))
		return
	}
	w.logger.Info("config reloaded", ports.String("path", w.path))
	w.onReload(fc)
}
