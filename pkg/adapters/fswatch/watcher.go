// Package fswatch reports when a loaded file changes on disk so the viewer
// can reload it.
package fswatch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/user/frameview/pkg/ports"
)

// DefaultDebounce is how long the file must stay quiet after an event
// before it is reported. Editors and encoders often write a file in
// several chunks.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a single file through its parent directory, which also
// catches files replaced by rename.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   ports.Logger
}

// New starts watching path. A negative debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, logger ports.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce < 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		watcher:  fw,
		logger:   logger.WithComponent("watch"),
	}, nil
}

// Run calls onChange from its own goroutine each time the file settles
// after a write or create. It returns when ctx is done or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.logger.Debug("Change detected: %s", ev.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watch error: %s", err.Error())
		}
	}
}

// Close stops the watcher. Run returns afterwards.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}
