// Package watcher notifies watch mode when the input document changes.
// Editors produce bursts of filesystem events per save; the watcher
// coalesces each burst into a single notification after a quiet period.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config names the document to watch and the quiet period.
type Config struct {
	Path        string
	DebounceDur time.Duration
}

// Watcher watches one document.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan struct{}
	done     chan struct{}
}

// New creates a watcher for cfg.Path. Call Start to begin receiving
// notifications and Stop to release the underlying fsnotify resources.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		path:     cfg.Path,
		debounce: cfg.DebounceDur,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching and returns the notification channel. The
// watch covers the document's directory: a watch on the file itself
// would detach when editors replace the file on save.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.run()

	return w.changes, nil
}

// Stop ends the watch.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	// quiet is nil until a relevant event arrives; every further event
	// restarts the debounce window.
	var quiet <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.matches(ev) {
				continue
			}
			quiet = time.After(w.debounce)

		case <-quiet:
			quiet = nil
			// The channel holds one pending notification; a consumer
			// mid-run picks up the latest state on its next receive.
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Callers that need error visibility can wrap the watcher.

		case <-w.done:
			return
		}
	}
}

// matches reports whether ev is a write to the watched document. Create
// counts as a write: replace-on-save shows up as remove plus create.
func (w *Watcher) matches(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
		return false
	}
	return filepath.Base(ev.Name) == filepath.Base(w.path)
}
