// Package watcher re-runs a callback when a single file changes on disk.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultDebounce collapses the burst of events editors emit on save
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a file for changes
type Watcher struct {
	path     string
	onChange func() error
	debounce time.Duration
}

// New creates a new file watcher. onChange errors are logged and do not
// stop the watch.
func New(path string, onChange func() error) *Watcher {
	return &Watcher{
		path:     path,
		onChange: onChange,
		debounce: DefaultDebounce,
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch blocks until ctx is cancelled, calling onChange once per settled
// burst of writes. The parent directory is watched so that files replaced
// by rename are still followed.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	name := filepath.Base(w.path)
	log.WithField("path", w.path).Info("watching file for changes")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			log.WithField("path", w.path).Debug("file changed")
			if err := w.onChange(); err != nil {
				log.WithFields(log.Fields{"path": w.path, "err": err}).Warn("change handler failed")
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.WithField("err", err).Warn("watcher error")

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
