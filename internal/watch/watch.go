// Package watch reports external modifications to a single file, so the
// editor can offer a reload when the on-disk copy changes underneath it.
//
// The parent directory is watched rather than the file itself: most tools
// save by writing a temporary file and renaming it over the original,
// which silently drops a watch placed on the file's inode.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the burst of events a single save produces.
const debounceWindow = 100 * time.Millisecond

// Watcher reports changes to one file.
type Watcher struct {
	fw     *fsnotify.Watcher
	name   string
	events chan struct{}
	errs   chan error
	done   chan struct{}
}

// New starts watching path. Close must be called to release the watch.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		fw:     fw,
		name:   filepath.Base(abs),
		events: make(chan struct{}, 1),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers one notification per external change, debounced.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Errors delivers watcher failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}
