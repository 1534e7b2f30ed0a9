// Package watcher watches a single project file and reports changes
// after a debounce interval, so external edits can be picked up while
// the editor is running.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher watches one file and invokes a callback on change. The
// callback runs on the watcher goroutine; callers that mutate shared
// state should only set a flag and act on their own thread.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	debounce time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	suspended bool
}

// New creates a watcher for the given file and starts delivering
// change notifications.
func New(path string, onChange func()) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory, not the file: editors that write via rename
	// replace the inode and a file watch would go stale.
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		watcher:  fsw,
		path:     absPath,
		onChange: onChange,
		debounce: defaultDebounce,
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.handleChange()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("Watcher error: %v\n", err)
		}
	}
}

// handleChange collapses bursts of events into one callback.
func (w *Watcher) handleChange() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.suspended {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

// Suspend drops change notifications until Resume. Used while the
// editor writes the file itself.
func (w *Watcher) Suspend() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suspended = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Resume re-enables notifications. Events that arrived while suspended
// are discarded.
func (w *Watcher) Resume() {
	// Let the write settle before listening again.
	time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.suspended = false
	})
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
