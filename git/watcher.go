package git

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mergeview/logger"
)

// watchedFiles are the git-dir entries whose changes mean the merge
// state or index moved under us.
var watchedFiles = map[string]bool{
	"index":      true,
	"MERGE_HEAD": true,
	"HEAD":       true,
}

// Watcher watches a repository's git dir and coalesces relevant file
// events into single notifications on Events.
type Watcher struct {
	Events chan struct{}

	fs        *fsnotify.Watcher
	debounce  time.Duration
	closeOnce sync.Once
	done      chan struct{}
}

// Watch starts watching gitDir. Events separated by less than the
// debounce interval collapse into one notification.
func Watch(gitDir string, debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(gitDir); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{
		Events:   make(chan struct{}, 1),
		fs:       fs,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// git writes index.lock then renames it over index
			name := filepath.Base(ev.Name)
			if !watchedFiles[name] {
				continue
			}
			logger.Debug("git watcher: %s %s", ev.Op, name)
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("git watcher: %v", err)

		case <-timer.C:
			select {
			case w.Events <- struct{}{}:
			default:
			}
		}
	}
}

// Close stops the watcher and closes Events.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}
