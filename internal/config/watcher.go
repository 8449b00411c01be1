package config

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the settings file and reloads it on change,
// delivering the new settings to a callback. The file may not exist
// yet; the parent directory is watched so a later create is seen too.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(Settings)

	mu     sync.Mutex
	closed bool
}

// NewWatcher starts watching path and calls onChange with freshly
// loaded settings after every write to it.
func NewWatcher(path string, onChange func(Settings)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     path,
		watcher:  fsw,
		onChange: onChange,
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	go w.watchChanges()
	return w, nil
}

func (w *Watcher) watchChanges() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			settings, err := Load(w.path)
			if err != nil {
				log.Printf("settings reload failed: %v", err)
				continue
			}
			w.onChange(settings)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("settings watcher error: %v", err)
		}
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}
