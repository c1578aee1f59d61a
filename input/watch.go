package input

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher hot-reloads a keymap file into a Mapping while the game runs.
// A broken edit keeps the previous bindings and reports the error.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	mapping *Mapping[string]

	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// WatchKeymap loads the keymap at path into mapping and keeps it in sync
// with edits to the file.
func WatchKeymap(path string, mapping *Mapping[string]) (*Watcher, error) {
	bindings, err := LoadKeymap(path)
	if err != nil {
		return nil, err
	}
	mapping.Replace(bindings)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file on save.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    filepath.Clean(path),
		mapping: mapping,
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < 100*time.Millisecond {
				continue
			}
			last = now
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	bindings, err := LoadKeymap(w.path)
	if err != nil {
		w.report(err)
		return
	}
	w.mapping.Replace(bindings)
	log.Printf("input: reloaded keymap %s (%d bindings)", w.path, len(bindings))
}

func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
