package confloader

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports configuration file changes to registered callbacks.
type Watcher struct {
	fsw    *fsnotify.Watcher
	log    *slog.Logger
	done   chan struct{}
	stop   sync.Once
	mu     sync.RWMutex
	onFile []func(string)
}

// NewWatcher creates a watcher. log may be nil.
func NewWatcher(log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		fsw:  fsw,
		log:  log,
		done: make(chan struct{}),
	}, nil
}

// Watch registers a file to be watched. The parent directory is
// watched rather than the file itself, so editor rename-and-replace
// saves are still seen.
func (w *Watcher) Watch(path string) error {
	dir := filepath.Dir(path)
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.log.Debug("watching config", "dir", dir, "file", filepath.Base(path))
	return nil
}

// OnChange registers a callback invoked with the path of a changed
// file. Callbacks run on the watcher goroutine and must not block.
func (w *Watcher) OnChange(fn func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onFile = append(w.onFile, fn)
}

// Start runs the watch loop until Stop. Most callers want StartAsync.
func (w *Watcher) Start() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.log.Debug("config file changed", "file", ev.Name, "op", ev.Op.String())
				w.notify(ev.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("config watch error", "error", err)
		case <-w.done:
			return
		}
	}
}

// StartAsync runs the watch loop on its own goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop ends the watch loop and releases the fsnotify watcher. Safe to
// call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) notify(path string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, fn := range w.onFile {
		fn(path)
	}
}
