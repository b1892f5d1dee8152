package assets

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/tessera/engine/core"
)

// LoadFunc parses the watched file.
type LoadFunc[T any] func(path string) (T, error)

// Watcher reloads a single file whenever it changes on disk and publishes the
// parsed value. Only the most recent value is kept until it is polled, so a
// slow consumer never blocks the watcher.
type Watcher[T any] struct {
	path string
	load LoadFunc[T]

	mutex    sync.Mutex
	isClosed bool
	fsnotify *fsnotify.Watcher
	updates  chan T
	done     chan struct{}
	wg       sync.WaitGroup
}

func NewWatcher[T any](path string, load LoadFunc[T]) (*Watcher[T], error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher[T]{
		path:     abs,
		load:     load,
		fsnotify: fsWatch,
		updates:  make(chan T, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start watches the directory holding the file, so editors that replace the
// file instead of writing it in place are noticed too.
func (w *Watcher[T]) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.isClosed {
		return errors.New("watcher already closed")
	}
	if err := w.fsnotify.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.wg.Add(1)
	go w.start()
	return nil
}

func (w *Watcher[T]) Path() string {
	return w.path
}

// Updates delivers reloaded values.
func (w *Watcher[T]) Updates() <-chan T {
	return w.updates
}

// Poll returns the pending reloaded value, if any, without blocking.
func (w *Watcher[T]) Poll() (T, bool) {
	select {
	case v := <-w.updates:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

func (w *Watcher[T]) Close() error {
	w.mutex.Lock()
	if w.isClosed {
		w.mutex.Unlock()
		return nil
	}
	w.isClosed = true
	close(w.done)
	w.mutex.Unlock()

	w.wg.Wait()
	return w.fsnotify.Close()
}

func (w *Watcher[T]) start() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Has(fsnotify.Create) || e.Has(fsnotify.Write) {
				w.reload()
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("file watcher for %s: %s", w.path, err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher[T]) reload() {
	v, err := w.load(w.path)
	if err != nil {
		// usually a half written file, the next write event retries
		core.LogWarn("failed to reload %s: %s", w.path, err)
		return
	}
	// replace any value nobody polled yet
	select {
	case <-w.updates:
	default:
	}
	w.updates <- v
	core.LogInfo("reloaded %s", w.path)
}
