package config

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/lathe/engine/core"
)

// Watcher reloads a scene file when it changes on disk and fires
// core.EVENT_CODE_SCENE_CHANGED with the new *Scene as payload. Files that
// fail to load are logged and skipped; the last good scene stays current.
type Watcher struct {
	path string

	mutex   sync.RWMutex
	current *Scene

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	started  bool
	isClosed bool
}

func NewWatcher(path string, current *Scene) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     abs,
		current:  current,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		fsnotify: fsWatch,
	}, nil
}

// Start watches the directory of the scene file. Editors often replace
// files instead of writing them, which a watch on the file itself misses.
func (w *Watcher) Start() error {
	if w.isClosed {
		return errors.New("scene watcher already closed")
	}
	if w.started {
		return nil
	}
	if err := w.fsnotify.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.started = true
	go w.start()
	core.LogInfo("watching %s for changes", w.path)
	return nil
}

func (w *Watcher) Current() *Scene {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.current
}

func (w *Watcher) Close() error {
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	// without the goroutine nobody else releases the fsnotify handle
	if !w.started {
		return w.fsnotify.Close()
	}
	close(w.done)
	<-w.stopped
	return nil
}

func (w *Watcher) start() {
	defer close(w.stopped)
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.reload()
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-w.done:
			w.fsnotify.Close()
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		// half-written files land here too, the next write retries
		core.LogWarn("ignoring change to %s: %s", w.path, err)
		return
	}
	w.mutex.Lock()
	w.current = cfg
	w.mutex.Unlock()

	core.LogInfo("reloaded %s", w.path)
	core.EventFire(core.EVENT_CODE_SCENE_CHANGED, w, core.EventContext{Payload: cfg})
}
