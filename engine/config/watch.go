package config

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a cvar file when it changes on disk, so values can be
// tuned while the sandbox runs.
type Watcher struct {
	watcher *fsnotify.Watcher
	cvars   *CVars
	path    string
	closeCh chan struct{}
	once    sync.Once
}

// Watch starts watching path's directory and reloads cvars on writes to the
// file itself.
func Watch(cvars *CVars, path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		cvars:   cvars,
		path:    filepath.Clean(path),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

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
			if filepath.Clean(event.Name) != w.path || !isCVarFile(event.Name) {
				continue
			}
			// editors fire bursts of events per save
			now := time.Now()
			if now.Sub(last) < 100*time.Millisecond {
				continue
			}
			last = now
			if err := w.cvars.reload(w.path); err != nil {
				log.Printf("cvars: reload %s: %v", w.path, err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("cvars: watch error: %v", err)
		case <-w.closeCh:
			return
		}
	}
}

func isCVarFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
