package stage

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a stage file whenever it changes on disk. Only the latest
// successfully parsed list is kept; the render loop drains Updates once per
// frame.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan List
	log     *zap.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// Watch starts watching path. The parent directory is watched so that
// editors that replace the file on save are handled.
func Watch(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fsw,
		updates: make(chan List, 1),
		log:     log,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers reloaded stage lists.
func (w *Watcher) Updates() <-chan List {
	return w.updates
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("stage watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	list, err := Load(w.path)
	if err != nil {
		// Half-written files are common while saving; the next event retries.
		w.log.Debug("stage reload skipped", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("stages reloaded", zap.String("path", w.path), zap.Int("count", len(list)))

	// Keep only the newest list.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- list:
	default:
	}
}
