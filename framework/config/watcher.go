package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Snapshot when a configuration file changes on disk.
//
//	w, err := config.NewWatcher(snap, "config.yaml", logger)
//	if err != nil { ... }
//	w.OnChange(func(s *config.Snapshot) { ... })
//	w.Start()
//	defer w.Stop()
//
// Editors often write files with several events in quick succession, so
// changes are deduplicated by modification time before a reload is triggered.
type Watcher struct {
	snap    *Snapshot
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	mu          sync.Mutex
	onChange    []func(*Snapshot)
	lastModTime time.Time

	stopCh  chan struct{}
	stopped sync.Once
}

// NewWatcher creates a watcher for path that reloads snap on change.
// The watch is on the file's directory so atomic rename-based saves are seen.
func NewWatcher(snap *Snapshot, path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watching %s: %w", path, err)
	}
	return &Watcher{
		snap:    snap,
		path:    path,
		watcher: fw,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// OnChange registers a callback invoked after each successful reload.
func (w *Watcher) OnChange(fn func(*Snapshot)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop ends watching and releases the underlying watcher. Safe to call twice.
func (w *Watcher) Stop() {
	w.stopped.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.handleChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleChange() {
	info, err := os.Stat(w.path)
	if err != nil {
		w.logger.Warn("config file stat failed", zap.String("path", w.path), zap.Error(err))
		return
	}

	w.mu.Lock()
	if !info.ModTime().After(w.lastModTime) {
		w.mu.Unlock()
		return
	}
	w.lastModTime = info.ModTime()
	callbacks := make([]func(*Snapshot), len(w.onChange))
	copy(callbacks, w.onChange)
	w.mu.Unlock()

	if err := w.snap.Reload(); err != nil {
		w.logger.Error("config reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("configuration reloaded", zap.String("path", w.path))
	for _, fn := range callbacks {
		fn(w.snap)
	}
}
