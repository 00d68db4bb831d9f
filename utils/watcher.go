// File: utils/watcher.go
package utils

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay is how long the file must stay quiet before it is reloaded.
const DefaultReloadDelay = 250 * time.Millisecond

// Watcher reloads a config file when it changes on disk.
// Invalid files are logged and ignored; the last good config stays current.
type Watcher struct {
	path     string
	delay    time.Duration
	onChange func(Config)

	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup

	mu      sync.RWMutex
	current Config
	timer   *time.Timer
}

// NewWatcher loads path once and prepares to watch it. onChange runs on the
// watcher goroutine after every successful reload.
func NewWatcher(path string, delay time.Duration, onChange func(Config)) (*Watcher, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if delay <= 0 {
		delay = DefaultReloadDelay
	}
	return &Watcher{
		path:      filepath.Clean(path),
		delay:     delay,
		onChange:  onChange,
		fsWatcher: fsWatcher,
		done:      make(chan struct{}),
		current:   cfg,
	}, nil
}

// Start begins watching. The directory is watched so that editors that
// replace the file on save are still noticed.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop ends watching and waits for the watch goroutine.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}

// Current returns the last successfully loaded config.
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.scheduleReload()
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Config watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg, err := LoadConfig(w.path)
	if err != nil {
		logger.Warn("Config reload failed, keeping previous config", "path", w.path, "error", err)
		return
	}
	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	logger.Info("Config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
