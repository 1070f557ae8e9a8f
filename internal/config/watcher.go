package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the daemon config file and delivers reloaded
// configurations to a callback.
type Watcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	logger   *slog.Logger
	onReload func(*DaemonConfig)
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewWatcher creates a watcher for the config file at filePath. The
// callback runs on the watch goroutine with each successfully reloaded
// configuration; parse or validation failures are logged and skipped.
func NewWatcher(filePath string, logger *slog.Logger, onReload func(*DaemonConfig)) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  fsw,
		filePath: filePath,
		logger:   logger,
		onReload: onReload,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the config file for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory containing the file (more reliable for
	// editors that replace rather than rewrite)
	dir := filepath.Dir(w.filePath)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.watch()
	return nil
}

// watch is the main watch loop.
func (w *Watcher) watch() {
	filename := filepath.Base(w.filePath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("config file changed, reloading", "file", w.filePath)
				cfg, err := LoadDaemonConfig(w.filePath)
				if err != nil {
					w.logger.Warn("failed to reload config, keeping previous", "error", err)
					continue
				}
				if w.onReload != nil {
					w.onReload(cfg)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.done)
	return w.watcher.Close()
}
