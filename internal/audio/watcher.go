package audio

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"sync"
	"time"
)

// Watcher polls chime files for modification and invalidates the player's
// cache when one changes. Polling is used because chimes often live on
// filesystems where inotify is unreliable (network homes, overlay mounts).
type Watcher struct {
	logger *slog.Logger
	player *Player

	mu           sync.Mutex
	watched      map[string]time.Time
	pollInterval time.Duration
	running      bool
	stopCh       chan struct{}
	doneCh       chan struct{}
}

// NewWatcher creates a watcher with a 2 second poll interval.
func NewWatcher(player *Player, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:       logger,
		player:       player,
		watched:      make(map[string]time.Time),
		pollInterval: 2 * time.Second,
	}
}

// Watch adds a chime path to the poll set.
func (w *Watcher) Watch(path string) {
	if path == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if info, err := os.Stat(path); err == nil {
		w.watched[path] = info.ModTime()
	} else {
		w.watched[path] = time.Time{}
	}
}

// Start begins the poll loop.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.loop(ctx)
	return nil
}

// Stop halts the poll loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Watcher) check() {
	w.mu.Lock()
	paths := make(map[string]time.Time, len(w.watched))
	maps.Copy(paths, w.watched)
	w.mu.Unlock()

	for path, lastMod := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if mod := info.ModTime(); mod.After(lastMod) {
			w.logger.Debug("chime file changed, invalidating cache", "path", path)

			w.mu.Lock()
			w.watched[path] = mod
			w.mu.Unlock()

			w.player.Invalidate(path)
		}
	}
}
