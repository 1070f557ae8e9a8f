package audio

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/marqueekit/marquee/internal/config"
	"github.com/marqueekit/marquee/internal/entry"
)

// Manager maps priority bands to chime files and drives the player. It
// follows the daemon config for volume and per-band sound paths.
type Manager struct {
	logger  *slog.Logger
	player  *Player
	watcher *Watcher

	mu  sync.RWMutex
	cfg *config.DaemonConfig
}

// NewManager creates an audio manager for the given config.
func NewManager(cfg *config.DaemonConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultDaemonConfig()
	}

	player := NewPlayer(logger)
	m := &Manager{
		logger:  logger,
		player:  player,
		watcher: NewWatcher(player, logger),
		cfg:     cfg,
	}
	m.applyConfig()
	return m
}

// applyConfig pushes volume onto the player and preloads configured chimes.
func (m *Manager) applyConfig() {
	m.mu.RLock()
	cfg := m.cfg
	m.mu.RUnlock()

	m.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)

	for _, path := range m.soundPaths(cfg) {
		if _, err := os.Stat(path); err != nil {
			m.logger.Warn("chime file not found", "path", path)
			continue
		}
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload chime", "path", path, "error", err)
		}
		m.watcher.Watch(path)
	}
}

func (m *Manager) soundPaths(cfg *config.DaemonConfig) []string {
	var paths []string
	for _, p := range []entry.Priority{
		entry.PriorityLow, entry.PriorityNormal, entry.PriorityHigh, entry.PriorityMax,
	} {
		if path := cfg.SoundForPriority(p); path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// Start begins watching chime files for changes.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.watcher.Start(ctx); err != nil {
		return err
	}
	m.logger.Info("audio manager started")
	return nil
}

// Stop shuts down the watcher and the player.
func (m *Manager) Stop() {
	m.watcher.Stop()
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}

// PlayForPriority plays the chime configured for the priority's band.
// A missing or unconfigured chime is not an error.
func (m *Manager) PlayForPriority(p entry.Priority) error {
	m.mu.RLock()
	cfg := m.cfg
	m.mu.RUnlock()

	if !cfg.Audio.Enabled {
		return nil
	}

	path := cfg.SoundForPriority(p)
	if path == "" {
		return nil
	}

	if err := m.player.Play(path); err != nil {
		m.logger.Warn("failed to play chime", "band", p.Band(), "path", path, "error", err)
		return err
	}
	return nil
}

// UpdateConfig swaps the config and re-preloads chimes. Called on hot reload.
func (m *Manager) UpdateConfig(cfg *config.DaemonConfig) {
	if cfg == nil {
		return
	}
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()

	m.applyConfig()
	m.logger.Debug("audio manager config updated")
}
