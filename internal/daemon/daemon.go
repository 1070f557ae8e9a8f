package daemon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/marqueekit/marquee/internal/audio"
	"github.com/marqueekit/marquee/internal/config"
	"github.com/marqueekit/marquee/internal/dbus"
	"github.com/marqueekit/marquee/internal/display"
	"github.com/marqueekit/marquee/internal/entry"
	"github.com/marqueekit/marquee/internal/scheduler"
)

// Daemon owns the marqueed component lifecycle. Start brings everything up
// in dependency order; Stop tears it down in reverse.
type Daemon struct {
	logger  *slog.Logger
	cfg     *config.DaemonConfig
	cfgPath string

	presenter *display.Presenter
	sched     *scheduler.Scheduler
	server    *dbus.Server
	audio     *audio.Manager
	expiry    *ExpiryController
	watcher   *config.Watcher
	cancel    context.CancelFunc
}

// New creates a daemon for the given config. cfgPath is the file watched
// for hot reload; empty disables watching.
func New(cfg *config.DaemonConfig, cfgPath string, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultDaemonConfig()
	}
	return &Daemon{
		logger:  logger,
		cfg:     cfg,
		cfgPath: cfgPath,
	}
}

// Scheduler returns the running scheduler. Nil before Start.
func (d *Daemon) Scheduler() *scheduler.Scheduler {
	return d.sched
}

// Start brings up the presenter, scheduler, expiry, audio, control bus and
// config watcher. Must be called from the GTK activate handler.
func (d *Daemon) Start(app *gtk.Application) error {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	d.presenter = display.NewPresenter(app, d.cfg, d.logger)
	d.audio = audio.NewManager(d.cfg, d.logger)
	d.expiry = NewExpiryController(d.cfg, d.logger)

	presenter := ObservePresenter(d.presenter,
		d.expiry.OnShow,
		d.playChime,
	)

	d.sched = scheduler.New(presenter, scheduler.WithLogger(d.logger))
	if err := d.sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	d.expiry.Bind(d.sched)
	d.expiry.Start()

	if err := d.audio.Start(ctx); err != nil {
		d.logger.Warn("failed to start audio manager", "error", err)
	}

	d.server = dbus.NewServer(d.sched, d.logger)
	if err := d.server.Start(); err != nil {
		d.teardown()
		return fmt.Errorf("failed to start control server: %w", err)
	}

	if d.cfgPath != "" {
		watcher, err := config.NewWatcher(d.cfgPath, d.logger, d.onReload)
		if err != nil {
			d.logger.Warn("failed to create config watcher", "error", err)
		} else {
			d.watcher = watcher
			if err := d.watcher.Start(); err != nil {
				d.logger.Warn("failed to start config watcher", "error", err)
			}
		}
	}

	d.logger.Info("marqueed ready", "dbus_interface", dbus.Interface)
	return nil
}

// Stop shuts down all components. Safe to call after a failed Start.
func (d *Daemon) Stop() {
	d.teardown()
	d.logger.Info("marqueed stopped")
}

func (d *Daemon) teardown() {
	if d.watcher != nil {
		_ = d.watcher.Stop()
		d.watcher = nil
	}
	if d.server != nil {
		_ = d.server.Stop()
		d.server = nil
	}
	if d.expiry != nil {
		d.expiry.Stop()
	}
	if d.sched != nil {
		d.sched.Stop()
	}
	if d.audio != nil {
		d.audio.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// playChime fires the band chime for a freshly shown banner. Playback runs
// off the scheduler goroutine so a slow decode cannot stall admission.
func (d *Daemon) playChime(e *entry.Entry) {
	go func() {
		_ = d.audio.PlayForPriority(e.Priority())
	}()
}

// onReload distributes a hot-reloaded config to the components that take
// live updates.
func (d *Daemon) onReload(cfg *config.DaemonConfig) {
	d.cfg = cfg
	d.presenter.UpdateConfig(cfg)
	d.audio.UpdateConfig(cfg)
	d.expiry.UpdateConfig(cfg)
	d.logger.Info("config reloaded")
}
