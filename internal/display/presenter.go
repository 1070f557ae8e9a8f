package display

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/marqueekit/marquee/internal/config"
	"github.com/marqueekit/marquee/internal/entry"
	"github.com/marqueekit/marquee/internal/scheduler"
)

// Presenter renders banners on GTK layer-shell windows. The scheduler calls
// it from its own goroutine; every GTK operation is marshaled onto the main
// loop with glib.IdleAdd.
type Presenter struct {
	app    *gtk.Application
	logger *slog.Logger

	mu     sync.RWMutex
	cfg    *config.DaemonConfig
	styled bool
}

var _ scheduler.Presenter = (*Presenter)(nil)

// NewPresenter creates a presenter bound to the GTK application.
func NewPresenter(app *gtk.Application, cfg *config.DaemonConfig, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultDaemonConfig()
	}
	return &Presenter{
		app:    app,
		cfg:    cfg,
		logger: logger,
	}
}

// UpdateConfig swaps the display config. Takes effect on the next banner.
func (p *Presenter) UpdateConfig(cfg *config.DaemonConfig) {
	if cfg == nil {
		return
	}
	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()
}

func (p *Presenter) config() *config.DaemonConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// PrepareSurface creates a banner window on the GTK main loop and blocks
// until it exists.
func (p *Presenter) PrepareSurface() (scheduler.Surface, error) {
	type result struct {
		win *bannerWindow
		err error
	}
	ch := make(chan result, 1)

	glib.IdleAdd(func() {
		display := gdk.DisplayGetDefault()
		if display == nil {
			ch <- result{err: fmt.Errorf("no display available")}
			return
		}

		p.mu.Lock()
		if !p.styled {
			applyStyles(display)
			p.styled = true
		}
		p.mu.Unlock()

		ch <- result{win: newBannerWindow(p.app, p.config())}
	})

	r := <-ch
	if r.err != nil {
		return nil, r.err
	}
	p.logger.Debug("banner surface prepared")
	return r.win, nil
}

// Show restyles the surface for the entry and presents it.
func (p *Presenter) Show(s scheduler.Surface, e *entry.Entry) {
	win, ok := s.(*bannerWindow)
	if !ok {
		return
	}
	cfg := p.config()

	glib.IdleAdd(func() {
		win.SetEntry(e)
		win.Present(cfg.Display)
	})
	p.logger.Debug("banner shown", "id", e.ID, "name", e.Name(), "band", e.Priority().Band())
}

// AnimateOut fades the banner and fires done once the fade elapses. With a
// zero fade duration done fires immediately.
func (p *Presenter) AnimateOut(s scheduler.Surface, e *entry.Entry, done func()) {
	win, ok := s.(*bannerWindow)
	if !ok {
		done()
		return
	}

	fade := p.config().Display.ExitFade.Duration()
	if fade <= 0 {
		done()
		return
	}

	glib.IdleAdd(func() {
		win.BeginExit()
	})
	time.AfterFunc(fade, done)
}

// TeardownSurface destroys the banner window.
func (p *Presenter) TeardownSurface(s scheduler.Surface) {
	win, ok := s.(*bannerWindow)
	if !ok {
		return
	}
	glib.IdleAdd(func() {
		win.Close()
	})
	p.logger.Debug("banner surface torn down")
}
