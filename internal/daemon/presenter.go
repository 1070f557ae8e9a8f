package daemon

import (
	"github.com/marqueekit/marquee/internal/entry"
	"github.com/marqueekit/marquee/internal/scheduler"
)

// ShowHook runs after an entry reaches the surface. Hooks run on the
// scheduler goroutine and must not block.
type ShowHook func(*entry.Entry)

// observedPresenter decorates a presenter with show hooks. The daemon uses
// it to start expiry timers and play chimes without the scheduler or the
// display presenter knowing about either.
type observedPresenter struct {
	scheduler.Presenter
	hooks []ShowHook
}

// ObservePresenter wraps inner so every Show also invokes the given hooks.
func ObservePresenter(inner scheduler.Presenter, hooks ...ShowHook) scheduler.Presenter {
	return &observedPresenter{
		Presenter: inner,
		hooks:     hooks,
	}
}

func (p *observedPresenter) Show(s scheduler.Surface, e *entry.Entry) {
	p.Presenter.Show(s, e)
	for _, hook := range p.hooks {
		hook(e)
	}
}
