package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/marqueekit/marquee/internal/config"
	"github.com/marqueekit/marquee/internal/entry"
	"github.com/marqueekit/marquee/internal/scheduler"
)

// ExpiryController auto-dismisses displayed banners after the per-band
// timeout. A fired timer only dismisses if its entry is still the one on the
// surface; a banner that was superseded or dismissed early is left alone.
type ExpiryController struct {
	logger *slog.Logger

	mu      sync.Mutex
	cfg     *config.DaemonConfig
	sched   *scheduler.Scheduler
	running bool

	timeoutCh chan string
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewExpiryController creates a controller for the given config.
func NewExpiryController(cfg *config.DaemonConfig, logger *slog.Logger) *ExpiryController {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultDaemonConfig()
	}
	return &ExpiryController{
		logger:    logger,
		cfg:       cfg,
		timeoutCh: make(chan string, 16),
	}
}

// Bind attaches the scheduler the controller dismisses on. Must be called
// before Start.
func (c *ExpiryController) Bind(sched *scheduler.Scheduler) {
	c.mu.Lock()
	c.sched = sched
	c.mu.Unlock()
}

// Start launches the timeout loop.
func (c *ExpiryController) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	go c.loop()
}

// Stop halts the timeout loop. Pending timers drain harmlessly.
func (c *ExpiryController) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stopCh)
	c.mu.Unlock()

	<-c.doneCh
}

// UpdateConfig swaps the timeout table. Timers already armed keep their
// original duration.
func (c *ExpiryController) UpdateConfig(cfg *config.DaemonConfig) {
	if cfg == nil {
		return
	}
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

// OnShow arms the expiry timer for an entry that just reached the surface.
// A zero timeout means the banner stays until dismissed.
func (c *ExpiryController) OnShow(e *entry.Entry) {
	c.mu.Lock()
	timeout := c.cfg.TimeoutForPriority(e.Priority())
	stopCh := c.stopCh
	running := c.running
	c.mu.Unlock()

	if !running || timeout <= 0 {
		return
	}

	id := e.ID
	go func() {
		time.Sleep(timeout)
		select {
		case c.timeoutCh <- id:
		case <-stopCh:
		}
	}()
}

func (c *ExpiryController) loop() {
	defer close(c.doneCh)

	for {
		select {
		case id := <-c.timeoutCh:
			c.expire(id)
		case <-c.stopCh:
			return
		}
	}
}

func (c *ExpiryController) expire(id string) {
	c.mu.Lock()
	sched := c.sched
	c.mu.Unlock()
	if sched == nil {
		return
	}

	st := sched.Snapshot()
	if st.Displayed == nil || st.Displayed.ID != id {
		return
	}

	c.logger.Debug("banner expired", "id", id)
	sched.Dismiss(entry.Displayed(), nil)
}
