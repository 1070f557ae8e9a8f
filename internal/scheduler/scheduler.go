package scheduler

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/marqueekit/marquee/internal/entry"
	"github.com/marqueekit/marquee/internal/queue"
)

// ErrStopped is returned by Submit after the scheduler has been stopped.
var ErrStopped = errors.New("scheduler stopped")

// Status is a point-in-time snapshot of the scheduler's state.
type Status struct {
	Displayed      *entry.Entry // nil when idle
	DisplayedSince time.Time
	QueueLen       int
	SurfaceActive  bool
}

// Scheduler schedules entries for display, one at a time, according to
// priority and precedence. All state mutation runs serialized on a single
// goroutine; the exported methods are safe to call from any goroutine.
//
// Submission and dismissal are fire-and-forget. When several goroutines
// submit concurrently, their relative order is only as strict as the order
// their commands land on the internal channel.
type Scheduler struct {
	presenter Presenter
	logger    *slog.Logger

	// Owned by the run goroutine.
	pending *queue.Queue
	current *entry.Entry
	shownAt time.Time
	surface Surface
	gen     uint64 // display generation, bumped on every show

	cmds     chan func()
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	started  bool
	mu       sync.Mutex
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the scheduler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a scheduler driving the given presenter. Call Start before
// submitting entries.
func New(presenter Presenter, opts ...Option) *Scheduler {
	s := &Scheduler{
		presenter: presenter,
		logger:    slog.Default(),
		pending:   queue.New(),
		cmds:      make(chan func(), 64),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the scheduling goroutine.
func (s *Scheduler) Start() error {
	if s.presenter == nil {
		return errors.New("scheduler requires a presenter")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}
	s.started = true

	go s.run()
	s.logger.Debug("scheduler started")
	return nil
}

// Stop shuts the scheduler down, discarding pending entries and tearing
// down any active surface. It blocks until the scheduling goroutine exits.
// Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	s.stopOnce.Do(func() { close(s.stopCh) })
	if started {
		<-s.doneCh
	}
}

// run is the scheduling goroutine. Every command executes with exclusive
// access to (pending, current, surface).
func (s *Scheduler) run() {
	defer close(s.doneCh)

	for {
		select {
		case fn := <-s.cmds:
			fn()
		case <-s.stopCh:
			s.shutdown()
			return
		}
	}
}

// shutdown releases display state on the run goroutine.
func (s *Scheduler) shutdown() {
	s.pending.RemoveAll()
	s.current = nil
	if s.surface != nil {
		s.presenter.TeardownSurface(s.surface)
		s.surface = nil
	}
	s.logger.Debug("scheduler stopped")
}

// do marshals fn onto the scheduling goroutine. Returns false once the
// scheduler is stopping.
func (s *Scheduler) do(fn func()) bool {
	select {
	case s.cmds <- fn:
		return true
	case <-s.stopCh:
		return false
	}
}

// Submit constructs an entry from the payload and attributes and schedules
// it for display. The returned ID identifies the entry in later queries.
// Invalid attributes fail at construction; admission itself cannot fail.
func (s *Scheduler) Submit(payload any, attrs entry.Attributes) (string, error) {
	e, err := entry.New(payload, attrs)
	if err != nil {
		return "", err
	}

	if !s.do(func() { s.admit(e) }) {
		return "", ErrStopped
	}
	return e.ID, nil
}

// Dismiss resolves the descriptor against the queue and the displayed
// entry. The completion handler, if non-nil, runs on the scheduling
// goroutine once any exit animation concludes and before a successor is
// shown; it runs even when nothing matched.
func (s *Scheduler) Dismiss(d entry.Dismissal, completion func()) {
	s.do(func() { s.resolve(d, completion) })
}

// IsDisplaying reports whether the displayed entry satisfies the matcher.
func (s *Scheduler) IsDisplaying(m entry.NameMatcher) bool {
	return s.query(func() bool { return m.Matches(s.current) })
}

// QueueContains reports whether any queued entry satisfies the matcher.
func (s *Scheduler) QueueContains(m entry.NameMatcher) bool {
	return s.query(func() bool { return s.pending.Contains(m) })
}

// Displaying returns the displayed entry, if any.
func (s *Scheduler) Displaying() (*entry.Entry, bool) {
	st := s.Snapshot()
	return st.Displayed, st.Displayed != nil
}

// IsQueueEmpty reports whether the pending queue is empty.
func (s *Scheduler) IsQueueEmpty() bool {
	return s.query(func() bool { return s.pending.IsEmpty() })
}

// Snapshot returns the current scheduler state. Returns the zero Status
// after Stop.
func (s *Scheduler) Snapshot() Status {
	resp := make(chan Status, 1)
	ok := s.do(func() {
		resp <- Status{
			Displayed:      s.current,
			DisplayedSince: s.shownAt,
			QueueLen:       s.pending.Len(),
			SurfaceActive:  s.surface != nil,
		}
	})
	if !ok {
		return Status{}
	}
	select {
	case st := <-resp:
		return st
	case <-s.doneCh:
		return Status{}
	}
}

// query runs fn on the scheduling goroutine and waits for its answer.
// Returns false once the scheduler is stopping.
func (s *Scheduler) query(fn func() bool) bool {
	resp := make(chan bool, 1)
	if !s.do(func() { resp <- fn() }) {
		return false
	}
	select {
	case v := <-resp:
		return v
	case <-s.doneCh:
		return false
	}
}

// admit applies precedence policy to a newly submitted entry.
func (s *Scheduler) admit(e *entry.Entry) {
	prec := e.Attributes.Precedence
	switch {
	case prec.IsOverride():
		if prec.DropsEnqueued() {
			dropped := s.pending.Len()
			s.pending.RemoveAll()
			if dropped > 0 {
				s.logger.Debug("dropped enqueued entries on override", "count", dropped)
			}
		}
		// The displayed entry, if any, is superseded without an exit
		// animation; the presenter owns how the transition looks.
		s.show(e)

	case s.current != nil:
		s.pending.Enqueue(e)
		s.logger.Debug("entry enqueued",
			"id", e.ID,
			"name", e.Name(),
			"priority", int(e.Priority()),
			"queue_len", s.pending.Len(),
		)

	default:
		s.show(e)
	}
}

// show prepares the surface if needed and makes e the displayed entry.
func (s *Scheduler) show(e *entry.Entry) {
	if s.surface == nil {
		surf, err := s.presenter.PrepareSurface()
		if err != nil {
			s.logger.Warn("surface preparation failed, dropping entry",
				"id", e.ID,
				"name", e.Name(),
				"error", err,
			)
			return
		}
		s.surface = surf
	}

	s.gen++
	s.current = e
	s.shownAt = time.Now()
	s.presenter.Show(s.surface, e)

	s.logger.Debug("entry displayed",
		"id", e.ID,
		"name", e.Name(),
		"priority", int(e.Priority()),
		"precedence", e.Attributes.Precedence.String(),
	)
}

// resolve applies a dismissal descriptor to the queue and displayed entry.
func (s *Scheduler) resolve(d entry.Dismissal, completion func()) {
	switch d.Kind() {
	case entry.DismissDisplayed:
		s.retire(completion)

	case entry.DismissNamed:
		removed := s.pending.RemoveNamed(d.TargetName())
		if removed > 0 {
			s.logger.Debug("removed queued entries", "name", d.TargetName(), "count", removed)
		}
		if s.current != nil && s.current.Name() == d.TargetName() {
			s.retire(completion)
		} else {
			s.complete(completion)
		}

	case entry.DismissLowerOrEqual:
		removed := s.pending.RemoveLowerOrEqual(d.Threshold())
		if removed > 0 {
			s.logger.Debug("removed queued entries", "threshold", int(d.Threshold()), "count", removed)
		}
		if s.current != nil && s.current.Priority() <= d.Threshold() {
			s.retire(completion)
		} else {
			s.complete(completion)
		}

	case entry.DismissEnqueued:
		s.pending.RemoveAll()
		s.complete(completion)

	case entry.DismissAll:
		s.pending.RemoveAll()
		s.retire(completion)
	}
}

// retire animates out the displayed entry, then advances to the next
// candidate. With nothing displayed it degrades to the completion call.
func (s *Scheduler) retire(completion func()) {
	if s.current == nil {
		s.complete(completion)
		return
	}

	e := s.current
	gen := s.gen
	s.presenter.AnimateOut(s.surface, e, func() {
		// May fire on any goroutine; marshal the continuation back.
		s.do(func() { s.advance(gen, completion) })
	})
}

// advance runs after an exit animation ends. A stale generation means an
// override replaced the exiting entry mid-animation: the completion still
// runs, but the display state belongs to the newer entry.
func (s *Scheduler) advance(gen uint64, completion func()) {
	if gen != s.gen {
		s.complete(completion)
		return
	}

	s.current = nil
	s.complete(completion)

	if next := s.pending.Dequeue(); next != nil {
		s.show(next)
		return
	}

	if s.surface != nil {
		s.presenter.TeardownSurface(s.surface)
		s.surface = nil
		s.logger.Debug("surface torn down, scheduler idle")
	}
}

func (s *Scheduler) complete(completion func()) {
	if completion != nil {
		completion()
	}
}
