package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueekit/marquee/internal/entry"
)

type fakeSurface struct{}

// fakePresenter records the call sequence. Exit animations complete
// synchronously unless manualExit is set, in which case the test fires
// them explicitly.
type fakePresenter struct {
	mu         sync.Mutex
	calls      []string
	prepareErr error
	manualExit bool
	exits      []func()
}

func (p *fakePresenter) record(call string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
}

func (p *fakePresenter) callSeq() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *fakePresenter) PrepareSurface() (Surface, error) {
	if p.prepareErr != nil {
		return nil, p.prepareErr
	}
	p.record("prepare")
	return &fakeSurface{}, nil
}

func (p *fakePresenter) Show(_ Surface, e *entry.Entry) {
	p.record("show:" + e.Name())
}

func (p *fakePresenter) AnimateOut(_ Surface, e *entry.Entry, done func()) {
	p.record("out:" + e.Name())
	if p.manualExit {
		p.mu.Lock()
		p.exits = append(p.exits, done)
		p.mu.Unlock()
		return
	}
	done()
}

func (p *fakePresenter) fireExit(t *testing.T, i int) {
	t.Helper()
	p.mu.Lock()
	require.Less(t, i, len(p.exits))
	done := p.exits[i]
	p.mu.Unlock()
	done()
}

func (p *fakePresenter) TeardownSurface(_ Surface) {
	p.record("teardown")
}

func newStarted(t *testing.T, p Presenter) *Scheduler {
	t.Helper()
	s := New(p)
	require.NoError(t, s.Start())
	t.Cleanup(s.Stop)
	return s
}

func submit(t *testing.T, s *Scheduler, name string, priority entry.Priority, prec entry.Precedence) string {
	t.Helper()
	id, err := s.Submit("payload", entry.Attributes{
		Name:       name,
		Priority:   priority,
		Precedence: prec,
	})
	require.NoError(t, err)
	return id
}

func dismissAndWait(t *testing.T, s *Scheduler, d entry.Dismissal) {
	t.Helper()
	done := make(chan struct{}, 1)
	s.Dismiss(d, func() { done <- struct{}{} })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dismissal completion never ran")
	}
}

func TestScheduler_ShowWhenIdle(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "first", entry.PriorityNormal, entry.Enqueue())

	assert.True(t, s.IsDisplaying(entry.Named("first")))
	assert.True(t, s.IsQueueEmpty())
	assert.Equal(t, []string{"prepare", "show:first"}, p.callSeq())

	e, ok := s.Displaying()
	require.True(t, ok)
	assert.Equal(t, "first", e.Name())
}

func TestScheduler_EnqueueBehindDisplayed(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "first", entry.PriorityNormal, entry.Enqueue())
	submit(t, s, "second", entry.PriorityHigh, entry.Enqueue())

	// The second entry does not interrupt the first, whatever its priority.
	assert.True(t, s.IsDisplaying(entry.Named("first")))
	assert.False(t, s.IsDisplaying(entry.Named("second")))
	assert.True(t, s.QueueContains(entry.Named("second")))
	assert.Equal(t, []string{"prepare", "show:first"}, p.callSeq())
}

func TestScheduler_OverrideDropsQueue(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "shown", entry.PriorityNormal, entry.Enqueue())
	submit(t, s, "queued1", entry.PriorityNormal, entry.Enqueue())
	submit(t, s, "queued2", entry.PriorityHigh, entry.Enqueue())

	submit(t, s, "takeover", entry.PriorityMax, entry.Override(true))

	assert.True(t, s.IsDisplaying(entry.Named("takeover")))
	assert.True(t, s.IsQueueEmpty())
	// The superseded entry gets no exit animation.
	assert.Equal(t, []string{"prepare", "show:shown", "show:takeover"}, p.callSeq())
}

func TestScheduler_OverrideKeepsQueue(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "shown", entry.PriorityNormal, entry.Enqueue())
	submit(t, s, "queued", entry.PriorityNormal, entry.Enqueue())

	submit(t, s, "takeover", entry.PriorityLow, entry.Override(false))

	assert.True(t, s.IsDisplaying(entry.Named("takeover")))
	assert.True(t, s.QueueContains(entry.Named("queued")))

	// After the override entry is dismissed the queue resumes draining.
	dismissAndWait(t, s, entry.Displayed())
	assert.True(t, s.IsDisplaying(entry.Named("queued")))
	assert.True(t, s.IsQueueEmpty())
}

// Mirrors the E1/E2/E3 walkthrough: an enqueue shows immediately when
// idle, a second enqueue waits, a low-priority override still supersedes,
// and dismissal of the override resumes the preserved queue.
func TestScheduler_SupersessionScenario(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "e1", 1, entry.Enqueue())
	assert.True(t, s.IsDisplaying(entry.Named("e1")))

	submit(t, s, "e2", 5, entry.Enqueue())
	assert.True(t, s.QueueContains(entry.Named("e2")))

	submit(t, s, "e3", 0, entry.Override(false))
	assert.True(t, s.IsDisplaying(entry.Named("e3")))
	assert.True(t, s.QueueContains(entry.Named("e2")))

	dismissAndWait(t, s, entry.Displayed())

	assert.True(t, s.IsDisplaying(entry.Named("e2")))
	assert.Equal(t, []string{"prepare", "show:e1", "show:e3", "out:e3", "show:e2"}, p.callSeq())
}

func TestScheduler_DismissNamed(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "a", entry.PriorityNormal, entry.Enqueue()) // displayed
	for _, name := range []string{"a", "b", "a", "c"} {
		submit(t, s, name, entry.PriorityNormal, entry.Enqueue())
	}

	dismissAndWait(t, s, entry.WithName("a"))

	// Queued "a" entries are gone, the displayed "a" animated out, and
	// the earliest surviving entry took over.
	assert.True(t, s.IsDisplaying(entry.Named("b")))
	assert.False(t, s.QueueContains(entry.Named("a")))
	assert.True(t, s.QueueContains(entry.Named("c")))
}

func TestScheduler_DismissNamedLeavesUnmatchedDisplayed(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "keep", entry.PriorityNormal, entry.Enqueue())
	submit(t, s, "drop", entry.PriorityNormal, entry.Enqueue())

	dismissAndWait(t, s, entry.WithName("drop"))

	assert.True(t, s.IsDisplaying(entry.Named("keep")))
	assert.True(t, s.IsQueueEmpty())
	assert.NotContains(t, p.callSeq(), "out:keep")
}

func TestScheduler_DismissLowerOrEqual(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "shown", entry.PriorityHigh, entry.Enqueue())
	submit(t, s, "low", entry.PriorityLow, entry.Enqueue())
	submit(t, s, "normal", entry.PriorityNormal, entry.Enqueue())
	submit(t, s, "high", entry.PriorityHigh, entry.Enqueue())

	// Threshold is inclusive and the displayed entry is above it.
	dismissAndWait(t, s, entry.LowerOrEqual(entry.PriorityNormal))

	assert.True(t, s.IsDisplaying(entry.Named("shown")))
	assert.False(t, s.QueueContains(entry.Named("low")))
	assert.False(t, s.QueueContains(entry.Named("normal")))
	assert.True(t, s.QueueContains(entry.Named("high")))
}

func TestScheduler_DismissLowerOrEqualHitsDisplayed(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "shown", entry.PriorityLow, entry.Enqueue())
	submit(t, s, "survivor", entry.PriorityHigh, entry.Enqueue())

	dismissAndWait(t, s, entry.LowerOrEqual(entry.PriorityLow))

	assert.True(t, s.IsDisplaying(entry.Named("survivor")))
	assert.Contains(t, p.callSeq(), "out:shown")
}

func TestScheduler_DismissEnqueued(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "shown", entry.PriorityNormal, entry.Enqueue())
	submit(t, s, "queued", entry.PriorityNormal, entry.Enqueue())

	dismissAndWait(t, s, entry.Enqueued())

	assert.True(t, s.IsDisplaying(entry.Named("shown")))
	assert.True(t, s.IsQueueEmpty())
	assert.NotContains(t, p.callSeq(), "out:shown")
}

func TestScheduler_DismissAllWhenIdle(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	dismissAndWait(t, s, entry.All())

	assert.False(t, s.IsDisplaying(entry.AnyName()))
	assert.Empty(t, p.callSeq())

	st := s.Snapshot()
	assert.Nil(t, st.Displayed)
	assert.False(t, st.SurfaceActive)
}

func TestScheduler_DrainToIdle(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "only", entry.PriorityNormal, entry.Enqueue())
	dismissAndWait(t, s, entry.Displayed())

	st := s.Snapshot()
	assert.Nil(t, st.Displayed)
	assert.False(t, st.SurfaceActive)
	assert.Zero(t, st.QueueLen)
	assert.Equal(t, []string{"prepare", "show:only", "out:only", "teardown"}, p.callSeq())
}

func TestScheduler_CompletionRunsBeforeSuccessor(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	submit(t, s, "first", entry.PriorityNormal, entry.Enqueue())
	submit(t, s, "second", entry.PriorityNormal, entry.Enqueue())

	done := make(chan struct{}, 1)
	s.Dismiss(entry.Displayed(), func() {
		p.record("completion")
		done <- struct{}{}
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("completion never ran")
	}

	require.True(t, s.IsDisplaying(entry.Named("second")))
	assert.Equal(t,
		[]string{"prepare", "show:first", "out:first", "completion", "show:second"},
		p.callSeq())
}

func TestScheduler_OverrideDuringExitAnimation(t *testing.T) {
	p := &fakePresenter{manualExit: true}
	s := newStarted(t, p)

	submit(t, s, "old", entry.PriorityNormal, entry.Enqueue())
	submit(t, s, "queued", entry.PriorityNormal, entry.Enqueue())

	done := make(chan struct{}, 1)
	s.Dismiss(entry.Displayed(), func() { done <- struct{}{} })

	// The override lands while "old" is still animating out.
	submit(t, s, "takeover", entry.PriorityMax, entry.Override(false))
	require.True(t, s.IsDisplaying(entry.Named("takeover")))

	p.fireExit(t, 0)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("completion never ran")
	}

	// The stale exit must not clear the override or drain the queue.
	assert.True(t, s.IsDisplaying(entry.Named("takeover")))
	assert.True(t, s.QueueContains(entry.Named("queued")))
	assert.NotContains(t, p.callSeq(), "teardown")
}

func TestScheduler_AtMostOneDisplayed(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	const n = 32
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Submit("payload", entry.Attributes{
				Name:     fmt.Sprintf("entry-%d", i),
				Priority: entry.PriorityNormal,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	st := s.Snapshot()
	require.NotNil(t, st.Displayed)
	assert.Equal(t, n-1, st.QueueLen)
	assert.True(t, st.SurfaceActive)
}

func TestScheduler_SubmitInvalidAttributes(t *testing.T) {
	p := &fakePresenter{}
	s := newStarted(t, p)

	_, err := s.Submit("payload", entry.Attributes{Priority: -1})
	assert.ErrorIs(t, err, entry.ErrNegativePriority)
	assert.Empty(t, p.callSeq())
}

func TestScheduler_PrepareSurfaceFailure(t *testing.T) {
	p := &fakePresenter{prepareErr: errors.New("no display")}
	s := newStarted(t, p)

	submit(t, s, "dropped", entry.PriorityNormal, entry.Enqueue())

	assert.False(t, s.IsDisplaying(entry.AnyName()))
	assert.True(t, s.IsQueueEmpty())
}

func TestScheduler_StopTearsDownSurface(t *testing.T) {
	p := &fakePresenter{}
	s := New(p)
	require.NoError(t, s.Start())

	submit(t, s, "shown", entry.PriorityNormal, entry.Enqueue())
	require.True(t, s.IsDisplaying(entry.Named("shown")))

	s.Stop()

	assert.Contains(t, p.callSeq(), "teardown")

	_, err := s.Submit("payload", entry.Attributes{})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestScheduler_StartRequiresPresenter(t *testing.T) {
	s := New(nil)
	assert.Error(t, s.Start())
}
