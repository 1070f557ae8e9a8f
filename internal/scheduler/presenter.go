package scheduler

import "github.com/marqueekit/marquee/internal/entry"

// Surface is an opaque handle to the host display surface. The scheduler
// only threads it between Presenter calls.
type Surface any

// Presenter performs the actual visual work for the scheduler. The
// scheduler decides what is shown and when; the presenter decides how a
// show or transition looks.
//
// All methods except the AnimateOut completion are invoked on the
// scheduler's goroutine. The done callback may be invoked from any
// goroutine; the scheduler marshals the continuation back itself.
type Presenter interface {
	// PrepareSurface creates the host surface. Called when an entry is
	// shown while no surface exists.
	PrepareSurface() (Surface, error)

	// Show renders the entry on the surface. When an entry is already
	// showing, the presenter transitions to the new one however it
	// sees fit.
	Show(s Surface, e *entry.Entry)

	// AnimateOut plays the exit transition for the entry and invokes
	// done exactly once when it concludes.
	AnimateOut(s Surface, e *entry.Entry, done func())

	// TeardownSurface destroys the surface once nothing remains to show.
	TeardownSurface(s Surface)
}
