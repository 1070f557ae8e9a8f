// Package entry defines the core data structures for marquee: displayable
// entries, their scheduling attributes, and the descriptors used to select
// entries for dismissal.
package entry

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Well-known priority bands. Any non-negative value is valid; these are the
// conventional anchors callers are expected to reach for.
const (
	PriorityMin    Priority = 0
	PriorityLow    Priority = 250
	PriorityNormal Priority = 500
	PriorityHigh   Priority = 750
	PriorityMax    Priority = 1000
)

// Priority ranks entries within the queue and filters dismissal requests.
// Higher values are more important. Priorities form a total order.
type Priority int

// Band returns the name of the closest well-known band at or below p.
func (p Priority) Band() string {
	switch {
	case p >= PriorityMax:
		return "max"
	case p >= PriorityHigh:
		return "high"
	case p >= PriorityNormal:
		return "normal"
	case p >= PriorityLow:
		return "low"
	default:
		return "min"
	}
}

// Precedence governs whether a submitted entry interrupts whatever is
// currently displayed (override) or waits behind it (enqueue).
type Precedence struct {
	override     bool
	dropEnqueued bool
}

// Enqueue returns the precedence that defers behind the displayed entry.
func Enqueue() Precedence {
	return Precedence{}
}

// Override returns the precedence that supersedes the displayed entry
// immediately. If dropEnqueued is true, all queued entries are discarded
// when the override is admitted.
func Override(dropEnqueued bool) Precedence {
	return Precedence{override: true, dropEnqueued: dropEnqueued}
}

// IsOverride reports whether this precedence supersedes the displayed entry.
func (p Precedence) IsOverride() bool {
	return p.override
}

// DropsEnqueued reports whether admission discards the pending queue.
// Always false for enqueue precedence.
func (p Precedence) DropsEnqueued() bool {
	return p.override && p.dropEnqueued
}

// String returns the string representation of the precedence.
func (p Precedence) String() string {
	switch {
	case p.override && p.dropEnqueued:
		return "override-drop"
	case p.override:
		return "override"
	default:
		return "enqueue"
	}
}

// Attributes describe how an entry is scheduled. Attributes are immutable
// once the entry is constructed.
type Attributes struct {
	// Name is an optional identifier used by name-based dismissal.
	// It is not required to be unique.
	Name string

	// Priority orders the entry relative to other pending entries.
	Priority Priority

	// Precedence decides show-now versus enqueue at admission time.
	Precedence Precedence
}

// Validation errors. These are the only reportable failures in the
// scheduling core; everything past construction is a defined no-op.
var (
	ErrNegativePriority = errors.New("priority cannot be negative")
	ErrNilPayload       = errors.New("payload cannot be nil")
)

// Validate checks the attributes for contract violations.
func (a Attributes) Validate() error {
	if a.Priority < 0 {
		return ErrNegativePriority
	}
	return nil
}

// Entry is a unit of displayable content plus its scheduling attributes.
// Entries are immutable after construction; ownership passes to the
// scheduler on submission.
type Entry struct {
	// ID is a ULID assigned at construction. It doubles as the handle
	// returned from Submit so callers can refer to the entry later
	// without holding the scheduler.
	ID string

	// Payload is the displayable unit. The scheduler never inspects it;
	// only the presenter knows how to render it.
	Payload any

	Attributes Attributes

	SubmittedAt time.Time
}

// New constructs an Entry, validating the attributes and assigning a ULID.
func New(payload any, attrs Attributes) (*Entry, error) {
	if payload == nil {
		return nil, ErrNilPayload
	}
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &Entry{
		ID:          id.String(),
		Payload:     payload,
		Attributes:  attrs,
		SubmittedAt: time.Now(),
	}, nil
}

// Name returns the entry's attribute name.
func (e *Entry) Name() string {
	return e.Attributes.Name
}

// Priority returns the entry's priority.
func (e *Entry) Priority() Priority {
	return e.Attributes.Priority
}
