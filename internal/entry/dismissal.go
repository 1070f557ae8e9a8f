package entry

import "fmt"

// DismissKind enumerates the closed set of dismissal request shapes.
type DismissKind int

const (
	// DismissDisplayed targets only the currently displayed entry.
	DismissDisplayed DismissKind = iota
	// DismissNamed targets all queued entries with a matching name, and
	// the displayed entry if its name matches too.
	DismissNamed
	// DismissLowerOrEqual targets all entries (queued and displayed)
	// whose priority is at or below a threshold.
	DismissLowerOrEqual
	// DismissEnqueued clears the queue and leaves the displayed entry alone.
	DismissEnqueued
	// DismissAll clears the queue and the displayed entry.
	DismissAll
)

// String returns the string representation of the dismissal kind.
func (k DismissKind) String() string {
	switch k {
	case DismissDisplayed:
		return "displayed"
	case DismissNamed:
		return "named"
	case DismissLowerOrEqual:
		return "priority"
	case DismissEnqueued:
		return "enqueued"
	case DismissAll:
		return "all"
	default:
		return "unknown"
	}
}

// Dismissal is a query selecting which entries a dismiss request targets.
// Construct one with the Dismiss* functions; each kind carries its own
// payload and the scheduler switches over them exhaustively.
type Dismissal struct {
	kind      DismissKind
	name      string
	threshold Priority
}

// Displayed returns the dismissal targeting only the displayed entry.
func Displayed() Dismissal {
	return Dismissal{kind: DismissDisplayed}
}

// WithName returns the dismissal targeting entries named name.
func WithName(name string) Dismissal {
	return Dismissal{kind: DismissNamed, name: name}
}

// LowerOrEqual returns the dismissal targeting entries whose priority is
// less than or equal to threshold.
func LowerOrEqual(threshold Priority) Dismissal {
	return Dismissal{kind: DismissLowerOrEqual, threshold: threshold}
}

// Enqueued returns the dismissal clearing only the pending queue.
func Enqueued() Dismissal {
	return Dismissal{kind: DismissEnqueued}
}

// All returns the dismissal clearing the queue and the displayed entry.
func All() Dismissal {
	return Dismissal{kind: DismissAll}
}

// Kind returns the dismissal's kind tag.
func (d Dismissal) Kind() DismissKind {
	return d.kind
}

// TargetName returns the name carried by a DismissNamed dismissal.
func (d Dismissal) TargetName() string {
	return d.name
}

// Threshold returns the priority carried by a DismissLowerOrEqual dismissal.
func (d Dismissal) Threshold() Priority {
	return d.threshold
}

// String returns the string representation of the dismissal.
func (d Dismissal) String() string {
	switch d.kind {
	case DismissNamed:
		return fmt.Sprintf("named(%s)", d.name)
	case DismissLowerOrEqual:
		return fmt.Sprintf("priority(<=%d)", d.threshold)
	default:
		return d.kind.String()
	}
}
