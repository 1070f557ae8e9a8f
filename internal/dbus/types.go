package dbus

import (
	"fmt"
	"time"

	"github.com/marqueekit/marquee/internal/entry"
)

// Wire encodings for precedence values.
const (
	PrecedenceEnqueue      = "enqueue"
	PrecedenceOverride     = "override"
	PrecedenceOverrideDrop = "override-drop"
)

// Wire encodings for dismissal scopes.
const (
	ScopeDisplayed = "displayed"
	ScopeNamed     = "named"
	ScopePriority  = "priority"
	ScopeEnqueued  = "enqueued"
	ScopeAll       = "all"
)

// Status mirrors the scheduler snapshot across the bus.
type Status struct {
	DisplayedID    string
	DisplayedName  string
	DisplayedSince time.Time
	QueueLen       int
	SurfaceActive  bool
}

// ParsePrecedence decodes a wire precedence string.
func ParsePrecedence(s string) (entry.Precedence, error) {
	switch s {
	case PrecedenceEnqueue, "":
		return entry.Enqueue(), nil
	case PrecedenceOverride:
		return entry.Override(false), nil
	case PrecedenceOverrideDrop:
		return entry.Override(true), nil
	default:
		return entry.Precedence{}, fmt.Errorf("unknown precedence %q", s)
	}
}

// ParseDismissal decodes a wire dismissal. The name argument applies to the
// named scope, priority to the priority scope; both are ignored otherwise.
func ParseDismissal(scope, name string, priority uint32) (entry.Dismissal, error) {
	switch scope {
	case ScopeDisplayed, "":
		return entry.Displayed(), nil
	case ScopeNamed:
		if name == "" {
			return entry.Dismissal{}, fmt.Errorf("named dismissal requires a name")
		}
		return entry.WithName(name), nil
	case ScopePriority:
		return entry.LowerOrEqual(entry.Priority(priority)), nil
	case ScopeEnqueued:
		return entry.Enqueued(), nil
	case ScopeAll:
		return entry.All(), nil
	default:
		return entry.Dismissal{}, fmt.Errorf("unknown dismissal scope %q", scope)
	}
}
