package dbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueekit/marquee/internal/entry"
)

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input        string
		wantOverride bool
		wantDrop     bool
	}{
		{PrecedenceEnqueue, false, false},
		{"", false, false}, // empty defaults to enqueue
		{PrecedenceOverride, true, false},
		{PrecedenceOverrideDrop, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePrecedence(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOverride, p.IsOverride())
			assert.Equal(t, tt.wantDrop, p.DropsEnqueued())
		})
	}

	_, err := ParsePrecedence("sometimes")
	assert.Error(t, err)
}

func TestParseDismissal(t *testing.T) {
	tests := []struct {
		name     string
		scope    string
		argName  string
		priority uint32
		want     entry.Dismissal
		wantErr  bool
	}{
		{"displayed", ScopeDisplayed, "", 0, entry.Displayed(), false},
		{"empty defaults to displayed", "", "", 0, entry.Displayed(), false},
		{"named", ScopeNamed, "alert", 0, entry.WithName("alert"), false},
		{"named without name", ScopeNamed, "", 0, entry.Dismissal{}, true},
		{"priority", ScopePriority, "", 500, entry.LowerOrEqual(500), false},
		{"enqueued", ScopeEnqueued, "", 0, entry.Enqueued(), false},
		{"all", ScopeAll, "", 0, entry.All(), false},
		{"unknown", "everything", "", 0, entry.Dismissal{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDismissal(tt.scope, tt.argName, tt.priority)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}
