package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	e, err := New("payload", Attributes{
		Name:     "banner",
		Priority: PriorityNormal,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "payload", e.Payload)
	assert.Equal(t, "banner", e.Name())
	assert.Equal(t, PriorityNormal, e.Priority())
	assert.False(t, e.SubmittedAt.IsZero())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		attrs   Attributes
		wantErr error
	}{
		{
			name:    "nil payload",
			payload: nil,
			attrs:   Attributes{Priority: PriorityNormal},
			wantErr: ErrNilPayload,
		},
		{
			name:    "negative priority",
			payload: "payload",
			attrs:   Attributes{Priority: -1},
			wantErr: ErrNegativePriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.payload, tt.attrs)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a, err := New("a", Attributes{})
	require.NoError(t, err)
	b, err := New("b", Attributes{})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestPriority_Band(t *testing.T) {
	tests := []struct {
		priority Priority
		want     string
	}{
		{PriorityMin, "min"},
		{100, "min"},
		{PriorityLow, "low"},
		{PriorityNormal, "normal"},
		{600, "normal"},
		{PriorityHigh, "high"},
		{PriorityMax, "max"},
		{5000, "max"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.priority.Band(), "priority %d", tt.priority)
	}
}

func TestPrecedence(t *testing.T) {
	assert.False(t, Enqueue().IsOverride())
	assert.False(t, Enqueue().DropsEnqueued())
	assert.Equal(t, "enqueue", Enqueue().String())

	assert.True(t, Override(false).IsOverride())
	assert.False(t, Override(false).DropsEnqueued())
	assert.Equal(t, "override", Override(false).String())

	assert.True(t, Override(true).IsOverride())
	assert.True(t, Override(true).DropsEnqueued())
	assert.Equal(t, "override-drop", Override(true).String())
}

func TestNameMatcher(t *testing.T) {
	named, err := New("p", Attributes{Name: "alert"})
	require.NoError(t, err)
	unnamed, err := New("p", Attributes{})
	require.NoError(t, err)

	assert.True(t, AnyName().Matches(named))
	assert.True(t, AnyName().Matches(unnamed))
	assert.True(t, Named("alert").Matches(named))
	assert.False(t, Named("alert").Matches(unnamed))
	assert.False(t, Named("other").Matches(named))

	// Zero value matches nothing.
	var zero NameMatcher
	assert.False(t, zero.Matches(named))
	assert.Equal(t, "none", zero.String())
	assert.Equal(t, "any", AnyName().String())
	assert.Equal(t, "name=alert", Named("alert").String())
}

func TestDismissal(t *testing.T) {
	tests := []struct {
		dismissal Dismissal
		kind      DismissKind
		str       string
	}{
		{Displayed(), DismissDisplayed, "displayed"},
		{WithName("toast"), DismissNamed, "named(toast)"},
		{LowerOrEqual(400), DismissLowerOrEqual, "priority(<=400)"},
		{Enqueued(), DismissEnqueued, "enqueued"},
		{All(), DismissAll, "all"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.dismissal.Kind())
		assert.Equal(t, tt.str, tt.dismissal.String())
	}

	assert.Equal(t, "toast", WithName("toast").TargetName())
	assert.Equal(t, Priority(400), LowerOrEqual(400).Threshold())
}
