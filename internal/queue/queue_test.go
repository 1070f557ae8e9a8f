package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueekit/marquee/internal/entry"
)

func mustEntry(t *testing.T, name string, priority entry.Priority) *entry.Entry {
	t.Helper()
	e, err := entry.New("payload", entry.Attributes{
		Name:     name,
		Priority: priority,
	})
	require.NoError(t, err)
	return e
}

func names(entries []*entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func TestQueue_Empty(t *testing.T) {
	q := New()

	assert.True(t, q.IsEmpty())
	assert.Zero(t, q.Len())
	assert.Nil(t, q.Dequeue())
	assert.False(t, q.Contains(entry.AnyName()))
	assert.Zero(t, q.RemoveNamed("x"))
	assert.Zero(t, q.RemoveLowerOrEqual(entry.PriorityMax))
	q.RemoveAll() // no-op
}

func TestQueue_PriorityOrdering(t *testing.T) {
	q := New()
	q.Enqueue(mustEntry(t, "low", entry.PriorityLow))
	q.Enqueue(mustEntry(t, "high", entry.PriorityHigh))
	q.Enqueue(mustEntry(t, "normal", entry.PriorityNormal))

	assert.Equal(t, "high", q.Dequeue().Name())
	assert.Equal(t, "normal", q.Dequeue().Name())
	assert.Equal(t, "low", q.Dequeue().Name())
	assert.Nil(t, q.Dequeue())
}

func TestQueue_FIFOAmongEqualPriorities(t *testing.T) {
	q := New()
	q.Enqueue(mustEntry(t, "first", entry.PriorityNormal))
	q.Enqueue(mustEntry(t, "second", entry.PriorityNormal))
	q.Enqueue(mustEntry(t, "third", entry.PriorityNormal))

	assert.Equal(t, []string{"first", "second", "third"}, names(q.Entries()))

	// A higher priority entry jumps ahead without disturbing the rest.
	q.Enqueue(mustEntry(t, "urgent", entry.PriorityHigh))
	assert.Equal(t, []string{"urgent", "first", "second", "third"}, names(q.Entries()))
}

func TestQueue_RemoveNamed(t *testing.T) {
	q := New()
	q.Enqueue(mustEntry(t, "a", entry.PriorityNormal))
	q.Enqueue(mustEntry(t, "b", entry.PriorityNormal))
	q.Enqueue(mustEntry(t, "a", entry.PriorityNormal))
	q.Enqueue(mustEntry(t, "c", entry.PriorityNormal))

	removed := q.RemoveNamed("a")

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"b", "c"}, names(q.Entries()))
}

func TestQueue_RemoveLowerOrEqual(t *testing.T) {
	q := New()
	q.Enqueue(mustEntry(t, "low", entry.PriorityLow))
	q.Enqueue(mustEntry(t, "normal", entry.PriorityNormal))
	q.Enqueue(mustEntry(t, "high", entry.PriorityHigh))

	// Threshold is inclusive.
	removed := q.RemoveLowerOrEqual(entry.PriorityNormal)

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"high"}, names(q.Entries()))
}

func TestQueue_Contains(t *testing.T) {
	q := New()
	assert.False(t, q.Contains(entry.AnyName()))

	q.Enqueue(mustEntry(t, "alert", entry.PriorityNormal))

	assert.True(t, q.Contains(entry.AnyName()))
	assert.True(t, q.Contains(entry.Named("alert")))
	assert.False(t, q.Contains(entry.Named("other")))
}

func TestQueue_RemoveAll(t *testing.T) {
	q := New()
	q.Enqueue(mustEntry(t, "a", entry.PriorityNormal))
	q.Enqueue(mustEntry(t, "b", entry.PriorityHigh))

	q.RemoveAll()

	assert.True(t, q.IsEmpty())
	assert.Nil(t, q.Dequeue())
}

func TestQueue_DequeueDrainsInOrder(t *testing.T) {
	q := New()
	q.Enqueue(mustEntry(t, "n1", entry.PriorityNormal))
	q.Enqueue(mustEntry(t, "h1", entry.PriorityHigh))
	q.Enqueue(mustEntry(t, "n2", entry.PriorityNormal))
	q.Enqueue(mustEntry(t, "h2", entry.PriorityHigh))
	q.Enqueue(mustEntry(t, "l1", entry.PriorityLow))

	var drained []string
	for e := q.Dequeue(); e != nil; e = q.Dequeue() {
		drained = append(drained, e.Name())
	}

	assert.Equal(t, []string{"h1", "h2", "n1", "n2", "l1"}, drained)
}
