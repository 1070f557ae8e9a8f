// Package queue implements the ordered holding area for entries waiting to
// be displayed. Dequeue always yields the highest-priority entry; arrival
// order is preserved among equal priorities.
package queue

import (
	"container/list"

	"github.com/marqueekit/marquee/internal/entry"
)

// Queue holds pending entries in priority order. It is not safe for
// concurrent use; the owning scheduler serializes all access.
type Queue struct {
	entries *list.List // of *entry.Entry, highest priority first
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{entries: list.New()}
}

// Enqueue inserts the entry respecting priority order. Entries with equal
// priority keep their arrival order, so insertion scans for the first
// strictly lower priority element.
func (q *Queue) Enqueue(e *entry.Entry) {
	if e == nil {
		return
	}

	for elem := q.entries.Front(); elem != nil; elem = elem.Next() {
		existing := elem.Value.(*entry.Entry)
		if e.Priority() > existing.Priority() {
			q.entries.InsertBefore(e, elem)
			return
		}
	}
	q.entries.PushBack(e)
}

// Dequeue removes and returns the highest-priority, earliest-arrived entry.
// Returns nil if the queue is empty.
func (q *Queue) Dequeue() *entry.Entry {
	front := q.entries.Front()
	if front == nil {
		return nil
	}
	q.entries.Remove(front)
	return front.Value.(*entry.Entry)
}

// RemoveAll discards every pending entry.
func (q *Queue) RemoveAll() {
	q.entries.Init()
}

// RemoveNamed removes all pending entries whose name equals name and
// returns how many were removed. Unaffected entries keep their relative
// order.
func (q *Queue) RemoveNamed(name string) int {
	return q.removeIf(func(e *entry.Entry) bool {
		return e.Attributes.Name == name
	})
}

// RemoveLowerOrEqual removes all pending entries whose priority is less
// than or equal to threshold (inclusive) and returns how many were removed.
func (q *Queue) RemoveLowerOrEqual(threshold entry.Priority) int {
	return q.removeIf(func(e *entry.Entry) bool {
		return e.Priority() <= threshold
	})
}

// removeIf removes every entry matching the predicate.
func (q *Queue) removeIf(match func(*entry.Entry) bool) int {
	removed := 0
	for elem := q.entries.Front(); elem != nil; {
		next := elem.Next()
		if match(elem.Value.(*entry.Entry)) {
			q.entries.Remove(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// Contains reports whether any pending entry satisfies the matcher. The
// wildcard matcher reports true iff the queue is non-empty.
func (q *Queue) Contains(m entry.NameMatcher) bool {
	for elem := q.entries.Front(); elem != nil; elem = elem.Next() {
		if m.Matches(elem.Value.(*entry.Entry)) {
			return true
		}
	}
	return false
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	return q.entries.Len()
}

// IsEmpty reports whether the queue holds no entries.
func (q *Queue) IsEmpty() bool {
	return q.entries.Len() == 0
}

// Entries returns a snapshot of the pending entries in dequeue order.
func (q *Queue) Entries() []*entry.Entry {
	snapshot := make([]*entry.Entry, 0, q.entries.Len())
	for elem := q.entries.Front(); elem != nil; elem = elem.Next() {
		snapshot = append(snapshot, elem.Value.(*entry.Entry))
	}
	return snapshot
}
