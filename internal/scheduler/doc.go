// Package scheduler implements the entry presentation scheduler. It owns
// the displayed-entry state and the pending queue, applies precedence
// policy at admission, resolves dismissal descriptors, and drives a
// Presenter collaborator that performs the actual show/hide.
package scheduler
