package traversal

import "errors"

// Sentinel errors for the traversal builder, following the teacher's
// package-level errors.New style.
var (
	// ErrTraversal marks a step called against a current step shape it
	// cannot operate on (e.g. a node-only step called while current
	// holds edges).
	ErrTraversal = errors.New("traversal: invalid step for current value")
	// ErrReadOnly marks a mutating step (AddV, AddE, UpdateProps, ...)
	// called against a Builder opened with a read-only transaction.
	ErrReadOnly = errors.New("traversal: step requires a write transaction")
)
