package traversal

import (
	"github.com/vertexdb/vertexdb/internal/storage"
)

// Builder is the fluent, step-wise traversal engine of spec.md's C5. It
// carries a single active transaction and a sequence of TraversalValues
// (current) representing the result of every step so far. Steps are
// concrete methods (no trait-object dispatch — permitted explicitly by
// spec.md §9 Design Notes, and how
// original_source/helix-engine/src/graph_core/traversal.rs's own
// TraversalBuilder is implemented: inherent methods, not a polymorphic
// step interface).
//
// Steps never return an error directly — each records any failure on
// err and becomes a no-op once err is set, so a call chain reads
// linearly and the caller checks the outcome once, at Result/Execute.
// This mirrors the Rust original's infallible "&mut Self" chaining
// while still surfacing storage errors through Go's idioms.
type Builder struct {
	ro      *storage.ReadTxn
	rw      *storage.WriteTxn
	vars    map[string]Value
	current []Value
	err     error
}

// NewReadBuilder starts a traversal scoped to a read-only transaction.
// Write steps (AddV, AddE, UpdateProps, ForEachNodeMut) set ErrReadOnly
// if called against it.
func NewReadBuilder(ro *storage.ReadTxn) *Builder {
	return &Builder{ro: ro, vars: map[string]Value{}}
}

// NewWriteBuilder starts a traversal scoped to a read-write transaction,
// so both read and write steps are available.
func NewWriteBuilder(rw *storage.WriteTxn) *Builder {
	return &Builder{rw: rw, vars: map[string]Value{}}
}

// txn returns whichever transaction handle is active as a
// storage.TxnLike, so read steps work regardless of whether the Builder
// was opened read-only or read-write.
func (b *Builder) txn() storage.TxnLike {
	if b.rw != nil {
		return b.rw
	}
	return b.ro
}

// write returns the active write transaction, or ErrReadOnly if the
// Builder was opened with NewReadBuilder.
func (b *Builder) write() (*storage.WriteTxn, error) {
	if b.rw == nil {
		return nil, ErrReadOnly
	}
	return b.rw, nil
}

// fail records the first error seen during a step chain; subsequent
// steps become no-ops.
func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Err returns the first error recorded during the step chain, if any.
func (b *Builder) Err() error { return b.err }

// Current exposes the current step sequence for inspection by callers
// that don't want to go through a terminal step.
func (b *Builder) Current() []Value { return b.current }

// Set stores a named variable for later reuse within the same
// transaction's traversal chain.
func (b *Builder) Set(name string, v Value) *Builder {
	if b.err != nil {
		return b
	}
	b.vars[name] = v
	return b
}

// Get retrieves a named variable previously stored with Set.
func (b *Builder) Get(name string) (Value, bool) {
	v, ok := b.vars[name]
	return v, ok
}
