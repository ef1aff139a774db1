package storage

import (
	"github.com/dgraph-io/badger/v4"
)

// ReadTxn is an explicit read-only transaction handle, wrapping a
// *badger.Txn directly rather than hiding it behind a closure — the same
// shape as pkg/storage/badger_transaction.go's BadgerTransaction, which
// also carries the raw *badger.Txn as a field so callers can thread one
// transaction across many operations (here: across an entire traversal
// step chain, per spec.md §4.4 and §9's scoped-acquisition note).
type ReadTxn struct {
	txn    *badger.Txn
	engine *Engine
	done   bool
}

// WriteTxn is the read-write counterpart. It embeds the same
// *badger.Txn-wrapping shape; Commit or Discard must be called exactly
// once to release it.
type WriteTxn struct {
	txn    *badger.Txn
	engine *Engine
	done   bool
}

// Discard releases a read transaction without committing (read
// transactions never mutate state, so Discard is the only way to end
// one).
func (t *ReadTxn) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.txn.Discard()
}

// Commit persists every write made through this transaction.
func (t *WriteTxn) Commit() error {
	if t.done {
		return ErrTransactionBusy
	}
	t.done = true
	return t.txn.Commit()
}

// Discard abandons a write transaction, rolling back all its writes.
func (t *WriteTxn) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.txn.Discard()
}

// BadgerTxn returns the underlying *badger.Txn so both ReadTxn and
// WriteTxn can share the same read-side operation implementations in
// engine.go.
func (t *ReadTxn) BadgerTxn() *badger.Txn { return t.txn }
func (t *WriteTxn) BadgerTxn() *badger.Txn { return t.txn }
