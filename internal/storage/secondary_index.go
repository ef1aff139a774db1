package storage

import (
	"github.com/vertexdb/vertexdb/internal/graph"
)

// SecondaryIndex is the v_from_secondary_index extension point: an
// interface with no built-in implementation, letting a caller plug in
// whatever lookup structure (property index, range index, full-text
// index) it needs without the storage engine maintaining one itself.
// Grounded on the shape of pkg/storage/schema.go's PropertyIndex and
// RangeIndex — a name plus a value-to-ids lookup — without adopting that
// file's full SchemaManager (unique constraints, composite keys,
// fulltext/vector indices are out of this spec's scope; see DESIGN.md).
type SecondaryIndex interface {
	// Name identifies the index, matching the index argument passed to
	// the VFromSecondaryIndex traversal step.
	Name() string
	// Lookup returns the ids of nodes whose indexed property equals
	// value.
	Lookup(t TxnLike, value graph.Value) ([]graph.NodeID, error)
}
