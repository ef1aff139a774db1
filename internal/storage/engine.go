package storage

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/vertexdb/vertexdb/internal/graph"
)

// Engine is the persistent, ordered key-value store backing the graph.
// It implements the six-table layout of keys.go on top of BadgerDB,
// following pkg/storage/badger.go's BadgerEngine for its open/options/
// close lifecycle and tuning knobs, adapted to the single-label
// Node/Edge shape and explicit ReadTxn/WriteTxn handles this spec
// requires instead of the teacher's implicit db.View/db.Update closures.
type Engine struct {
	db *badger.DB
}

// Options configures the engine, mirroring pkg/storage/badger.go's
// BadgerOptions field-for-field (DataDir, InMemory, SyncWrites, Logger),
// since this spec's on-disk layout (§6.1: 10GB map size, 126 readers, 6
// sub-tables) is served by the same BadgerDB tuning knobs the teacher
// already uses.
type Options struct {
	DataDir    string
	InMemory   bool
	SyncWrites bool
	Logger     badger.Logger
}

// Open creates or opens a persistent Engine at dataDir.
func Open(dataDir string) (*Engine, error) {
	return OpenWithOptions(Options{DataDir: dataDir})
}

// OpenInMemory creates a transient Engine with no on-disk footprint,
// used by this package's own tests and by callers wanting a throwaway
// graph.
func OpenInMemory() (*Engine, error) {
	return OpenWithOptions(Options{InMemory: true})
}

// OpenWithOptions opens an Engine with full control over BadgerDB
// tuning, following the memory-constrained defaults in
// pkg/storage/badger.go's NewBadgerEngineWithOptions (same comment:
// these settings are always applied so the engine behaves reasonably in
// containerized environments without per-deployment tuning).
func OpenWithOptions(opts Options) (*Engine, error) {
	badgerOpts := badger.DefaultOptions(opts.DataDir)
	if opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	if opts.SyncWrites {
		badgerOpts = badgerOpts.WithSyncWrites(true)
	}
	if opts.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(opts.Logger)
	} else {
		badgerOpts = badgerOpts.WithLogger(nil)
	}
	badgerOpts = badgerOpts.
		WithMemTableSize(16 << 20).
		WithValueLogFileSize(64 << 20).
		WithNumMemtables(2).
		WithNumLevelZeroTables(2).
		WithNumLevelZeroTablesStall(4).
		WithValueThreshold(1024).
		WithBlockCacheSize(32 << 20).
		WithIndexCacheSize(16 << 20)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("storage: open engine: %w", err)
	}
	return &Engine{db: db}, nil
}

// Close releases the underlying BadgerDB handle.
func (e *Engine) Close() error {
	if err := e.db.Close(); err != nil {
		return fmt.Errorf("storage: close engine: %w", err)
	}
	return nil
}

// BeginRead starts a read-only, snapshot-isolated transaction.
func (e *Engine) BeginRead() *ReadTxn {
	return &ReadTxn{txn: e.db.NewTransaction(false), engine: e}
}

// BeginWrite starts a read-write transaction. Callers must Commit or
// Discard it. Write transactions are not serialised: several may be open
// at once and none blocks, and Badger's Commit returns badger.ErrConflict
// for a transaction whose reads were overwritten by one that committed
// after it began.
func (e *Engine) BeginWrite() *WriteTxn {
	return &WriteTxn{txn: e.db.NewTransaction(true), engine: e}
}

// TxnLike is satisfied by both ReadTxn and WriteTxn, letting the
// read-side helpers below serve both without duplicating logic —
// grounded on the same badger.Txn the teacher's BadgerTransaction wraps.
type TxnLike interface {
	BadgerTxn() *badger.Txn
}

// --- node operations ---

// CreateNode mints a fresh id, writes the node row and its label-index
// entry. Always creates (no existence check), following
// storage_core.rs's create_node.
func (t *WriteTxn) CreateNode(label string, props map[string]graph.Value) (*graph.Node, error) {
	if err := validateIdentifier("label", label); err != nil {
		return nil, err
	}
	id := graph.NodeID(uuid.NewString())
	node := &graph.Node{ID: id, Label: label, Properties: props, CreatedAt: time.Now().UTC()}
	if err := t.txn.Set(nodeKey(id), graph.EncodeNode(node)); err != nil {
		return nil, fmt.Errorf("storage: create node: %w", err)
	}
	if err := t.txn.Set(nodeLabelKey(label, id), []byte{}); err != nil {
		return nil, fmt.Errorf("storage: create node label index: %w", err)
	}
	return node, nil
}

// UpdateNodeProperties overwrites the property bag of an existing node,
// leaving its label (and label index) untouched — following
// pkg/storage/badger.go's UpdateNode, minus the label-change path that
// storage_core.rs's model has no equivalent for (a node's label is
// immutable once created, matching the original source).
func (t *WriteTxn) UpdateNodeProperties(id graph.NodeID, props map[string]graph.Value) (*graph.Node, error) {
	node, err := GetNode(t, id)
	if err != nil {
		return nil, err
	}
	node.Properties = props
	if err := t.txn.Set(nodeKey(id), graph.EncodeNode(node)); err != nil {
		return nil, fmt.Errorf("storage: update node: %w", err)
	}
	return node, nil
}

// UpdateEdgeProperties overwrites the property bag of an existing edge.
func (t *WriteTxn) UpdateEdgeProperties(id graph.EdgeID, props map[string]graph.Value) (*graph.Edge, error) {
	edge, err := GetEdge(t, id)
	if err != nil {
		return nil, err
	}
	edge.Properties = props
	if err := t.txn.Set(edgeKey(id), graph.EncodeEdge(edge)); err != nil {
		return nil, fmt.Errorf("storage: update edge: %w", err)
	}
	return edge, nil
}

// CheckExists reports whether a node id is present, without paying for
// the decode GetNode does — spec.md §4.2.1's check_exists.
func CheckExists(t TxnLike, id graph.NodeID) (bool, error) {
	_, err := t.BadgerTxn().Get(nodeKey(id))
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: check exists: %w", err)
	}
	return true, nil
}

// GetNode reads a single node by id. Works from either a ReadTxn or a
// WriteTxn via TxnLike.
func GetNode(t TxnLike, id graph.NodeID) (*graph.Node, error) {
	item, err := t.BadgerTxn().Get(nodeKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, ErrNodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get node: %w", err)
	}
	var node *graph.Node
	err = item.Value(func(val []byte) error {
		n, decErr := graph.DecodeNode(val)
		if decErr != nil {
			return decErr
		}
		node = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: decode node: %w", err)
	}
	return node, nil
}

// DeleteNode requires the node to exist, cascades to every edge touching
// it (collected via both adjacency prefixes, deleted using each edge's
// own endpoints rather than assuming they match id), then removes the
// node row and its label-index entry — following storage_core.rs's
// drop_node exactly.
func (t *WriteTxn) DeleteNode(id graph.NodeID) error {
	node, err := GetNode(t, id)
	if err != nil {
		return err
	}
	edgeIDs, err := collectAdjacentEdgeIDs(t.txn, id)
	if err != nil {
		return err
	}
	for _, eid := range edgeIDs {
		edge, err := GetEdge(t, eid)
		if err != nil {
			if err == ErrEdgeNotFound {
				continue
			}
			return err
		}
		if err := deleteEdgeEntries(t.txn, edge); err != nil {
			return err
		}
	}
	if err := t.txn.Delete(nodeKey(id)); err != nil {
		return fmt.Errorf("storage: delete node: %w", err)
	}
	if err := t.txn.Delete(nodeLabelKey(node.Label, id)); err != nil {
		return fmt.Errorf("storage: delete node label index: %w", err)
	}
	return nil
}

func collectAdjacentEdgeIDs(txn *badger.Txn, id graph.NodeID) ([]graph.EdgeID, error) {
	var ids []graph.EdgeID
	seen := map[graph.EdgeID]struct{}{}
	for _, prefix := range [][]byte{outEdgePrefix(id), inEdgePrefix(id)} {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			idStr, err := extractTrailingID(it.Item().KeyCopy(nil))
			if err != nil {
				it.Close()
				return nil, err
			}
			eid := graph.EdgeID(idStr)
			if _, ok := seen[eid]; !ok {
				seen[eid] = struct{}{}
				ids = append(ids, eid)
			}
		}
		it.Close()
	}
	return ids, nil
}

// GetNodesByLabel prefix-scans the node_labels table for a single label,
// following storage_core.rs's get_nodes_by_types (here: one label, since
// a node has exactly one label in this spec's model).
func GetNodesByLabel(t TxnLike, label string) ([]*graph.Node, error) {
	txn := t.BadgerTxn()
	prefix := nodeLabelPrefix(label)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()
	var nodes []*graph.Node
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		idStr, err := extractTrailingID(it.Item().KeyCopy(nil))
		if err != nil {
			return nil, err
		}
		node, err := GetNode(t, graph.NodeID(idStr))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// GetAllNodes iterates the entire node table.
func GetAllNodes(t TxnLike) ([]*graph.Node, error) {
	txn := t.BadgerTxn()
	prefix := []byte{prefixNode}
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	defer it.Close()
	var nodes []*graph.Node
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var node *graph.Node
		err := it.Item().Value(func(val []byte) error {
			n, decErr := graph.DecodeNode(val)
			if decErr != nil {
				return decErr
			}
			node = n
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("storage: decode node: %w", err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// --- edge operations ---

// CreateEdge requires both endpoints to already exist — checked before
// any write, so a missing endpoint leaves no partial state — then writes
// the edge row plus its label index and both directional adjacency
// entries. Grounded on storage_core.rs's create_edge.
func (t *WriteTxn) CreateEdge(label string, from, to graph.NodeID, props map[string]graph.Value) (*graph.Edge, error) {
	if err := validateIdentifier("label", label); err != nil {
		return nil, err
	}
	if _, err := GetNode(t, from); err != nil {
		return nil, err
	}
	if _, err := GetNode(t, to); err != nil {
		return nil, err
	}
	id := graph.EdgeID(uuid.NewString())
	edge := &graph.Edge{ID: id, Label: label, FromNode: from, ToNode: to, Properties: props, CreatedAt: time.Now().UTC()}
	if err := t.txn.Set(edgeKey(id), graph.EncodeEdge(edge)); err != nil {
		return nil, fmt.Errorf("storage: create edge: %w", err)
	}
	if err := t.txn.Set(edgeLabelKey(label, id), []byte{}); err != nil {
		return nil, fmt.Errorf("storage: create edge label index: %w", err)
	}
	if err := t.txn.Set(outEdgeKey(from, id), []byte{}); err != nil {
		return nil, fmt.Errorf("storage: create outgoing index: %w", err)
	}
	if err := t.txn.Set(inEdgeKey(to, id), []byte{}); err != nil {
		return nil, fmt.Errorf("storage: create incoming index: %w", err)
	}
	return edge, nil
}

// GetEdge reads a single edge by id.
func GetEdge(t TxnLike, id graph.EdgeID) (*graph.Edge, error) {
	item, err := t.BadgerTxn().Get(edgeKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, ErrEdgeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get edge: %w", err)
	}
	var edge *graph.Edge
	err = item.Value(func(val []byte) error {
		e, decErr := graph.DecodeEdge(val)
		if decErr != nil {
			return decErr
		}
		edge = e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: decode edge: %w", err)
	}
	return edge, nil
}

// DeleteEdge requires the edge to exist, then removes all four entries
// it wrote at creation time. Grounded on storage_core.rs's drop_edge.
func (t *WriteTxn) DeleteEdge(id graph.EdgeID) error {
	edge, err := GetEdge(t, id)
	if err != nil {
		return err
	}
	return deleteEdgeEntries(t.txn, edge)
}

func deleteEdgeEntries(txn *badger.Txn, edge *graph.Edge) error {
	if err := txn.Delete(edgeKey(edge.ID)); err != nil {
		return fmt.Errorf("storage: delete edge: %w", err)
	}
	if err := txn.Delete(edgeLabelKey(edge.Label, edge.ID)); err != nil {
		return fmt.Errorf("storage: delete edge label index: %w", err)
	}
	if err := txn.Delete(outEdgeKey(edge.FromNode, edge.ID)); err != nil {
		return fmt.Errorf("storage: delete outgoing index: %w", err)
	}
	if err := txn.Delete(inEdgeKey(edge.ToNode, edge.ID)); err != nil {
		return fmt.Errorf("storage: delete incoming index: %w", err)
	}
	return nil
}

// GetAllEdges iterates the entire edge table.
func GetAllEdges(t TxnLike) ([]*graph.Edge, error) {
	txn := t.BadgerTxn()
	prefix := []byte{prefixEdge}
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	defer it.Close()
	var edges []*graph.Edge
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var edge *graph.Edge
		err := it.Item().Value(func(val []byte) error {
			e, decErr := graph.DecodeEdge(val)
			if decErr != nil {
				return decErr
			}
			edge = e
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("storage: decode edge: %w", err)
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// GetOutEdges returns the edges leaving id whose label matches edgeLabel
// (empty string matches any label), extracting the edge id from the
// adjacency key's trailing segment — storage_core.rs's get_out_edges.
func GetOutEdges(t TxnLike, id graph.NodeID, edgeLabel string) ([]*graph.Edge, error) {
	return scanAdjacentEdges(t, outEdgePrefix(id), edgeLabel)
}

// GetInEdges returns the edges arriving at id whose label matches
// edgeLabel (empty string matches any label).
func GetInEdges(t TxnLike, id graph.NodeID, edgeLabel string) ([]*graph.Edge, error) {
	return scanAdjacentEdges(t, inEdgePrefix(id), edgeLabel)
}

func scanAdjacentEdges(t TxnLike, prefix []byte, edgeLabel string) ([]*graph.Edge, error) {
	txn := t.BadgerTxn()
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()
	var edges []*graph.Edge
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		idStr, err := extractTrailingID(it.Item().KeyCopy(nil))
		if err != nil {
			return nil, err
		}
		edge, err := GetEdge(t, graph.EdgeID(idStr))
		if err != nil {
			return nil, err
		}
		if edgeLabel != "" && edge.Label != edgeLabel {
			continue
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// GetOutNodes resolves the far endpoints of GetOutEdges, silently
// skipping any edge whose target node is missing (a dangling reference
// left by a bug elsewhere is not this call's problem to report) —
// following storage_core.rs's get_out_nodes.
func GetOutNodes(t TxnLike, id graph.NodeID, edgeLabel string) ([]*graph.Node, error) {
	edges, err := GetOutEdges(t, id, edgeLabel)
	if err != nil {
		return nil, err
	}
	return resolveEndpoints(t, edges, func(e *graph.Edge) graph.NodeID { return e.ToNode })
}

// GetInNodes resolves the far (source) endpoints of GetInEdges, same
// dangling-reference tolerance as GetOutNodes.
func GetInNodes(t TxnLike, id graph.NodeID, edgeLabel string) ([]*graph.Node, error) {
	edges, err := GetInEdges(t, id, edgeLabel)
	if err != nil {
		return nil, err
	}
	return resolveEndpoints(t, edges, func(e *graph.Edge) graph.NodeID { return e.FromNode })
}

func resolveEndpoints(t TxnLike, edges []*graph.Edge, endpoint func(*graph.Edge) graph.NodeID) ([]*graph.Node, error) {
	var nodes []*graph.Node
	for _, e := range edges {
		node, err := GetNode(t, endpoint(e))
		if err != nil {
			if err == ErrNodeNotFound {
				continue
			}
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
