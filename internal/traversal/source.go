package traversal

import (
	"github.com/vertexdb/vertexdb/internal/graph"
	"github.com/vertexdb/vertexdb/internal/storage"
)

// V replaces current with every node in the graph. Expensive — spec.md
// and original_source/.../traversal_steps.rs both flag this with the
// same warning ("can be a VERY expensive operation").
func (b *Builder) V() *Builder {
	if b.err != nil {
		return b
	}
	nodes, err := storage.GetAllNodes(b.txn())
	if err != nil {
		return b.fail(err)
	}
	b.current = []Value{NewNodeArray(nodes)}
	return b
}

// E replaces current with every edge in the graph.
func (b *Builder) E() *Builder {
	if b.err != nil {
		return b
	}
	edges, err := storage.GetAllEdges(b.txn())
	if err != nil {
		return b.fail(err)
	}
	b.current = []Value{NewEdgeArray(edges)}
	return b
}

// VFromID replaces current with the single node matching id.
func (b *Builder) VFromID(id graph.NodeID) *Builder {
	if b.err != nil {
		return b
	}
	node, err := storage.GetNode(b.txn(), id)
	if err != nil {
		return b.fail(err)
	}
	b.current = []Value{NewSingleNode(node)}
	return b
}

// VFromIDs replaces current with one node per id, in order.
func (b *Builder) VFromIDs(ids []graph.NodeID) *Builder {
	if b.err != nil {
		return b
	}
	nodes := make([]*graph.Node, 0, len(ids))
	for _, id := range ids {
		node, err := storage.GetNode(b.txn(), id)
		if err != nil {
			return b.fail(err)
		}
		nodes = append(nodes, node)
	}
	b.current = []Value{NewNodeArray(nodes)}
	return b
}

// EFromID replaces current with the single edge matching id.
func (b *Builder) EFromID(id graph.EdgeID) *Builder {
	if b.err != nil {
		return b
	}
	edge, err := storage.GetEdge(b.txn(), id)
	if err != nil {
		return b.fail(err)
	}
	b.current = []Value{NewSingleEdge(edge)}
	return b
}

// VFromTypes replaces current with every node carrying one of the given
// labels, following storage_core.rs's get_nodes_by_types (one prefix
// scan per label).
func (b *Builder) VFromTypes(labels []string) *Builder {
	if b.err != nil {
		return b
	}
	var nodes []*graph.Node
	for _, label := range labels {
		found, err := storage.GetNodesByLabel(b.txn(), label)
		if err != nil {
			return b.fail(err)
		}
		nodes = append(nodes, found...)
	}
	b.current = []Value{NewNodeArray(nodes)}
	return b
}

// VFromSecondaryIndex replaces current with every node the given
// SecondaryIndex reports for value — the interface-only extension point
// of spec.md's C3, with no built-in index implementation.
func (b *Builder) VFromSecondaryIndex(index storage.SecondaryIndex, value graph.Value) *Builder {
	if b.err != nil {
		return b
	}
	ids, err := index.Lookup(b.txn(), value)
	if err != nil {
		return b.fail(err)
	}
	nodes := make([]*graph.Node, 0, len(ids))
	for _, id := range ids {
		node, err := storage.GetNode(b.txn(), id)
		if err != nil {
			return b.fail(err)
		}
		nodes = append(nodes, node)
	}
	b.current = []Value{NewNodeArray(nodes)}
	return b
}

// AddV creates a new node and replaces current with it. Requires a write
// transaction.
func (b *Builder) AddV(label string, props map[string]graph.Value) *Builder {
	if b.err != nil {
		return b
	}
	rw, err := b.write()
	if err != nil {
		return b.fail(err)
	}
	node, err := rw.CreateNode(label, props)
	if err != nil {
		return b.fail(err)
	}
	b.current = []Value{NewSingleNode(node)}
	return b
}

// AddE creates a new edge between fromID and toID and replaces current
// with it. Requires a write transaction.
func (b *Builder) AddE(label string, fromID, toID graph.NodeID, props map[string]graph.Value) *Builder {
	if b.err != nil {
		return b
	}
	rw, err := b.write()
	if err != nil {
		return b.fail(err)
	}
	edge, err := rw.CreateEdge(label, fromID, toID, props)
	if err != nil {
		return b.fail(err)
	}
	b.current = []Value{NewSingleEdge(edge)}
	return b
}
