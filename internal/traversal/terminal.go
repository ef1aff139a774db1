package traversal

import (
	"github.com/vertexdb/vertexdb/internal/graph"
	"github.com/vertexdb/vertexdb/internal/storage"
)

// Count flattens current and replaces it with a single Count value,
// following original_source's count(): current_step.iter().flatten().count().
func (b *Builder) Count() *Builder {
	if b.err != nil {
		return b
	}
	flat := flattenValues(b.current)
	b.current = []Value{NewCount(len(flat))}
	return b
}

// Range flattens current and slices it to [start, end), clamping end to
// the flattened length rather than panicking — spec.md's resolution of
// the range() Open Question. Range(0, 0) on a non-empty input leaves
// current empty, so a following Count reports 0.
func (b *Builder) Range(start, end int) *Builder {
	if b.err != nil {
		return b
	}
	flat := flattenValues(b.current)
	if start < 0 {
		start = 0
	}
	if end > len(flat) {
		end = len(flat)
	}
	if start > end {
		start = end
	}
	b.current = append([]Value{}, flat[start:end]...)
	return b
}

// FilterNodes keeps only the nodes in current for which predicate
// returns true, replacing current with a single NodeArray of survivors.
func (b *Builder) FilterNodes(predicate func(*graph.Node) (bool, error)) *Builder {
	if b.err != nil {
		return b
	}
	nodes := flattenNodes(b.current)
	var kept []*graph.Node
	for _, n := range nodes {
		ok, err := predicate(n)
		if err != nil {
			return b.fail(err)
		}
		if ok {
			kept = append(kept, n)
		}
	}
	b.current = []Value{NewNodeArray(kept)}
	return b
}

// FilterEdges keeps only the edges in current for which predicate
// returns true.
func (b *Builder) FilterEdges(predicate func(*graph.Edge) (bool, error)) *Builder {
	if b.err != nil {
		return b
	}
	edges := flattenEdges(b.current)
	var kept []*graph.Edge
	for _, e := range edges {
		ok, err := predicate(e)
		if err != nil {
			return b.fail(err)
		}
		if ok {
			kept = append(kept, e)
		}
	}
	b.current = []Value{NewEdgeArray(kept)}
	return b
}

// GetProperties replaces current with the requested property values read
// off every node or edge currently in scope, in element order then key
// order. A key absent from an element's property map contributes
// nothing, per spec.md §4.4.3.
func (b *Builder) GetProperties(keys []string) *Builder {
	if b.err != nil {
		return b
	}
	var kvs []KeyedValue
	if nodes := flattenNodes(b.current); len(nodes) > 0 {
		for _, n := range nodes {
			for _, k := range keys {
				if v, ok := n.Properties[k]; ok {
					kvs = append(kvs, KeyedValue{Key: k, Val: v})
				}
			}
		}
	} else if edges := flattenEdges(b.current); len(edges) > 0 {
		for _, e := range edges {
			for _, k := range keys {
				if v, ok := e.Properties[k]; ok {
					kvs = append(kvs, KeyedValue{Key: k, Val: v})
				}
			}
		}
	}
	b.current = []Value{NewValueArray(kvs)}
	return b
}

// MapNodes replaces every node in current with mapFn's result. This is
// an in-memory transform of the traversal value only — it does not
// persist through the storage engine, matching
// original_source/.../traversal_steps.rs's map_nodes signature (takes
// &RoTxn, not &mut RwTxn).
func (b *Builder) MapNodes(mapFn func(*graph.Node) (*graph.Node, error)) *Builder {
	if b.err != nil {
		return b
	}
	nodes := flattenNodes(b.current)
	mapped := make([]*graph.Node, 0, len(nodes))
	for _, n := range nodes {
		out, err := mapFn(n)
		if err != nil {
			return b.fail(err)
		}
		mapped = append(mapped, out)
	}
	b.current = []Value{NewNodeArray(mapped)}
	return b
}

// MapEdges is the edge analog of MapNodes.
func (b *Builder) MapEdges(mapFn func(*graph.Edge) (*graph.Edge, error)) *Builder {
	if b.err != nil {
		return b
	}
	edges := flattenEdges(b.current)
	mapped := make([]*graph.Edge, 0, len(edges))
	for _, e := range edges {
		out, err := mapFn(e)
		if err != nil {
			return b.fail(err)
		}
		mapped = append(mapped, out)
	}
	b.current = []Value{NewEdgeArray(mapped)}
	return b
}

// ForEachNode runs fn for its side effects over every node in current,
// leaving current unchanged.
func (b *Builder) ForEachNode(fn func(*graph.Node) error) *Builder {
	if b.err != nil {
		return b
	}
	for _, n := range flattenNodes(b.current) {
		if err := fn(n); err != nil {
			return b.fail(err)
		}
	}
	return b
}

// ForEachNodeMut runs fn for its side effects over every node in
// current, giving fn access to the active write transaction so it can
// mutate storage as it goes. Requires a write transaction.
func (b *Builder) ForEachNodeMut(fn func(*graph.Node, *storage.WriteTxn) error) *Builder {
	if b.err != nil {
		return b
	}
	rw, err := b.write()
	if err != nil {
		return b.fail(err)
	}
	for _, n := range flattenNodes(b.current) {
		if err := fn(n, rw); err != nil {
			return b.fail(err)
		}
	}
	return b
}

// ForEachEdge runs fn for its side effects over every edge in current.
func (b *Builder) ForEachEdge(fn func(*graph.Edge) error) *Builder {
	if b.err != nil {
		return b
	}
	for _, e := range flattenEdges(b.current) {
		if err := fn(e); err != nil {
			return b.fail(err)
		}
	}
	return b
}

// UpdateProps persists props onto every node or edge currently in scope
// (whichever shape current holds), replacing each with its updated
// form. Requires a write transaction.
func (b *Builder) UpdateProps(props map[string]graph.Value) *Builder {
	if b.err != nil {
		return b
	}
	rw, err := b.write()
	if err != nil {
		return b.fail(err)
	}
	if nodes := flattenNodes(b.current); len(nodes) > 0 {
		updated := make([]*graph.Node, 0, len(nodes))
		for _, n := range nodes {
			merged := mergeProperties(n.Properties, props)
			out, err := rw.UpdateNodeProperties(n.ID, merged)
			if err != nil {
				return b.fail(err)
			}
			updated = append(updated, out)
		}
		b.current = []Value{NewNodeArray(updated)}
		return b
	}
	if edges := flattenEdges(b.current); len(edges) > 0 {
		updated := make([]*graph.Edge, 0, len(edges))
		for _, e := range edges {
			merged := mergeProperties(e.Properties, props)
			out, err := rw.UpdateEdgeProperties(e.ID, merged)
			if err != nil {
				return b.fail(err)
			}
			updated = append(updated, out)
		}
		b.current = []Value{NewEdgeArray(updated)}
		return b
	}
	return b
}

func mergeProperties(base, overlay map[string]graph.Value) map[string]graph.Value {
	merged := make(map[string]graph.Value, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// ShortestPathBetween replaces current with the shortest path from from
// to to as two entries: a NodeArray of the path's nodes followed by an
// EdgeArray of its edges, both ordered origin-first.
func (b *Builder) ShortestPathBetween(from, to graph.NodeID) *Builder {
	if b.err != nil {
		return b
	}
	path, err := storage.ShortestPath(b.txn(), from, to)
	if err != nil {
		return b.fail(err)
	}
	b.current = []Value{NewNodeArray(path.Nodes), NewEdgeArray(path.Edges)}
	return b
}

// ShortestPathFrom finds the shortest path from fromID to the single
// node currently in scope.
func (b *Builder) ShortestPathFrom(fromID graph.NodeID) *Builder {
	if b.err != nil {
		return b
	}
	nodes := flattenNodes(b.current)
	if len(nodes) != 1 {
		return b.fail(ErrTraversal)
	}
	return b.ShortestPathBetween(fromID, nodes[0].ID)
}

// ShortestPathTo finds the shortest path from the single node currently
// in scope to toID.
func (b *Builder) ShortestPathTo(toID graph.NodeID) *Builder {
	if b.err != nil {
		return b
	}
	nodes := flattenNodes(b.current)
	if len(nodes) != 1 {
		return b.fail(ErrTraversal)
	}
	return b.ShortestPathBetween(nodes[0].ID, toID)
}

// Result finishes the chain, returning the final current-step sequence
// or the first error recorded along the way.
func (b *Builder) Result() ([]Value, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.current, nil
}

// Execute finishes a write-oriented chain by committing its transaction.
// Discards (rolls back) instead if any step failed.
func (b *Builder) Execute() error {
	if b.rw == nil {
		return ErrReadOnly
	}
	if b.err != nil {
		b.rw.Discard()
		return b.err
	}
	return b.rw.Commit()
}
