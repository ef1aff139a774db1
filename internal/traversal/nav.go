package traversal

import (
	"github.com/vertexdb/vertexdb/internal/graph"
	"github.com/vertexdb/vertexdb/internal/storage"
)

// Navigation steps apply the same neighbor lookup to every element of
// current, replacing each element in place. Per spec.md §9's resolution
// of the Open Question over Empty-insertion: this is done uniformly and
// element-wise for every element regardless of whether it holds a single
// node or an array of nodes — unlike
// original_source/helix-engine/src/graph_core/traversal.rs's out(),
// which only Empty-wraps a SingleNode element and never touches the
// elements of a NodeArray, and whose out_e/in_/in_e only look at
// current_step[0]. This implementation processes the whole slice for
// every step.

func (b *Builder) mapNodeNeighbors(neighborsOf func(graph.NodeID) ([]*graph.Node, error)) *Builder {
	if b.err != nil {
		return b
	}
	next := make([]Value, 0, len(b.current))
	for _, elem := range b.current {
		var sources []*graph.Node
		switch elem.Kind {
		case Empty:
			next = append(next, NewEmpty())
			continue
		case SingleNode:
			sources = []*graph.Node{elem.Node}
		case NodeArray:
			sources = elem.Nodes
		default:
			return b.fail(ErrTraversal)
		}
		var neighbors []*graph.Node
		for _, n := range sources {
			ns, err := neighborsOf(n.ID)
			if err != nil {
				return b.fail(err)
			}
			neighbors = append(neighbors, ns...)
		}
		if len(neighbors) == 0 {
			next = append(next, NewEmpty())
		} else {
			next = append(next, NewNodeArray(neighbors))
		}
	}
	b.current = next
	return b
}

func (b *Builder) mapNodeToEdges(edgesOf func(graph.NodeID) ([]*graph.Edge, error)) *Builder {
	if b.err != nil {
		return b
	}
	next := make([]Value, 0, len(b.current))
	for _, elem := range b.current {
		var sources []*graph.Node
		switch elem.Kind {
		case Empty:
			next = append(next, NewEmpty())
			continue
		case SingleNode:
			sources = []*graph.Node{elem.Node}
		case NodeArray:
			sources = elem.Nodes
		default:
			return b.fail(ErrTraversal)
		}
		var edges []*graph.Edge
		for _, n := range sources {
			es, err := edgesOf(n.ID)
			if err != nil {
				return b.fail(err)
			}
			edges = append(edges, es...)
		}
		if len(edges) == 0 {
			next = append(next, NewEmpty())
		} else {
			next = append(next, NewEdgeArray(edges))
		}
	}
	b.current = next
	return b
}

func (b *Builder) mapEdgeToNodes(endpoint func(*graph.Edge) graph.NodeID) *Builder {
	if b.err != nil {
		return b
	}
	next := make([]Value, 0, len(b.current))
	for _, elem := range b.current {
		var sources []*graph.Edge
		switch elem.Kind {
		case Empty:
			next = append(next, NewEmpty())
			continue
		case SingleEdge:
			sources = []*graph.Edge{elem.Edge}
		case EdgeArray:
			sources = elem.Edges
		default:
			return b.fail(ErrTraversal)
		}
		var nodes []*graph.Node
		for _, e := range sources {
			node, err := storage.GetNode(b.txn(), endpoint(e))
			if err != nil {
				if err == storage.ErrNodeNotFound {
					continue
				}
				return b.fail(err)
			}
			nodes = append(nodes, node)
		}
		if len(nodes) == 0 {
			next = append(next, NewEmpty())
		} else {
			next = append(next, NewNodeArray(nodes))
		}
	}
	b.current = next
	return b
}

// Out replaces each node element with the nodes reachable via its
// outgoing edges matching edgeLabel ("" matches any label).
func (b *Builder) Out(edgeLabel string) *Builder {
	return b.mapNodeNeighbors(func(id graph.NodeID) ([]*graph.Node, error) {
		return storage.GetOutNodes(b.txn(), id, edgeLabel)
	})
}

// OutE replaces each node element with its outgoing edges matching
// edgeLabel.
func (b *Builder) OutE(edgeLabel string) *Builder {
	return b.mapNodeToEdges(func(id graph.NodeID) ([]*graph.Edge, error) {
		return storage.GetOutEdges(b.txn(), id, edgeLabel)
	})
}

// In replaces each node element with the nodes that reach it via
// incoming edges matching edgeLabel.
func (b *Builder) In(edgeLabel string) *Builder {
	return b.mapNodeNeighbors(func(id graph.NodeID) ([]*graph.Node, error) {
		return storage.GetInNodes(b.txn(), id, edgeLabel)
	})
}

// InE replaces each node element with its incoming edges matching
// edgeLabel.
func (b *Builder) InE(edgeLabel string) *Builder {
	return b.mapNodeToEdges(func(id graph.NodeID) ([]*graph.Edge, error) {
		return storage.GetInEdges(b.txn(), id, edgeLabel)
	})
}

// Both replaces each node element with the nodes reachable by either
// direction's edges matching edgeLabel. Per spec.md §4.4.2, incoming
// neighbors are ordered ahead of outgoing ones.
func (b *Builder) Both(edgeLabel string) *Builder {
	return b.mapNodeNeighbors(func(id graph.NodeID) ([]*graph.Node, error) {
		in, err := storage.GetInNodes(b.txn(), id, edgeLabel)
		if err != nil {
			return nil, err
		}
		out, err := storage.GetOutNodes(b.txn(), id, edgeLabel)
		if err != nil {
			return nil, err
		}
		return append(in, out...), nil
	})
}

// BothE replaces each node element with edges in either direction
// matching edgeLabel, incoming first.
func (b *Builder) BothE(edgeLabel string) *Builder {
	return b.mapNodeToEdges(func(id graph.NodeID) ([]*graph.Edge, error) {
		in, err := storage.GetInEdges(b.txn(), id, edgeLabel)
		if err != nil {
			return nil, err
		}
		out, err := storage.GetOutEdges(b.txn(), id, edgeLabel)
		if err != nil {
			return nil, err
		}
		return append(in, out...), nil
	})
}

// Mutual replaces each node element with the nodes reachable by an
// outgoing edge matching edgeLabel AND by a returning incoming edge of
// the same label — i.e. pairs of nodes that point at each other.
func (b *Builder) Mutual(edgeLabel string) *Builder {
	return b.mapNodeNeighbors(func(id graph.NodeID) ([]*graph.Node, error) {
		out, err := storage.GetOutNodes(b.txn(), id, edgeLabel)
		if err != nil {
			return nil, err
		}
		in, err := storage.GetInNodes(b.txn(), id, edgeLabel)
		if err != nil {
			return nil, err
		}
		inSet := make(map[graph.NodeID]struct{}, len(in))
		for _, n := range in {
			inSet[n.ID] = struct{}{}
		}
		var mutual []*graph.Node
		for _, n := range out {
			if _, ok := inSet[n.ID]; ok {
				mutual = append(mutual, n)
			}
		}
		return mutual, nil
	})
}

// OutV replaces each edge element with the node each edge originates
// from.
func (b *Builder) OutV() *Builder {
	return b.mapEdgeToNodes(func(e *graph.Edge) graph.NodeID { return e.FromNode })
}

// InV replaces each edge element with the node each edge terminates at.
func (b *Builder) InV() *Builder {
	return b.mapEdgeToNodes(func(e *graph.Edge) graph.NodeID { return e.ToNode })
}

// BothV replaces each edge element with both of its endpoint nodes, sink
// node first then source node, per spec.md §4.4.2.
func (b *Builder) BothV() *Builder {
	if b.err != nil {
		return b
	}
	next := make([]Value, 0, len(b.current))
	for _, elem := range b.current {
		var sources []*graph.Edge
		switch elem.Kind {
		case Empty:
			next = append(next, NewEmpty())
			continue
		case SingleEdge:
			sources = []*graph.Edge{elem.Edge}
		case EdgeArray:
			sources = elem.Edges
		default:
			return b.fail(ErrTraversal)
		}
		var nodes []*graph.Node
		for _, e := range sources {
			to, err := storage.GetNode(b.txn(), e.ToNode)
			if err != nil && err != storage.ErrNodeNotFound {
				return b.fail(err)
			}
			if err == nil {
				nodes = append(nodes, to)
			}
			from, err := storage.GetNode(b.txn(), e.FromNode)
			if err != nil && err != storage.ErrNodeNotFound {
				return b.fail(err)
			}
			if err == nil {
				nodes = append(nodes, from)
			}
		}
		if len(nodes) == 0 {
			next = append(next, NewEmpty())
		} else {
			next = append(next, NewNodeArray(nodes))
		}
	}
	b.current = next
	return b
}
