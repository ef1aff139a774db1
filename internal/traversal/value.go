// Package traversal implements the fluent, step-wise graph traversal
// builder: an eight-shape tagged TraversalValue union and a Builder that
// threads a sequence of such values through source, navigation, and
// terminal steps.
package traversal

import (
	"github.com/vertexdb/vertexdb/internal/graph"
)

// ValueKind tags which of the eight shapes a TraversalValue holds,
// mirroring the closed-variant TraversalValue enum in
// original_source/helix-engine/src/graph_core/traversal_steps.rs and its
// exhaustive match consumers in traversal.rs.
type ValueKind int

const (
	Empty ValueKind = iota
	SingleNode
	NodeArray
	SingleEdge
	EdgeArray
	SingleValue
	ValueArray
	Count
)

// KeyedValue is a single property value tagged with the property key it
// was read from — spec.md §4.3's "(key, Value)" pair.
type KeyedValue struct {
	Key string
	Val graph.Value
}

// Value is one element of a Builder's current step sequence.
type Value struct {
	Kind  ValueKind
	Node  *graph.Node
	Nodes []*graph.Node
	Edge  *graph.Edge
	Edges []*graph.Edge
	KV    KeyedValue
	KVs   []KeyedValue
	Num   int
}

func NewSingleNode(n *graph.Node) Value  { return Value{Kind: SingleNode, Node: n} }
func NewNodeArray(n []*graph.Node) Value { return Value{Kind: NodeArray, Nodes: n} }
func NewSingleEdge(e *graph.Edge) Value  { return Value{Kind: SingleEdge, Edge: e} }
func NewEdgeArray(e []*graph.Edge) Value { return Value{Kind: EdgeArray, Edges: e} }
func NewSingleValue(key string, v graph.Value) Value {
	return Value{Kind: SingleValue, KV: KeyedValue{Key: key, Val: v}}
}
func NewValueArray(v []KeyedValue) Value { return Value{Kind: ValueArray, KVs: v} }
func NewCount(n int) Value               { return Value{Kind: Count, Num: n} }
func NewEmpty() Value                    { return Value{Kind: Empty} }

// flattenNodes collects every node referenced across a current-step
// sequence, in order, skipping Empty elements — used by the terminal and
// utility steps (filter, map, for-each, property and shortest-path steps)
// that need to iterate "all current nodes" regardless of whether they
// arrived as SingleNode or NodeArray elements.
func flattenNodes(step []Value) []*graph.Node {
	var out []*graph.Node
	for _, v := range step {
		switch v.Kind {
		case SingleNode:
			out = append(out, v.Node)
		case NodeArray:
			out = append(out, v.Nodes...)
		}
	}
	return out
}

// flattenEdges is the edge analog of flattenNodes.
func flattenEdges(step []Value) []*graph.Edge {
	var out []*graph.Edge
	for _, v := range step {
		switch v.Kind {
		case SingleEdge:
			out = append(out, v.Edge)
		case EdgeArray:
			out = append(out, v.Edges...)
		}
	}
	return out
}

// flattenValues expands a current-step sequence into singleton Values:
// each node, edge and keyed property of an array becomes its own element,
// singletons and counts pass through, Empty is dropped — used by Count
// and Range, which spec.md
// requires to operate on the fully flattened item count regardless of
// shape.
func flattenValues(step []Value) []Value {
	var out []Value
	for _, v := range step {
		switch v.Kind {
		case Empty:
			// contributes nothing
		case NodeArray:
			for _, n := range v.Nodes {
				out = append(out, NewSingleNode(n))
			}
		case EdgeArray:
			for _, e := range v.Edges {
				out = append(out, NewSingleEdge(e))
			}
		case ValueArray:
			for _, kv := range v.KVs {
				out = append(out, NewSingleValue(kv.Key, kv.Val))
			}
		default:
			out = append(out, v)
		}
	}
	return out
}
