package graph

import "time"

// NodeID is the textual form of a node's 128-bit v4 UUID.
type NodeID string

// EdgeID is the textual form of an edge's 128-bit v4 UUID.
type EdgeID string

// Node is a single vertex: one label, a property bag, and an id unique
// across the whole graph. CreatedAt is bookkeeping (not part of any
// invariant or operation) carried the way pkg/storage/types.go's Node
// carries timestamps beyond its Neo4j-compatible core fields.
type Node struct {
	ID         NodeID
	Label      string
	Properties map[string]Value
	CreatedAt  time.Time
}

// Edge is a single directed relationship between two nodes, with its own
// label, property bag, and id.
type Edge struct {
	ID         EdgeID
	Label      string
	FromNode   NodeID
	ToNode     NodeID
	Properties map[string]Value
	CreatedAt  time.Time
}
