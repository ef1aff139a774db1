package storage

import (
	"fmt"

	"github.com/vertexdb/vertexdb/internal/graph"
)

// Path is the result of ShortestPath: nodes and edges ordered from
// origin to destination.
type Path struct {
	Nodes []*graph.Node
	Edges []*graph.Edge
}

// parentLink records, for a node discovered during BFS, which edge led
// to it and from which node.
type parentLink struct {
	viaEdge  graph.EdgeID
	fromNode graph.NodeID
}

// ShortestPath runs a breadth-first search over outgoing edges from from
// to to, returning the first path found of minimum edge-count. Any
// shortest path is acceptable when several exist of the same length —
// whichever edge is encountered first during iteration wins, with no
// secondary tie-break — following
// storage_core.rs's shortest_path (queue + visited set + parent map,
// end-first reconstruction, early exit at edge-discovery time).
func ShortestPath(t TxnLike, from, to graph.NodeID) (*Path, error) {
	if from == to {
		node, err := GetNode(t, from)
		if err != nil {
			return nil, err
		}
		return &Path{Nodes: []*graph.Node{node}}, nil
	}

	visited := map[graph.NodeID]struct{}{from: {}}
	parents := map[graph.NodeID]parentLink{}
	queue := []graph.NodeID{from}

	found := false
	for len(queue) > 0 && !found {
		current := queue[0]
		queue = queue[1:]

		edges, err := GetOutEdges(t, current, "")
		if err != nil {
			return nil, err
		}
		for _, edge := range edges {
			if _, seen := visited[edge.ToNode]; seen {
				continue
			}
			visited[edge.ToNode] = struct{}{}
			parents[edge.ToNode] = parentLink{viaEdge: edge.ID, fromNode: current}
			if edge.ToNode == to {
				found = true
				break
			}
			queue = append(queue, edge.ToNode)
		}
	}

	if !found {
		return nil, fmt.Errorf("storage: shortest path %s -> %s: %w", from, to, ErrPathNotFound)
	}
	return reconstructPath(t, from, to, parents)
}

// reconstructPath walks the parent map backwards from to, building the
// node and edge lists in end-first order and then reversing them to
// origin-first — matching storage_core.rs's reconstruct_path closure.
func reconstructPath(t TxnLike, from, to graph.NodeID, parents map[graph.NodeID]parentLink) (*Path, error) {
	var nodeIDs []graph.NodeID
	var edgeIDs []graph.EdgeID

	current := to
	for current != from {
		nodeIDs = append(nodeIDs, current)
		link := parents[current]
		edgeIDs = append(edgeIDs, link.viaEdge)
		current = link.fromNode
	}
	nodeIDs = append(nodeIDs, from)

	for i, j := 0, len(nodeIDs)-1; i < j; i, j = i+1, j-1 {
		nodeIDs[i], nodeIDs[j] = nodeIDs[j], nodeIDs[i]
	}
	for i, j := 0, len(edgeIDs)-1; i < j; i, j = i+1, j-1 {
		edgeIDs[i], edgeIDs[j] = edgeIDs[j], edgeIDs[i]
	}

	path := &Path{}
	for _, id := range nodeIDs {
		node, err := GetNode(t, id)
		if err != nil {
			return nil, err
		}
		path.Nodes = append(path.Nodes, node)
	}
	for _, id := range edgeIDs {
		edge, err := GetEdge(t, id)
		if err != nil {
			return nil, err
		}
		path.Edges = append(path.Edges, edge)
	}
	return path, nil
}
