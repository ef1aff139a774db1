package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vertexdb/vertexdb/internal/graph"
)

// buildShortestPathFixture recreates the six-node, nine-edge graph from
// original_source/helix-engine/src/storage_core/storage_core.rs's
// shortest_path test (and spec.md §8.2's scenario 5): edges
// (0->1),(0->2),(1->3),(1->2),(2->1),(2->3),(2->4),(4->3),(4->5).
func buildShortestPathFixture(t *testing.T, engine *Engine) []graph.NodeID {
	t.Helper()
	rw := engine.BeginWrite()
	ids := make([]graph.NodeID, 6)
	for i := range ids {
		n, err := rw.CreateNode("node", nil)
		require.NoError(t, err)
		ids[i] = n.ID
	}
	edges := [][2]int{{0, 1}, {0, 2}, {1, 3}, {1, 2}, {2, 1}, {2, 3}, {2, 4}, {4, 3}, {4, 5}}
	for _, e := range edges {
		_, err := rw.CreateEdge("edge", ids[e[0]], ids[e[1]], nil)
		require.NoError(t, err)
	}
	require.NoError(t, rw.Commit())
	return ids
}

func TestShortestPathFromNodeZero(t *testing.T) {
	engine := newTestEngine(t)
	ids := buildShortestPathFixture(t, engine)

	ro := engine.BeginRead()
	defer ro.Discard()
	path, err := ShortestPath(ro, ids[0], ids[5])
	require.NoError(t, err)
	require.Len(t, path.Edges, 3)
	require.Equal(t, ids[0], path.Nodes[0].ID)
	require.Equal(t, ids[5], path.Nodes[len(path.Nodes)-1].ID)
}

func TestShortestPathFromNodeOne(t *testing.T) {
	engine := newTestEngine(t)
	ids := buildShortestPathFixture(t, engine)

	ro := engine.BeginRead()
	defer ro.Discard()
	path, err := ShortestPath(ro, ids[1], ids[5])
	require.NoError(t, err)
	require.Len(t, path.Edges, 3)
}

func TestShortestPathUnreachable(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()
	a, err := rw.CreateNode("node", nil)
	require.NoError(t, err)
	b, err := rw.CreateNode("node", nil)
	require.NoError(t, err)
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()
	_, err = ShortestPath(ro, a.ID, b.ID)
	require.ErrorIs(t, err, ErrPathNotFound)
}

func TestShortestPathSameNode(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()
	a, err := rw.CreateNode("node", nil)
	require.NoError(t, err)
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()
	path, err := ShortestPath(ro, a.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, path.Nodes, 1)
	require.Empty(t, path.Edges)
}
