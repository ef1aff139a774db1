package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vertexdb/vertexdb/internal/graph"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestCreateAndGetNode(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()

	node, err := rw.CreateNode("person", map[string]graph.Value{"name": graph.NewString("Alice")})
	require.NoError(t, err)
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()
	got, err := GetNode(ro, node.ID)
	require.NoError(t, err)
	require.Equal(t, node.ID, got.ID)
	require.Equal(t, "person", got.Label)
}

func TestGetNodeNotFound(t *testing.T) {
	engine := newTestEngine(t)
	ro := engine.BeginRead()
	defer ro.Discard()
	_, err := GetNode(ro, "missing")
	require.ErrorIs(t, err, ErrNodeNotFound)
}

func TestCreateEdgeRequiresBothEndpoints(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()

	a, err := rw.CreateNode("person", nil)
	require.NoError(t, err)

	_, err = rw.CreateEdge("knows", a.ID, "missing-node", nil)
	require.ErrorIs(t, err, ErrNodeNotFound)
}

func TestDeleteNodeCascadesEdges(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()

	a, err := rw.CreateNode("person", nil)
	require.NoError(t, err)
	b, err := rw.CreateNode("person", nil)
	require.NoError(t, err)
	edge, err := rw.CreateEdge("knows", a.ID, b.ID, nil)
	require.NoError(t, err)

	require.NoError(t, rw.DeleteNode(a.ID))
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()
	_, err = GetNode(ro, a.ID)
	require.ErrorIs(t, err, ErrNodeNotFound)
	_, err = GetEdge(ro, edge.ID)
	require.ErrorIs(t, err, ErrEdgeNotFound)

	// b survives; its incoming index no longer references the deleted edge.
	inEdges, err := GetInEdges(ro, b.ID, "")
	require.NoError(t, err)
	require.Empty(t, inEdges)
}

func TestOutInAdjacency(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()

	a, err := rw.CreateNode("person", nil)
	require.NoError(t, err)
	b, err := rw.CreateNode("person", nil)
	require.NoError(t, err)
	_, err = rw.CreateEdge("knows", a.ID, b.ID, nil)
	require.NoError(t, err)
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()

	outNodes, err := GetOutNodes(ro, a.ID, "")
	require.NoError(t, err)
	require.Len(t, outNodes, 1)
	require.Equal(t, b.ID, outNodes[0].ID)

	inNodes, err := GetInNodes(ro, b.ID, "")
	require.NoError(t, err)
	require.Len(t, inNodes, 1)
	require.Equal(t, a.ID, inNodes[0].ID)

	noneOut, err := GetOutNodes(ro, b.ID, "")
	require.NoError(t, err)
	require.Empty(t, noneOut)
}

func TestGetNodesByLabel(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()

	_, err := rw.CreateNode("person", nil)
	require.NoError(t, err)
	_, err = rw.CreateNode("person", nil)
	require.NoError(t, err)
	_, err = rw.CreateNode("company", nil)
	require.NoError(t, err)
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()
	people, err := GetNodesByLabel(ro, "person")
	require.NoError(t, err)
	require.Len(t, people, 2)
}
