package traversal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vertexdb/vertexdb/internal/graph"
	"github.com/vertexdb/vertexdb/internal/storage"
)

func newTestEngine(t *testing.T) *storage.Engine {
	t.Helper()
	engine, err := storage.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

// buildTriangle creates three mutually-connected "person" nodes (A->B,
// B->C, C->A), matching spec.md §8.2 scenario 1's triangle traversal and
// original_source/.../traversal.rs's test_complex_traversal.
func buildTriangle(t *testing.T, engine *storage.Engine) (a, b, c graph.NodeID) {
	t.Helper()
	rw := engine.BeginWrite()
	nodeA, err := rw.CreateNode("person", map[string]graph.Value{"name": graph.NewString("A")})
	require.NoError(t, err)
	nodeB, err := rw.CreateNode("person", map[string]graph.Value{"name": graph.NewString("B")})
	require.NoError(t, err)
	nodeC, err := rw.CreateNode("person", map[string]graph.Value{"name": graph.NewString("C")})
	require.NoError(t, err)
	_, err = rw.CreateEdge("knows", nodeA.ID, nodeB.ID, nil)
	require.NoError(t, err)
	_, err = rw.CreateEdge("knows", nodeB.ID, nodeC.ID, nil)
	require.NoError(t, err)
	_, err = rw.CreateEdge("knows", nodeC.ID, nodeA.ID, nil)
	require.NoError(t, err)
	require.NoError(t, rw.Commit())
	return nodeA.ID, nodeB.ID, nodeC.ID
}

func TestTriangleTraversal(t *testing.T) {
	engine := newTestEngine(t)
	a, _, _ := buildTriangle(t, engine)

	ro := engine.BeginRead()
	defer ro.Discard()
	result, err := NewReadBuilder(ro).VFromID(a).Out("knows").Out("knows").Out("knows").Result()
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, NodeArray, result[0].Kind)
	require.Len(t, result[0].Nodes, 1)
	require.Equal(t, a, result[0].Nodes[0].ID)
}

func TestOutOnNodeWithNoEdgesYieldsEmpty(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()
	lonely, err := rw.CreateNode("person", nil)
	require.NoError(t, err)
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()
	result, err := NewReadBuilder(ro).VFromID(lonely.ID).Out("knows").Result()
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, Empty, result[0].Kind)
}

func TestUniformEmptyInsertionAcrossNodeArray(t *testing.T) {
	// Per the spec's resolution of the Empty-insertion Open Question,
	// Out() applies the Empty rule per current element uniformly: a
	// NodeArray element (here produced by VFromIDs) pools the neighbors
	// of all its nodes into one NodeArray, so the lonely node adds no
	// separate Empty entry.
	engine := newTestEngine(t)
	rw := engine.BeginWrite()
	hasEdge, err := rw.CreateNode("person", nil)
	require.NoError(t, err)
	lonely, err := rw.CreateNode("person", nil)
	require.NoError(t, err)
	target, err := rw.CreateNode("person", nil)
	require.NoError(t, err)
	_, err = rw.CreateEdge("knows", hasEdge.ID, target.ID, nil)
	require.NoError(t, err)
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()
	result, err := NewReadBuilder(ro).VFromIDs([]graph.NodeID{hasEdge.ID, lonely.ID}).Out("knows").Result()
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, NodeArray, result[0].Kind)
	require.Len(t, result[0].Nodes, 1)
	require.Equal(t, target.ID, result[0].Nodes[0].ID)
}

func TestFilterThenCount(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()
	_, err := rw.CreateNode("person", map[string]graph.Value{"age": graph.NewInteger(25)})
	require.NoError(t, err)
	_, err = rw.CreateNode("person", map[string]graph.Value{"age": graph.NewInteger(35)})
	require.NoError(t, err)
	_, err = rw.CreateNode("person", map[string]graph.Value{"age": graph.NewInteger(40)})
	require.NoError(t, err)
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()
	result, err := NewReadBuilder(ro).V().FilterNodes(func(n *graph.Node) (bool, error) {
		age, ok := n.Properties["age"]
		return ok && age.Int > 30, nil
	}).Count().Result()
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, Count, result[0].Kind)
	require.Equal(t, 2, result[0].Num)
}

func TestGetProperties(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()
	node, err := rw.CreateNode("person", map[string]graph.Value{
		"name": graph.NewString("Alice"),
		"age":  graph.NewInteger(30),
	})
	require.NoError(t, err)
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()
	result, err := NewReadBuilder(ro).VFromID(node.ID).GetProperties([]string{"name", "age"}).Result()
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, ValueArray, result[0].Kind)
	require.Equal(t, "name", result[0].KVs[0].Key)
	require.Equal(t, "Alice", result[0].KVs[0].Val.Str)
	require.Equal(t, "age", result[0].KVs[1].Key)
	require.Equal(t, int64(30), result[0].KVs[1].Val.Int)
}

func TestRangeClampsAndZeroZeroIsEmpty(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()
	for i := 0; i < 3; i++ {
		_, err := rw.CreateNode("person", nil)
		require.NoError(t, err)
	}
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()

	clamped, err := NewReadBuilder(ro).V().Range(1, 100).Count().Result()
	require.NoError(t, err)
	require.Equal(t, 2, clamped[0].Num)

	zeroZero, err := NewReadBuilder(ro).V().Range(0, 0).Count().Result()
	require.NoError(t, err)
	require.Equal(t, 0, zeroZero[0].Num)
}

func TestShortestPathBetweenStep(t *testing.T) {
	engine := newTestEngine(t)
	rw := engine.BeginWrite()
	a, err := rw.CreateNode("node", nil)
	require.NoError(t, err)
	b, err := rw.CreateNode("node", nil)
	require.NoError(t, err)
	c, err := rw.CreateNode("node", nil)
	require.NoError(t, err)
	_, err = rw.CreateEdge("edge", a.ID, b.ID, nil)
	require.NoError(t, err)
	_, err = rw.CreateEdge("edge", b.ID, c.ID, nil)
	require.NoError(t, err)
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()
	result, err := NewReadBuilder(ro).ShortestPathBetween(a.ID, c.ID).Result()
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Equal(t, NodeArray, result[0].Kind)
	require.Len(t, result[0].Nodes, 3)
	require.Equal(t, EdgeArray, result[1].Kind)
	require.Len(t, result[1].Edges, 2)
}

func TestDropCascadeThroughTraversal(t *testing.T) {
	// Triangle is a -> b -> c -> a. Deleting a removes edges a->b and
	// c->a but leaves b->c untouched.
	engine := newTestEngine(t)
	a, b, c := buildTriangle(t, engine)

	rw := engine.BeginWrite()
	require.NoError(t, rw.DeleteNode(a))
	require.NoError(t, rw.Commit())

	ro := engine.BeginRead()
	defer ro.Discard()

	fromB, err := NewReadBuilder(ro).VFromID(b).Out("knows").Result()
	require.NoError(t, err)
	require.Len(t, fromB, 1)
	require.Equal(t, NodeArray, fromB[0].Kind)
	require.Equal(t, c, fromB[0].Nodes[0].ID)

	fromC, err := NewReadBuilder(ro).VFromID(c).Out("knows").Result()
	require.NoError(t, err)
	require.Len(t, fromC, 1)
	require.Equal(t, Empty, fromC[0].Kind)
}

func TestReadOnlyBuilderRejectsWrites(t *testing.T) {
	engine := newTestEngine(t)
	ro := engine.BeginRead()
	defer ro.Discard()
	b := NewReadBuilder(ro).AddV("person", nil)
	require.ErrorIs(t, b.Err(), ErrReadOnly)
}
