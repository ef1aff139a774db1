package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRoundTrip(t *testing.T) {
	cases := []Value{
		NewEmpty(),
		NewString("hello"),
		NewInteger(-42),
		NewFloat(3.25),
		NewBoolean(true),
		NewArray([]Value{NewInteger(1), NewString("two"), NewBoolean(false)}),
		NewObject(map[string]Value{"a": NewInteger(1), "b": NewString("two")}),
	}
	for _, v := range cases {
		encoded := v.Encode()
		decoded, n, err := DecodeValue(encoded)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), n)
		assert.Equal(t, v, decoded)
	}
}

func TestDecodeValueRejectsUnknownTag(t *testing.T) {
	_, _, err := DecodeValue([]byte{0xFF})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestDecodeValueRejectsTruncated(t *testing.T) {
	_, _, err := DecodeValue([]byte{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestNodeEdgeCodecRoundTrip(t *testing.T) {
	node := &Node{
		ID:    "node-1",
		Label: "person",
		Properties: map[string]Value{
			"name": NewString("Alice"),
			"age":  NewInteger(30),
		},
	}
	decodedNode, err := DecodeNode(EncodeNode(node))
	require.NoError(t, err)
	assert.Equal(t, node.ID, decodedNode.ID)
	assert.Equal(t, node.Label, decodedNode.Label)
	assert.Equal(t, node.Properties, decodedNode.Properties)

	edge := &Edge{
		ID:       "edge-1",
		Label:    "knows",
		FromNode: "node-1",
		ToNode:   "node-2",
		Properties: map[string]Value{
			"since": NewInteger(2020),
		},
	}
	decodedEdge, err := DecodeEdge(EncodeEdge(edge))
	require.NoError(t, err)
	assert.Equal(t, edge.ID, decodedEdge.ID)
	assert.Equal(t, edge.FromNode, decodedEdge.FromNode)
	assert.Equal(t, edge.ToNode, decodedEdge.ToNode)
	assert.Equal(t, edge.Properties, decodedEdge.Properties)
}
