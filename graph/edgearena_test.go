package tiledgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArena(edgeDataSize int) (*VertexStore, *ShapeStore, *EdgeArena) {
	vs := newTestVertexStore()
	shapes := newShapeStore()
	ea := newEdgeArena(vs, shapes, edgeDataSize, discardLogger())
	return vs, shapes, ea
}

func TestEdgeArenaAddEdgeSplicesBothEndpoints(t *testing.T) {
	vs, _, ea := newTestArena(0)
	a := vs.AddVertex(4.9, 52.37)
	b := vs.AddVertex(4.91, 52.38)

	edgeID, err := ea.AddEdge(a, b, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), edgeID)

	ptrA, ok := vs.edgePointerFor(a)
	require.True(t, ok)
	assert.Equal(t, edgeID, ptrA)

	ptrB, ok := vs.edgePointerFor(b)
	require.True(t, ok)
	assert.Equal(t, edgeID, ptrB)
}

func TestEdgeArenaAddEdgeUnresolvedEndpoint(t *testing.T) {
	vs, _, ea := newTestArena(0)
	a := vs.AddVertex(4.9, 52.37)
	bogus := VertexID{TileID: a.TileID, LocalID: a.LocalID + 5}

	_, err := ea.AddEdge(a, bogus, nil, nil)
	assert.ErrorIs(t, err, ErrVertexDoesNotExist)
}

func TestEdgeArenaPayloadDefaultsToAllOnesWhenShorterThanEdgeDataSize(t *testing.T) {
	vs, _, ea := newTestArena(4)
	a := vs.AddVertex(4.9, 52.37)
	b := vs.AddVertex(4.91, 52.38)

	edgeID, err := ea.AddEdge(a, b, []byte{9}, nil)
	require.NoError(t, err)

	dst := make([]byte, 4)
	ea.CopyData(edgeID, dst)
	assert.Equal(t, []byte{9, 0xFF, 0xFF, 0xFF}, dst)
}

func TestEncodeDecodePrevRoundTrip(t *testing.T) {
	assert.Equal(t, uint32(0), encodePrev(NoEdges))
	assert.Equal(t, NoEdges, decodePrev(0))

	assert.Equal(t, uint32(6), encodePrev(5))
	assert.Equal(t, uint32(5), decodePrev(6))
}

func TestEdgeArenaEdgeCountIncrements(t *testing.T) {
	vs, _, ea := newTestArena(0)
	a := vs.AddVertex(4.9, 52.37)
	b := vs.AddVertex(4.91, 52.38)
	c := vs.AddVertex(4.92, 52.39)

	_, err := ea.AddEdge(a, b, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, ea.EdgeCount())

	_, err = ea.AddEdge(b, c, nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, ea.EdgeCount())
}
