package tiledgraph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizedBytesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	data := []byte{1, 2, 3, 4, 5}
	require.NoError(t, writeSizedBytes(&buf, data))

	got, err := readSizedBytes(&buf)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLenPrefixedStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLenPrefixedString(&buf, "Graph"))

	got, err := readLenPrefixedString(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Graph", got)
}

func TestEncodeDecodeEdgePointersRoundTrip(t *testing.T) {
	ptrs := []uint32{NoVertex, NoEdges, 0, 42, 0xABCDEF}
	encoded := encodeEdgePointers(ptrs)
	decoded := decodeEdgePointers(encoded)
	assert.Equal(t, ptrs, decoded)
}

func TestRebuildActiveTilesScansRawData(t *testing.T) {
	ti := newTileIndex(discardLogger())
	ti.add(TileID(0))
	ti.add(TileID(3))

	ti.active = ti.active.Clone()
	ti.active.Clear()
	rebuildActiveTiles(ti)

	assert.True(t, ti.active.Contains(0))
	assert.True(t, ti.active.Contains(3))
	assert.False(t, ti.active.Contains(1))
}
