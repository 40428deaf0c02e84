package tiledgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVertexStore() *VertexStore {
	ti := newTileIndex(discardLogger())
	return newVertexStore(ti, 14, discardLogger())
}

func TestPackUnpackCoordRoundTrip(t *testing.T) {
	ix, iy := 3000, 17
	b := packCoord(ix, iy)
	gotIx, gotIy := unpackCoord(b[:])
	assert.Equal(t, ix, gotIx)
	assert.Equal(t, iy, gotIy)
}

func TestCoordEmptyDetectsSentinel(t *testing.T) {
	assert.True(t, coordEmpty([]byte{0xFF, 0xFF, 0xFF}))
	assert.False(t, coordEmpty([]byte{0x00, 0xFF, 0xFF}))
}

func TestVertexStoreAddVertexFirstInTile(t *testing.T) {
	vs := newTestVertexStore()
	v := vs.AddVertex(4.9, 52.37)
	assert.Equal(t, uint32(0), v.LocalID)

	coord, ok := vs.TryGetVertex(v)
	require.True(t, ok)
	assert.InDelta(t, 4.9, coord.Lon, 0.001)
	assert.InDelta(t, 52.37, coord.Lat, 0.001)
}

func TestVertexStoreGrowsTileCapacity(t *testing.T) {
	vs := newTestVertexStore()
	var ids []VertexID
	for i := 0; i < 9; i++ {
		ids = append(ids, vs.AddVertex(4.9, 52.37))
	}

	seen := make(map[uint32]bool)
	for _, id := range ids {
		assert.False(t, seen[id.LocalID], "duplicate local id allocated")
		seen[id.LocalID] = true
		_, ok := vs.TryGetVertex(id)
		assert.True(t, ok)
	}
}

func TestVertexStoreTryGetVertexUnknownTile(t *testing.T) {
	vs := newTestVertexStore()
	_, ok := vs.TryGetVertex(VertexID{TileID: 999, LocalID: 0})
	assert.False(t, ok)
}

func TestVertexStoreGetVertexWrapsErrVertexDoesNotExist(t *testing.T) {
	vs := newTestVertexStore()
	_, err := vs.GetVertex(VertexID{TileID: 999, LocalID: 0})
	assert.ErrorIs(t, err, ErrVertexDoesNotExist)
}

func TestVertexStoreSlotForOutOfRangeLocalID(t *testing.T) {
	vs := newTestVertexStore()
	v := vs.AddVertex(4.9, 52.37)
	_, ok := vs.slotFor(VertexID{TileID: v.TileID, LocalID: v.LocalID + 50})
	assert.False(t, ok)
}
