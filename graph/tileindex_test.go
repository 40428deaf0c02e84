package tiledgraph

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestTileIndexAbsentTileNotFound(t *testing.T) {
	ti := newTileIndex(discardLogger())
	_, _, ok := ti.find(TileID(42))
	assert.False(t, ok)
}

func TestTileIndexAddThenFind(t *testing.T) {
	ti := newTileIndex(discardLogger())
	base, capacity := ti.add(TileID(7))
	assert.Equal(t, uint32(0), base)
	assert.Equal(t, uint32(1), capacity)

	gotBase, gotCapacity, ok := ti.find(TileID(7))
	require.True(t, ok)
	assert.Equal(t, base, gotBase)
	assert.Equal(t, capacity, gotCapacity)
}

func TestTileIndexGrowDoublesCapacityAndAdvancesHighWaterMark(t *testing.T) {
	ti := newTileIndex(discardLogger())
	base, _ := ti.add(TileID(3))
	before := ti.VertexPointerHigh()

	newBase, newCapacity := ti.grow(TileID(3), base)
	assert.Equal(t, uint32(2), newCapacity)
	assert.Equal(t, uint32(before), newBase)
	assert.Equal(t, before+2, ti.VertexPointerHigh())

	_, cap2, ok := ti.find(TileID(3))
	require.True(t, ok)
	assert.Equal(t, newCapacity, cap2)
}

func TestTileIndexActiveTilesTracksAddedTiles(t *testing.T) {
	ti := newTileIndex(discardLogger())
	ti.add(TileID(1))
	ti.add(TileID(100))

	active := ti.ActiveTiles()
	assert.True(t, active.Contains(1))
	assert.True(t, active.Contains(100))
	assert.False(t, active.Contains(2))
	assert.EqualValues(t, 2, active.GetCardinality())
}

func TestTileIndexEnsureSizedPreservesExistingAndFillsAbsent(t *testing.T) {
	ti := newTileIndex(discardLogger())
	ti.add(TileID(0))
	ti.ensureSized(TileID(500))

	_, _, ok := ti.find(TileID(0))
	assert.True(t, ok)
	_, _, ok2 := ti.find(TileID(500))
	assert.False(t, ok2)
}
