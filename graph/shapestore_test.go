package tiledgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeStoreSetAndGet(t *testing.T) {
	ss := newShapeStore()
	shape := []Coordinate{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}
	ss.set(5, shape)

	got, ok := ss.get(5)
	require.True(t, ok)
	assert.Equal(t, shape, got)
}

func TestShapeStoreMissingEdgeReturnsFalse(t *testing.T) {
	ss := newShapeStore()
	_, ok := ss.get(0)
	assert.False(t, ok)
}

func TestShapeStoreDeduplicatesIdenticalShapes(t *testing.T) {
	ss := newShapeStore()
	shape := []Coordinate{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}
	ss.set(0, shape)
	ss.set(1, append([]Coordinate{}, shape...))

	assert.Len(t, ss.shared, 1)
	assert.Equal(t, ss.offsets[0], ss.offsets[1])
}

func TestShapeStoreDistinctShapesAreNotMerged(t *testing.T) {
	ss := newShapeStore()
	ss.set(0, []Coordinate{{Lon: 1, Lat: 2}})
	ss.set(1, []Coordinate{{Lon: 9, Lat: 9}})

	assert.Len(t, ss.shared, 2)
	assert.NotEqual(t, ss.offsets[0], ss.offsets[1])
}

func TestHashShapeIsOrderSensitive(t *testing.T) {
	a := []Coordinate{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}
	b := []Coordinate{{Lon: 3, Lat: 4}, {Lon: 1, Lat: 2}}
	assert.NotEqual(t, hashShape(a), hashShape(b))
	assert.False(t, equalShape(a, b))
}
