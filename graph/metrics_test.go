package tiledgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsReflectsGraphContents(t *testing.T) {
	g := New(WithZoom(14))
	a := g.AddVertex(4.9, 52.37)
	b := g.AddVertex(4.91, 52.38)
	_, err := g.AddEdge(a, b, nil, nil)
	assert.NoError(t, err)

	stats := g.Stats()
	assert.EqualValues(t, 1, stats.EdgeCount)
	assert.GreaterOrEqual(t, stats.TileCount, uint64(1))
	assert.GreaterOrEqual(t, stats.VertexPointerHigh, uint64(2))
}
