package tiledgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReachableTilesIncludesSeed(t *testing.T) {
	g := New(WithZoom(14))
	a := g.AddVertex(4.9, 52.37)

	reachable := g.ReachableTiles(a.TileID, 2)
	assert.True(t, reachable.Contains(uint64(a.TileID)))
}

func TestReachableTilesFindsNeighborTileAcrossEdge(t *testing.T) {
	g := New(WithZoom(14))
	a := g.AddVertex(4.9, 52.37)
	b := g.AddVertex(6.5, 53.5) // far enough away to fall in a different tile at this zoom

	require.NotEqual(t, a.TileID, b.TileID)
	_, err := g.AddEdge(a, b, nil, nil)
	require.NoError(t, err)

	reachable := g.ReachableTiles(a.TileID, 1)
	assert.True(t, reachable.Contains(uint64(b.TileID)))
}
