package tiledgraph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// TileID is the Z-independent local identifier of a tile within a
// fixed zoom level: localId = y*2^zoom + x.
type TileID uint32

// Tile identifies a web-mercator tile at a given zoom. It is stateless
// beyond its own coordinates; bounds are derived on demand from
// github.com/paulmach/orb/maptile rather than cached.
type Tile struct {
	X, Y uint32
	Zoom uint8
}

// LocalID returns the tile's localId = y*2^zoom + x, the value stored
// in VertexId.tileId and used as the TileIndex key.
func (t Tile) LocalID() TileID {
	return TileID(uint64(t.Y)<<t.Zoom + uint64(t.X))
}

// FromLocalID is the inverse of LocalID for a given zoom.
func FromLocalID(id TileID, zoom uint8) Tile {
	n := uint64(1) << zoom
	y := uint64(id) / n
	x := uint64(id) % n
	return Tile{X: uint32(x), Y: uint32(y), Zoom: zoom}
}

func (t Tile) maptile() maptile.Tile {
	return maptile.New(t.X, t.Y, maptile.Zoom(t.Zoom))
}

// Bound returns the tile's geographic bounding box: Min is the
// southwest corner, Max the northeast corner, in (lon, lat) degrees.
func (t Tile) Bound() orb.Bound {
	return t.maptile().Bound()
}

// WorldToTile buckets a geographic point into the tile that contains it
// at the given zoom, using the standard slippy-map projection.
func WorldToTile(lon, lat float64, zoom uint8) Tile {
	mt := maptile.At(orb.Point{lon, lat}, maptile.Zoom(zoom))
	return Tile{X: mt.X, Y: mt.Y, Zoom: uint8(mt.Z)}
}

// ToLocalCoordinates quantises a geographic point into the tile's local
// (ix, iy) grid at the given resolution (steps per axis). The point is
// assumed to fall within the tile; out-of-range inputs produce
// undefined but bounded results, per spec.
func (t Tile) ToLocalCoordinates(lon, lat float64, resolution int) (ix, iy int) {
	bound := t.Bound()
	left, right := bound.Min[0], bound.Max[0]
	top, bottom := bound.Max[1], bound.Min[1]

	lonStep := (right - left) / float64(resolution)
	latStep := (top - bottom) / float64(resolution)

	ix = int((lon - left) / lonStep)
	iy = int((top - lat) / latStep)
	return ix, iy
}

// FromLocalCoordinates is the linear inverse of ToLocalCoordinates: it
// recovers an approximate (lon, lat) from a quantised (ix, iy) pair.
// The result is within one resolution step of the original input.
func (t Tile) FromLocalCoordinates(ix, iy int, resolution int) (lon, lat float64) {
	bound := t.Bound()
	left, right := bound.Min[0], bound.Max[0]
	top, bottom := bound.Max[1], bound.Min[1]

	lonStep := (right - left) / float64(resolution)
	latStep := (top - bottom) / float64(resolution)

	lon = left + float64(ix)*lonStep
	lat = top - float64(iy)*latStep
	return lon, lat
}
