package tiledgraph

// VertexID identifies a vertex by the tile it falls in and its index
// within that tile's vertex slot range.
type VertexID struct {
	TileID  TileID
	LocalID uint32
}

// Coordinate is a geographic point, (lon, lat) in degrees.
type Coordinate struct {
	Lon, Lat float64
}
