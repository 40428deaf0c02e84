// Package tiledgraph implements the storage core of a tiled routing
// graph: a tile-indirection index, a packed vertex store with quantised
// intra-tile coordinates, and a dual linked-list edge arena supporting
// streaming traversal from any vertex.
package tiledgraph

const (
	// NoVertex marks an empty vertex slot in VertexStore.edgePointers.
	NoVertex uint32 = 0xFFFFFFFF
	// NoEdges marks a vertex slot that exists but has no incident edges.
	NoEdges uint32 = 0xFFFFFFFE
	// TileNotLoaded is returned by TileIndex.find for an absent tile.
	TileNotLoaded uint32 = NoVertex
)

// resolution is the number of quantisation steps per axis within a
// tile: 12 bits, so coordinates pack into 3 bytes (ix<<12 | iy).
const resolution = (1 << 12) - 1

const (
	tileSizeInIndex     = 5
	coordinateSizeBytes = 3
	formatHeaderString  = "Graph"
	formatVersion       = 1
)

// DefaultZoom and DefaultEdgeDataSize are the constructor defaults used
// when an Option does not override them.
const (
	DefaultZoom         uint8 = 14
	DefaultEdgeDataSize int   = 0
)

// indexGrowIncrement and arrayGrowIncrement are the amortised growth
// steps for the sparse tile index and the vertex/edge-pointer arrays,
// per spec: 1024 bytes/slots at a time.
const (
	indexGrowIncrement = 1024
	arrayGrowIncrement = 1024
	shapeGrowIncrement = 1024
)
