package tiledgraph

import "log"

// Graph is a tiled routing-graph storage core: a tile-indirection
// index, a packed vertex store, and a dual linked-list edge arena,
// wired together behind the API described in spec §6.
//
// A Graph is single-writer and in-process: no mutation is safe to call
// concurrently with another mutation or with a live EdgeEnumerator, per
// spec §5.
type Graph struct {
	zoom         uint8
	edgeDataSize int

	tiles    *TileIndex
	vertices *VertexStore
	edges    *EdgeArena
	shapes   *ShapeStore

	logger      *log.Logger
	progress    ProgressWriter
	compression Compression
}

// New constructs an empty Graph. Defaults: zoom 14, edgeDataSize 0.
func New(opts ...Option) *Graph {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	tiles := newTileIndex(cfg.logger)
	vertices := newVertexStore(tiles, cfg.zoom, cfg.logger)
	shapes := newShapeStore()
	edges := newEdgeArena(vertices, shapes, cfg.edgeDataSize, cfg.logger)

	return &Graph{
		zoom:         cfg.zoom,
		edgeDataSize: cfg.edgeDataSize,
		tiles:        tiles,
		vertices:     vertices,
		edges:        edges,
		shapes:       shapes,
		logger:       cfg.logger,
		progress:     cfg.progress,
		compression:  cfg.compression,
	}
}

// Zoom returns the web-mercator zoom level vertices are bucketed at.
func (g *Graph) Zoom() uint8 { return g.zoom }

// EdgeDataSize returns the fixed inline edge payload size, in bytes.
func (g *Graph) EdgeDataSize() int { return g.edgeDataSize }

// AddVertex buckets (lon, lat) into a tile at the graph's zoom level
// and allocates a vertex slot for it.
func (g *Graph) AddVertex(lon, lat float64) VertexID {
	return g.vertices.AddVertex(lon, lat)
}

// TryGetVertex returns v's coordinate, or false if v does not resolve
// to a live slot.
func (g *Graph) TryGetVertex(v VertexID) (Coordinate, bool) {
	return g.vertices.TryGetVertex(v)
}

// GetVertex is the strict variant of TryGetVertex: it fails with
// ErrVertexDoesNotExist.
func (g *Graph) GetVertex(v VertexID) (Coordinate, error) {
	return g.vertices.GetVertex(v)
}

// AddEdge appends a new edge connecting v1 and v2 with an optional
// inline payload and an optional shape, returning its edge id. It
// fails with ErrVertexDoesNotExist if either endpoint is unresolved.
func (g *Graph) AddEdge(v1, v2 VertexID, payload []byte, shape []Coordinate) (uint32, error) {
	return g.edges.AddEdge(v1, v2, payload, shape)
}

// EdgeCount returns the number of edges appended so far.
func (g *Graph) EdgeCount() uint64 {
	return g.edges.EdgeCount()
}

// Enumerator returns a fresh EdgeEnumerator over this graph's edge
// arena, unpositioned until MoveTo or MoveToEdge is called.
func (g *Graph) Enumerator() *EdgeEnumerator {
	return newEdgeEnumerator(g.edges)
}

// ActiveTiles returns the set of tile ids that currently have an
// allocated vertex slot range.
func (g *Graph) ActiveTiles() []TileID {
	bitmap := g.tiles.ActiveTiles()
	out := make([]TileID, 0, bitmap.GetCardinality())
	it := bitmap.Iterator()
	for it.HasNext() {
		out = append(out, TileID(it.Next()))
	}
	return out
}
