package tiledgraph

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Stats is a point-in-time snapshot of a graph's size, used both to
// update the prometheus gauges below and to back the CLI's inspect
// output.
type Stats struct {
	TileCount         uint64
	VertexPointerHigh uint64
	EdgeCount         uint64
	VertexArenaBytes  uint64
	EdgeArenaBytes    uint64
	ShapeCount        uint64
}

var (
	vertexPointerHighMetric = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tiledgraph",
		Name:      "vertex_pointer_high",
	})
	edgeCountMetric = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tiledgraph",
		Name:      "edge_count",
	})
	tileCountMetric = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tiledgraph",
		Name:      "tile_count",
	})
	arenaBytesMetric = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tiledgraph",
		Name:      "arena_bytes",
	}, []string{"arena"})
)

func init() {
	for _, c := range []prometheus.Collector{vertexPointerHighMetric, edgeCountMetric, tileCountMetric, arenaBytesMetric} {
		if err := prometheus.Register(c); err != nil {
			fmt.Println("tiledgraph: error registering metric", err)
		}
	}
}

// Stats returns a snapshot of g's size and publishes it to the package
// prometheus gauges, so a process embedding this package gets graph
// size metrics on its own /metrics route for free.
func (g *Graph) Stats() Stats {
	s := Stats{
		TileCount:         g.tiles.ActiveTiles().GetCardinality(),
		VertexPointerHigh: g.tiles.VertexPointerHigh(),
		EdgeCount:         g.edges.EdgeCount(),
		VertexArenaBytes:  uint64(len(g.vertices.vertices)) + uint64(len(g.vertices.edgePointers))*4,
		EdgeArenaBytes:    uint64(len(g.edges.data)),
		ShapeCount:        uint64(len(g.shapes.shared)),
	}

	vertexPointerHighMetric.Set(float64(s.VertexPointerHigh))
	edgeCountMetric.Set(float64(s.EdgeCount))
	tileCountMetric.Set(float64(s.TileCount))
	arenaBytesMetric.WithLabelValues("vertex").Set(float64(s.VertexArenaBytes))
	arenaBytesMetric.WithLabelValues("edge").Set(float64(s.EdgeArenaBytes))

	return s
}
