package tiledgraph

import (
	"io"
	"log"
)

// Option configures a Graph at construction time. The zero value of
// every field New accepts has a sane default, matching the teacher's
// preference for a handful of explicit constructor parameters over a
// config struct or file.
type Option func(*config)

type config struct {
	zoom         uint8
	edgeDataSize int
	logger       *log.Logger
	progress     ProgressWriter
	compression  Compression
}

func defaultConfig() config {
	return config{
		zoom:         DefaultZoom,
		edgeDataSize: DefaultEdgeDataSize,
		logger:       log.New(io.Discard, "", 0),
		progress:     noopProgressWriter{},
		compression:  CompressionNone,
	}
}

// WithZoom sets the web-mercator zoom level used to bucket vertices
// into tiles. Valid range is [0, 31].
func WithZoom(zoom uint8) Option {
	return func(c *config) { c.zoom = zoom }
}

// WithEdgeDataSize sets the fixed inline payload size, in bytes, stored
// with every edge record.
func WithEdgeDataSize(size int) Option {
	return func(c *config) { c.edgeDataSize = size }
}

// WithLogger installs a logger for tile capacity doublings, the only
// event that is logged; array growth and format rejections are not.
// A nil logger discards all output.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		c.logger = logger
	}
}

// WithProgress installs a ProgressWriter used by WriteTo/ReadFrom to
// report progress over the vertex and edge arrays.
func WithProgress(p ProgressWriter) Option {
	return func(c *config) {
		if p == nil {
			p = noopProgressWriter{}
		}
		c.progress = p
	}
}

// WithCompression sets the default compression applied by WriteTo.
// ReadFrom always honors whatever the stream declares regardless of
// this setting.
func WithCompression(compression Compression) Option {
	return func(c *config) { c.compression = compression }
}
