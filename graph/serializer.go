package tiledgraph

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

// Compression selects whole-stream compression for WriteTo. It is an
// addition to the teacher-shaped wire format: the compression byte is
// always written right after tileSizeInIndex, so every field after it
// sits one byte later than in spec.md's layout. CompressionNone writes
// those fields uncompressed; CompressionZstd wraps everything after
// the compression byte in a zstd frame.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionZstd Compression = 1
)

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

func writeLenPrefixedString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readLenPrefixedString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeSizedBytes(w io.Writer, data []byte) error {
	if err := binary.Write(w, binary.LittleEndian, int64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func readSizedBytes(r io.Reader) ([]byte, error) {
	var n int64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func encodeEdgePointers(ptrs []uint32) []byte {
	buf := make([]byte, len(ptrs)*4)
	for i, p := range ptrs {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], p)
	}
	return buf
}

func decodeEdgePointers(buf []byte) []uint32 {
	ptrs := make([]uint32, len(buf)/4)
	for i := range ptrs {
		ptrs[i] = binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
	}
	return ptrs
}

// WriteTo writes g in the stream format described in spec.md §6 (plus
// the additive compression byte described above), returning the total
// number of bytes written to w.
func (g *Graph) WriteTo(w io.Writer) (int, error) {
	cw := &countingWriter{w: w}

	if err := writeLenPrefixedString(cw, formatHeaderString); err != nil {
		return cw.n, err
	}
	header := []byte{formatVersion, g.zoom, byte(g.edgeDataSize), tileSizeInIndex, byte(g.compression)}
	if _, err := cw.Write(header); err != nil {
		return cw.n, err
	}

	var body io.Writer = cw
	var zw *zstd.Encoder
	if g.compression == CompressionZstd {
		var err error
		zw, err = zstd.NewWriter(cw)
		if err != nil {
			return cw.n, err
		}
		body = zw
	}

	progress := g.progress.NewCountProgress(7, "serializing graph")
	defer progress.Close()

	if err := writeSizedBytes(body, g.tiles.data); err != nil {
		return cw.n, err
	}
	progress.Add(1)

	if _, err := body.Write([]byte{coordinateSizeBytes}); err != nil {
		return cw.n, err
	}
	if err := binary.Write(body, binary.LittleEndian, int64(g.tiles.VertexPointerHigh())); err != nil {
		return cw.n, err
	}
	progress.Add(1)

	if err := writeSizedBytes(body, g.vertices.vertices); err != nil {
		return cw.n, err
	}
	progress.Add(1)

	if err := writeSizedBytes(body, encodeEdgePointers(g.vertices.edgePointers)); err != nil {
		return cw.n, err
	}
	progress.Add(1)

	if err := binary.Write(body, binary.LittleEndian, int64(g.edges.EdgeCount())); err != nil {
		return cw.n, err
	}
	if err := writeSizedBytes(body, g.edges.data); err != nil {
		return cw.n, err
	}
	progress.Add(1)

	if err := g.writeShapes(body); err != nil {
		return cw.n, err
	}
	progress.Add(1)

	if zw != nil {
		if err := zw.Close(); err != nil {
			return cw.n, err
		}
	}
	progress.Add(1)

	return cw.n, nil
}

func (g *Graph) writeShapes(w io.Writer) error {
	edgeCount := int64(g.edges.EdgeCount())
	if err := binary.Write(w, binary.LittleEndian, edgeCount); err != nil {
		return err
	}
	for i := int64(0); i < edgeCount; i++ {
		offset := int32(-1)
		if int(i) < len(g.shapes.offsets) {
			offset = g.shapes.offsets[i]
		}
		if err := binary.Write(w, binary.LittleEndian, offset); err != nil {
			return err
		}
	}

	if err := binary.Write(w, binary.LittleEndian, int64(len(g.shapes.shared))); err != nil {
		return err
	}
	for _, shape := range g.shapes.shared {
		if err := binary.Write(w, binary.LittleEndian, int32(len(shape))); err != nil {
			return err
		}
		for _, c := range shape {
			if err := binary.Write(w, binary.LittleEndian, math.Float64bits(c.Lon)); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, math.Float64bits(c.Lat)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadFrom reads a Graph written by WriteTo, failing with
// ErrFormatError if the header does not match what this package
// writes.
func ReadFrom(r io.Reader, opts ...Option) (*Graph, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	magic, err := readLenPrefixedString(r)
	if err != nil {
		return nil, err
	}
	if magic != formatHeaderString {
		return nil, fmt.Errorf("header %q: %w", magic, ErrFormatError)
	}

	var header [5]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	version, zoom, edgeDataSize, tileSize, compression := header[0], header[1], header[2], header[3], header[4]
	if version != formatVersion {
		return nil, fmt.Errorf("version %d: %w", version, ErrFormatError)
	}
	if tileSize != tileSizeInIndex {
		return nil, fmt.Errorf("tileSizeInIndex %d: %w", tileSize, ErrFormatError)
	}
	if compression != byte(CompressionNone) && compression != byte(CompressionZstd) {
		return nil, fmt.Errorf("compression %d: %w", compression, ErrFormatError)
	}

	var body io.Reader = r
	var zr *zstd.Decoder
	if Compression(compression) == CompressionZstd {
		zr, err = zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		body = zr
	}

	cfg.zoom = zoom
	cfg.edgeDataSize = int(edgeDataSize)
	cfg.compression = Compression(compression)
	g := New(optionsFromConfig(cfg)...)

	progress := g.progress.NewCountProgress(7, "reading graph")
	defer progress.Close()

	tileData, err := readSizedBytes(body)
	if err != nil {
		return nil, err
	}
	g.tiles.data = tileData
	rebuildActiveTiles(g.tiles)
	progress.Add(1)

	var coordSize [1]byte
	if _, err := io.ReadFull(body, coordSize[:]); err != nil {
		return nil, err
	}
	if coordSize[0] != coordinateSizeBytes {
		return nil, fmt.Errorf("coordinateSizeInBytes %d: %w", coordSize[0], ErrFormatError)
	}
	var vertexPointerHigh int64
	if err := binary.Read(body, binary.LittleEndian, &vertexPointerHigh); err != nil {
		return nil, err
	}
	g.tiles.vertexPointerHigh = uint64(vertexPointerHigh)
	progress.Add(1)

	vertexBytes, err := readSizedBytes(body)
	if err != nil {
		return nil, err
	}
	g.vertices.vertices = vertexBytes
	progress.Add(1)

	edgePointerBytes, err := readSizedBytes(body)
	if err != nil {
		return nil, err
	}
	g.vertices.edgePointers = decodeEdgePointers(edgePointerBytes)
	progress.Add(1)

	var edgePointerHigh int64
	if err := binary.Read(body, binary.LittleEndian, &edgePointerHigh); err != nil {
		return nil, err
	}
	edgeBytes, err := readSizedBytes(body)
	if err != nil {
		return nil, err
	}
	g.edges.data = edgeBytes
	g.edges.edgePointerHigh = uint64(edgePointerHigh)
	progress.Add(1)

	if err := g.readShapes(body); err != nil {
		return nil, err
	}
	progress.Add(1)

	return g, nil
}

func (g *Graph) readShapes(r io.Reader) error {
	var edgeCount int64
	if err := binary.Read(r, binary.LittleEndian, &edgeCount); err != nil {
		return err
	}
	g.shapes.ensureSized(int(edgeCount))
	for i := int64(0); i < edgeCount; i++ {
		var offset int32
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return err
		}
		g.shapes.offsets[i] = offset
	}

	var sharedCount int64
	if err := binary.Read(r, binary.LittleEndian, &sharedCount); err != nil {
		return err
	}
	g.shapes.shared = make([][]Coordinate, sharedCount)
	for i := int64(0); i < sharedCount; i++ {
		var numPoints int32
		if err := binary.Read(r, binary.LittleEndian, &numPoints); err != nil {
			return err
		}
		shape := make([]Coordinate, numPoints)
		for j := range shape {
			var lonBits, latBits uint64
			if err := binary.Read(r, binary.LittleEndian, &lonBits); err != nil {
				return err
			}
			if err := binary.Read(r, binary.LittleEndian, &latBits); err != nil {
				return err
			}
			shape[j] = Coordinate{Lon: math.Float64frombits(lonBits), Lat: math.Float64frombits(latBits)}
		}
		g.shapes.shared[i] = shape
		g.shapes.hashToIndex[hashShape(shape)] = int(i)
	}
	return nil
}

func rebuildActiveTiles(ti *TileIndex) {
	ti.active.Clear()
	count := len(ti.data) / tileSizeInIndex
	for i := 0; i < count; i++ {
		off := i * tileSizeInIndex
		if !tileRecordAbsent(ti.data[off : off+tileSizeInIndex]) {
			ti.active.Add(uint64(i))
		}
	}
}

func optionsFromConfig(cfg config) []Option {
	return []Option{
		WithZoom(cfg.zoom),
		WithEdgeDataSize(cfg.edgeDataSize),
		WithLogger(cfg.logger),
		WithProgress(cfg.progress),
		WithCompression(cfg.compression),
	}
}
