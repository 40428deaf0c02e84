package tiledgraph

import (
	"encoding/binary"
	"fmt"
	"log"
)

// EdgeArena is an append-only byte arena of fixed-width edge records.
// Each record stores both endpoints and a "prev" pointer for each
// endpoint's linked list, so every edge belongs to exactly two
// intrusive singly-linked lists without needing a second record per
// direction.
type EdgeArena struct {
	vertices        *VertexStore
	shapes          *ShapeStore
	data            []byte
	edgePointerHigh uint64
	edgeSize        int
	edgeDataSize    int
	logger          *log.Logger
}

func newEdgeArena(vertices *VertexStore, shapes *ShapeStore, edgeDataSize int, logger *log.Logger) *EdgeArena {
	return &EdgeArena{
		vertices:     vertices,
		shapes:       shapes,
		edgeDataSize: edgeDataSize,
		edgeSize:     24 + edgeDataSize,
		logger:       logger,
	}
}

func (ea *EdgeArena) ensureSized(edgeID uint64) {
	need := int(edgeID+1) * ea.edgeSize
	if need <= len(ea.data) {
		return
	}
	grown := len(ea.data)
	increment := arrayGrowIncrement * ea.edgeSize
	if increment <= 0 {
		increment = arrayGrowIncrement
	}
	for grown < need {
		grown += increment
	}
	ea.data = append(ea.data, make([]byte, grown-len(ea.data))...)
}

func (ea *EdgeArena) record(edgeID uint64) []byte {
	off := int(edgeID) * ea.edgeSize
	return ea.data[off : off+ea.edgeSize]
}

func encodePrev(prev uint32) uint32 {
	if prev == NoEdges {
		return 0
	}
	return prev + 1
}

func decodePrev(raw uint32) uint32 {
	if raw == 0 {
		return NoEdges
	}
	return raw - 1
}

// AddEdge appends a new edge record connecting v1 and v2, splicing it
// into both endpoints' linked lists via VertexStore's first-edge
// pointers. It fails with ErrVertexDoesNotExist if either endpoint is
// unresolved. A self-loop (v1 == v2) overwrites the same slot's
// first-edge pointer twice, harmlessly; the prev chain still records
// both directions correctly.
func (ea *EdgeArena) AddEdge(v1, v2 VertexID, payload []byte, shape []Coordinate) (uint32, error) {
	slot1, ok1 := ea.vertices.slotFor(v1)
	if !ok1 {
		return 0, fmt.Errorf("edge endpoint %+v: %w", v1, ErrVertexDoesNotExist)
	}
	slot2, ok2 := ea.vertices.slotFor(v2)
	if !ok2 {
		return 0, fmt.Errorf("edge endpoint %+v: %w", v2, ErrVertexDoesNotExist)
	}

	prev1 := ea.vertices.edgePointers[slot1]
	prev2 := ea.vertices.edgePointers[slot2]
	if prev1 == NoVertex || prev2 == NoVertex {
		return 0, fmt.Errorf("edge endpoint: %w", ErrVertexDoesNotExist)
	}

	edgeID := ea.edgePointerHigh
	if edgeID > uint64(NoEdges)-1 {
		return 0, ErrCapacityExceeded
	}
	ea.ensureSized(edgeID)

	rec := ea.record(edgeID)
	binary.LittleEndian.PutUint32(rec[0:4], uint32(v1.TileID))
	binary.LittleEndian.PutUint32(rec[4:8], v1.LocalID)
	binary.LittleEndian.PutUint32(rec[8:12], uint32(v2.TileID))
	binary.LittleEndian.PutUint32(rec[12:16], v2.LocalID)
	binary.LittleEndian.PutUint32(rec[16:20], encodePrev(prev1))
	binary.LittleEndian.PutUint32(rec[20:24], encodePrev(prev2))

	payloadBytes := rec[24 : 24+ea.edgeDataSize]
	for i := range payloadBytes {
		payloadBytes[i] = 0xFF
	}
	copy(payloadBytes, payload)

	ea.vertices.setEdgePointer(v1, uint32(edgeID))
	ea.vertices.setEdgePointer(v2, uint32(edgeID))

	if shape != nil {
		ea.shapes.set(uint32(edgeID), shape)
	}

	ea.edgePointerHigh++
	return uint32(edgeID), nil
}

// readEndpoints decodes the two endpoints and the two prev pointers of
// a record, in their raw on-disk ("prev == 0 means none") form.
func (ea *EdgeArena) readEndpoints(edgeID uint32) (v1, v2 VertexID, prev1raw, prev2raw uint32) {
	rec := ea.record(uint64(edgeID))
	v1 = VertexID{TileID: TileID(binary.LittleEndian.Uint32(rec[0:4])), LocalID: binary.LittleEndian.Uint32(rec[4:8])}
	v2 = VertexID{TileID: TileID(binary.LittleEndian.Uint32(rec[8:12])), LocalID: binary.LittleEndian.Uint32(rec[12:16])}
	prev1raw = binary.LittleEndian.Uint32(rec[16:20])
	prev2raw = binary.LittleEndian.Uint32(rec[20:24])
	return v1, v2, prev1raw, prev2raw
}

// CopyData copies the edge's inline payload into dst, returning the
// number of bytes copied.
func (ea *EdgeArena) CopyData(edgeID uint32, dst []byte) int {
	rec := ea.record(uint64(edgeID))
	return copy(dst, rec[24:24+ea.edgeDataSize])
}

// EdgeCount returns the number of appended edges.
func (ea *EdgeArena) EdgeCount() uint64 {
	return ea.edgePointerHigh
}

// EdgeDataSize returns the fixed inline payload size, in bytes.
func (ea *EdgeArena) EdgeDataSize() int {
	return ea.edgeDataSize
}
