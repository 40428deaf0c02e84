package tiledgraph

import (
	"fmt"
	"log"
)

// VertexStore holds two parallel arrays indexed by absolute vertex
// slot: a packed 3-byte coordinate per slot, and a u32 first-edge
// pointer per slot.
type VertexStore struct {
	tiles        *TileIndex
	vertices     []byte   // 3 bytes/slot, little-endian (ix<<12|iy); all-0xFF = empty
	edgePointers []uint32 // NoVertex | NoEdges | edgeId

	zoom   uint8
	logger *log.Logger
}

func newVertexStore(tiles *TileIndex, zoom uint8, logger *log.Logger) *VertexStore {
	return &VertexStore{tiles: tiles, zoom: zoom, logger: logger}
}

func packCoord(ix, iy int) [3]byte {
	v := (uint32(ix&0xFFF) << 12) | uint32(iy&0xFFF)
	return [3]byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

func unpackCoord(b []byte) (ix, iy int) {
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	ix = int(v >> 12)
	iy = int(v & 0xFFF)
	return ix, iy
}

func coordEmpty(b []byte) bool {
	return b[0] == 0xFF && b[1] == 0xFF && b[2] == 0xFF
}

// ensureArrays grows the vertices and edgePointers arrays so that slot
// indices up to (but not including) required are valid, in 1024-slot
// increments. New edgePointers entries are initialised to NoVertex and
// new vertices bytes to 0xFF, per spec.
func (vs *VertexStore) ensureArrays(required uint64) {
	if uint64(len(vs.edgePointers)) >= required {
		return
	}
	newLen := len(vs.edgePointers)
	for uint64(newLen) < required {
		newLen += arrayGrowIncrement
	}

	newEdgePointers := make([]uint32, newLen)
	copy(newEdgePointers, vs.edgePointers)
	for i := len(vs.edgePointers); i < newLen; i++ {
		newEdgePointers[i] = NoVertex
	}
	vs.edgePointers = newEdgePointers

	newVertices := make([]byte, newLen*coordinateSizeBytes)
	copy(newVertices, vs.vertices)
	for i := len(vs.vertices); i < len(newVertices); i++ {
		newVertices[i] = 0xFF
	}
	vs.vertices = newVertices
}

func (vs *VertexStore) coordBytes(slot uint32) []byte {
	off := int(slot) * coordinateSizeBytes
	return vs.vertices[off : off+coordinateSizeBytes]
}

// slotFor resolves a VertexID to its absolute slot, failing if the
// tile is absent or the localId is outside the tile's current
// capacity.
func (vs *VertexStore) slotFor(v VertexID) (uint32, bool) {
	base, capacity, ok := vs.tiles.find(v.TileID)
	if !ok || v.LocalID >= capacity {
		return 0, false
	}
	return base + v.LocalID, true
}

// AddVertex buckets (lon, lat) into a tile, allocates (or reuses) a
// slot, and records its quantised local coordinate. See spec §4.3 for
// the exact slot-selection and regrowth algorithm.
func (vs *VertexStore) AddVertex(lon, lat float64) VertexID {
	tile := WorldToTile(lon, lat, vs.zoom)
	tileID := tile.LocalID()

	base, capacity, ok := vs.tiles.find(tileID)
	if !ok {
		base, capacity = vs.tiles.add(tileID)
		vs.ensureArrays(vs.tiles.VertexPointerHigh())
	}

	slot, grew := vs.nextSlot(base, capacity)
	if grew {
		oldBase, oldCapacity := base, capacity
		newBase, newCapacity := vs.tiles.grow(tileID, oldBase)
		vs.ensureArrays(vs.tiles.VertexPointerHigh())

		for i := uint32(0); i < oldCapacity; i++ {
			vs.edgePointers[newBase+i] = vs.edgePointers[oldBase+i]
			copy(vs.coordBytes(newBase+i), vs.coordBytes(oldBase+i))
		}
		slot = newBase + oldCapacity
		base, capacity = newBase, newCapacity
	}
	_ = capacity

	ix, iy := tile.ToLocalCoordinates(lon, lat, resolution)
	vs.edgePointers[slot] = NoEdges
	copy(vs.coordBytes(slot), packCoord(ix, iy)[:])

	return VertexID{TileID: tileID, LocalID: slot - base}
}

// nextSlot scans [base, base+capacity) right-to-left for the smallest
// index of a maximal contiguous run of empty slots at the top of the
// range. If the top slot is already occupied, grew is true and the
// caller must grow the tile.
func (vs *VertexStore) nextSlot(base, capacity uint32) (slot uint32, grew bool) {
	p := int64(base) + int64(capacity) - 1
	found := int64(-1)
	for p >= int64(base) && vs.edgePointers[p] == NoVertex {
		found = p
		p--
	}
	if found < 0 {
		return 0, true
	}
	return uint32(found), false
}

// TryGetVertex returns the decoded coordinate of v, or false if the
// tile is absent, localId is out of range, or the slot is empty.
func (vs *VertexStore) TryGetVertex(v VertexID) (Coordinate, bool) {
	slot, ok := vs.slotFor(v)
	if !ok {
		return Coordinate{}, false
	}
	b := vs.coordBytes(slot)
	if coordEmpty(b) {
		return Coordinate{}, false
	}
	ix, iy := unpackCoord(b)
	tile := FromLocalID(v.TileID, vs.zoom)
	lon, lat := tile.FromLocalCoordinates(ix, iy, resolution)
	return Coordinate{Lon: lon, Lat: lat}, true
}

// GetVertex is the strict variant of TryGetVertex.
func (vs *VertexStore) GetVertex(v VertexID) (Coordinate, error) {
	c, ok := vs.TryGetVertex(v)
	if !ok {
		return Coordinate{}, fmt.Errorf("vertex %+v: %w", v, ErrVertexDoesNotExist)
	}
	return c, nil
}

func (vs *VertexStore) edgePointerFor(v VertexID) (uint32, bool) {
	slot, ok := vs.slotFor(v)
	if !ok {
		return 0, false
	}
	return vs.edgePointers[slot], true
}

func (vs *VertexStore) setEdgePointer(v VertexID, edgeID uint32) {
	slot, ok := vs.slotFor(v)
	if !ok {
		panic("tiledgraph: setEdgePointer on nonexistent vertex")
	}
	vs.edgePointers[slot] = edgeID
}
