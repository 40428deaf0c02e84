package tiledgraph

import (
	"encoding/binary"
	"log"

	"github.com/RoaringBitmap/roaring/roaring64"
)

// TileIndex is a sparse mapping from tile id to a (base vertex-slot
// pointer, capacity) pair. It is backed by a byte array addressed at
// tileId*5; an absent tile is five consecutive 0xFF bytes.
type TileIndex struct {
	data              []byte
	vertexPointerHigh uint64
	active            *roaring64.Bitmap
	logger            *log.Logger
}

func newTileIndex(logger *log.Logger) *TileIndex {
	return &TileIndex{
		active: roaring64.New(),
		logger: logger,
	}
}

func tileRecordAbsent(rec []byte) bool {
	for _, b := range rec {
		if b != 0xFF {
			return false
		}
	}
	return true
}

func (ti *TileIndex) ensureSized(tileID TileID) {
	need := (int(tileID) + 1) * tileSizeInIndex
	if need <= len(ti.data) {
		return
	}
	grown := len(ti.data)
	for grown < need {
		grown += indexGrowIncrement
	}
	fresh := make([]byte, grown-len(ti.data))
	for i := range fresh {
		fresh[i] = 0xFF
	}
	ti.data = append(ti.data, fresh...)
}

func (ti *TileIndex) readRecord(tileID TileID) (base uint32, capacityBitsExp uint8, ok bool) {
	off := int(tileID) * tileSizeInIndex
	if off+tileSizeInIndex > len(ti.data) {
		return 0, 0, false
	}
	rec := ti.data[off : off+tileSizeInIndex]
	if tileRecordAbsent(rec) {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint32(rec[0:4]), rec[4], true
}

func (ti *TileIndex) writeRecord(tileID TileID, base uint32, capacityBitsExp uint8) {
	ti.ensureSized(tileID)
	off := int(tileID) * tileSizeInIndex
	rec := ti.data[off : off+tileSizeInIndex]
	binary.LittleEndian.PutUint32(rec[0:4], base)
	rec[4] = capacityBitsExp
	ti.active.Add(uint64(tileID))
}

// find returns the tile's current (base, capacity), or TileNotLoaded in
// base (and false) if the tile has never been added.
func (ti *TileIndex) find(tileID TileID) (base uint32, capacity uint32, ok bool) {
	b, exp, present := ti.readRecord(tileID)
	if !present {
		return TileNotLoaded, 0, false
	}
	return b, 1 << exp, true
}

// add allocates a fresh, single-slot range for a tile seen for the
// first time.
func (ti *TileIndex) add(tileID TileID) (base uint32, capacity uint32) {
	base = uint32(ti.vertexPointerHigh)
	ti.writeRecord(tileID, base, 0)
	ti.vertexPointerHigh++
	return base, 1
}

// grow doubles a tile's capacity, relocating it to a fresh high-water
// region. The caller is responsible for copying live slots from
// oldBase into the returned newBase and for writing the new vertex at
// newBase + oldCapacity (the first slot of the upper half), per spec.
func (ti *TileIndex) grow(tileID TileID, oldBase uint32) (newBase uint32, newCapacity uint32) {
	_, oldExp, ok := ti.readRecord(tileID)
	if !ok {
		panic("tiledgraph: grow called on a tile that was never added")
	}
	oldCapacity := uint32(1) << oldExp
	newExp := oldExp + 1
	newBase = uint32(ti.vertexPointerHigh)
	ti.vertexPointerHigh += uint64(2 * oldCapacity)
	ti.writeRecord(tileID, newBase, newExp)
	if ti.logger != nil {
		ti.logger.Printf("tile %d grew capacity %d -> %d, base %d -> %d", tileID, oldCapacity, oldCapacity*2, oldBase, newBase)
	}
	return newBase, oldCapacity * 2
}

// ActiveTiles returns a snapshot of the set of tile ids that currently
// have an allocated slot range. It is a read-only diagnostic aid built
// on a Roaring64 bitmap kept in step with add/grow; it never
// participates in find/add/grow's own control flow.
func (ti *TileIndex) ActiveTiles() *roaring64.Bitmap {
	return ti.active.Clone()
}

// VertexPointerHigh returns the monotonically increasing high-water
// mark of allocated vertex slots.
func (ti *TileIndex) VertexPointerHigh() uint64 {
	return ti.vertexPointerHigh
}
