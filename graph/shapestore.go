package tiledgraph

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ShapeStore holds an optional ordered polyline per edge id, stored
// densely in a parallel array. Identical polylines (by content) are
// deduplicated behind a single backing slice, content-addressed with
// xxhash, the same way the teacher's sync/makesync tooling
// content-addresses byte ranges before deciding whether to re-fetch
// them.
type ShapeStore struct {
	offsets     []int32 // per edge id: index into shared, or -1 if absent
	shared      [][]Coordinate
	hashToIndex map[uint64]int
}

func newShapeStore() *ShapeStore {
	return &ShapeStore{hashToIndex: make(map[uint64]int)}
}

func (ss *ShapeStore) ensureSized(required int) {
	if len(ss.offsets) >= required {
		return
	}
	newLen := len(ss.offsets)
	for newLen < required {
		newLen += shapeGrowIncrement
	}
	grown := make([]int32, newLen)
	copy(grown, ss.offsets)
	for i := len(ss.offsets); i < newLen; i++ {
		grown[i] = -1
	}
	ss.offsets = grown
}

func hashShape(shape []Coordinate) uint64 {
	buf := make([]byte, 16)
	h := xxhash.New()
	for _, c := range shape {
		binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(c.Lon))
		binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(c.Lat))
		h.Write(buf)
	}
	return h.Sum64()
}

func equalShape(a, b []Coordinate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// set stores shape for edgeID, deduplicating against any
// already-stored identical polyline.
func (ss *ShapeStore) set(edgeID uint32, shape []Coordinate) {
	ss.ensureSized(int(edgeID) + 1)

	h := hashShape(shape)
	if idx, ok := ss.hashToIndex[h]; ok && equalShape(ss.shared[idx], shape) {
		ss.offsets[edgeID] = int32(idx)
		return
	}

	clone := make([]Coordinate, len(shape))
	copy(clone, shape)
	idx := len(ss.shared)
	ss.shared = append(ss.shared, clone)
	ss.hashToIndex[h] = idx
	ss.offsets[edgeID] = int32(idx)
}

// get returns the shape for edgeID, in storage order (forward).
func (ss *ShapeStore) get(edgeID uint32) ([]Coordinate, bool) {
	if int(edgeID) >= len(ss.offsets) {
		return nil, false
	}
	idx := ss.offsets[edgeID]
	if idx < 0 {
		return nil, false
	}
	return ss.shared[idx], true
}
