package tiledgraph

// noRawPtr is the enumerator's internal "no more edges" sentinel for
// rawPtr/nextRawPtr, analogous to the NoEdges sentinel in the
// first-edge-pointer array but expressed as a byte offset.
const noRawPtr = ^uint64(0)

// EdgeEnumerator is a cursor that walks one vertex's incident edges by
// following EdgeArena's intrusive per-endpoint linked list, normalising
// direction at each step by comparing the anchor vertex to the two
// endpoints stored in the current record.
//
// An enumerator must not be used across a mutation of the graph: its
// rawPtr is a raw arena offset that a reallocating AddVertex/AddEdge
// can invalidate.
type EdgeEnumerator struct {
	arena    *EdgeArena
	edgeSize uint64

	anchor     VertexID
	anchorOK   bool
	firstEdge  bool
	rawPtr     uint64
	nextRawPtr uint64
	forward    bool
	to         VertexID
}

func newEdgeEnumerator(arena *EdgeArena) *EdgeEnumerator {
	return &EdgeEnumerator{arena: arena, edgeSize: uint64(arena.edgeSize)}
}

// MoveTo positions the enumerator at vertex v, ready for MoveNext. It
// returns false if v cannot be resolved.
func (en *EdgeEnumerator) MoveTo(v VertexID) bool {
	e, ok := en.arena.vertices.edgePointerFor(v)
	if !ok {
		en.anchorOK = false
		return false
	}
	en.anchor = v
	en.anchorOK = true
	en.firstEdge = true
	if e == NoEdges {
		en.rawPtr = noRawPtr
	} else {
		en.rawPtr = uint64(e) * en.edgeSize
	}
	return true
}

// Reset re-enters MoveTo on the current anchor.
func (en *EdgeEnumerator) Reset() bool {
	return en.MoveTo(en.anchor)
}

// MoveNext advances the cursor to the next incident edge, returning
// false once the list is exhausted (or the anchor was never
// resolved). A self-loop is yielded twice, forward then backward.
func (en *EdgeEnumerator) MoveNext() bool {
	if !en.anchorOK {
		return false
	}
	if en.firstEdge {
		en.firstEdge = false
		if en.rawPtr == noRawPtr {
			return false
		}
	} else {
		if en.forward && en.to == en.anchor {
			// The current edge is a self-loop just yielded forward:
			// yield it again backward. Its two prev pointers are equal,
			// so nextRawPtr is already correct.
			en.forward = false
			return true
		}
		if en.nextRawPtr == noRawPtr {
			return false
		}
		en.rawPtr = en.nextRawPtr
	}

	edgeID := uint32(en.rawPtr / en.edgeSize)
	v1, v2, prev1raw, prev2raw := en.arena.readEndpoints(edgeID)

	var nextRaw uint32
	if v1 == en.anchor {
		en.forward = true
		en.to = v2
		nextRaw = prev1raw
	} else {
		en.forward = false
		en.to = v1
		nextRaw = prev2raw
	}

	nextID := decodePrev(nextRaw)
	if nextID == NoEdges {
		en.nextRawPtr = noRawPtr
	} else {
		en.nextRawPtr = uint64(nextID) * en.edgeSize
	}
	return true
}

// MoveToEdge positions the cursor directly on edgeID, with the anchor
// set to whichever endpoint forward selects. Used for random-access
// edge lookup (e.g. from a persisted edge id) rather than a vertex
// walk.
func (en *EdgeEnumerator) MoveToEdge(edgeID uint32, forward bool) bool {
	if uint64(edgeID) >= en.arena.EdgeCount() {
		en.anchorOK = false
		return false
	}
	v1, v2, prev1raw, prev2raw := en.arena.readEndpoints(edgeID)

	en.rawPtr = uint64(edgeID) * en.edgeSize
	en.firstEdge = false
	en.forward = forward

	var nextRaw uint32
	if forward {
		en.anchor = v1
		en.to = v2
		nextRaw = prev1raw
	} else {
		en.anchor = v2
		en.to = v1
		nextRaw = prev2raw
	}
	en.anchorOK = true

	nextID := decodePrev(nextRaw)
	if nextID == NoEdges {
		en.nextRawPtr = noRawPtr
	} else {
		en.nextRawPtr = uint64(nextID) * en.edgeSize
	}
	return true
}

// From returns the vertex the enumerator is anchored on.
func (en *EdgeEnumerator) From() VertexID { return en.anchor }

// To returns the current edge's other endpoint.
func (en *EdgeEnumerator) To() VertexID { return en.to }

// Forward reports whether From() is the edge's stored first endpoint.
func (en *EdgeEnumerator) Forward() bool { return en.forward }

// EdgeID returns the current edge's id.
func (en *EdgeEnumerator) EdgeID() uint32 { return uint32(en.rawPtr / en.edgeSize) }

// CopyData copies the current edge's inline payload into dst.
func (en *EdgeEnumerator) CopyData(dst []byte) int {
	return en.arena.CopyData(en.EdgeID(), dst)
}

// GetShape returns the current edge's shape, if any, oriented in the
// direction of travel (reversed when Forward() is false).
func (en *EdgeEnumerator) GetShape() ([]Coordinate, bool) {
	shape, ok := en.arena.shapes.get(en.EdgeID())
	if !ok {
		return nil, false
	}
	if en.forward {
		return shape, true
	}
	reversed := make([]Coordinate, len(shape))
	for i, c := range shape {
		reversed[len(shape)-1-i] = c
	}
	return reversed, true
}
