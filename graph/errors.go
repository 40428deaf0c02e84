package tiledgraph

import "errors"

// ErrVertexDoesNotExist is returned by strict vertex accessors and by
// AddEdge when an endpoint's tile is absent, its localId is out of the
// tile's current capacity, or its slot is empty.
var ErrVertexDoesNotExist = errors.New("tiledgraph: vertex does not exist")

// ErrFormatError is returned by ReadFrom when the stream header does
// not match what this package writes: wrong magic string, unsupported
// version, or a field-size sentinel the reader does not understand.
var ErrFormatError = errors.New("tiledgraph: invalid stream format")

// ErrCapacityExceeded is returned by AddEdge when the edge count would
// exceed 2^32-2. Vertex-slot and tile-capacity overflow are not
// checked.
var ErrCapacityExceeded = errors.New("tiledgraph: capacity exceeded")
