package tiledgraph

import "github.com/RoaringBitmap/roaring/roaring64"

// ReachableTiles is a read-only diagnostic helper: it returns the set
// of tile ids reachable from seed within hops edge-traversals, tracked
// as a Roaring64 bitmap. It walks EdgeEnumerator breadth-first at the
// tile granularity; it is not a shortest-path search (no weights, no
// distances) and exists only to answer "how spread out is this tile's
// neighbourhood" as a diagnostic, consistent with the
// Non-goal that routing search lives in a higher layer.
func (g *Graph) ReachableTiles(seed TileID, hops int) *roaring64.Bitmap {
	visited := roaring64.New()
	visited.Add(uint64(seed))
	frontier := visited.Clone()

	en := g.Enumerator()
	for h := 0; h < hops; h++ {
		next := roaring64.New()
		it := frontier.Iterator()
		for it.HasNext() {
			tid := TileID(it.Next())
			base, capacity, ok := g.tiles.find(tid)
			if !ok {
				continue
			}
			for local := uint32(0); local < capacity; local++ {
				v := VertexID{TileID: tid, LocalID: local}
				if _, ok := g.vertices.TryGetVertex(v); !ok {
					continue
				}
				if !en.MoveTo(v) {
					continue
				}
				for en.MoveNext() {
					next.Add(uint64(en.To().TileID))
				}
			}
			_ = base
		}
		next.AndNot(visited)
		if next.IsEmpty() {
			break
		}
		visited.Or(next)
		frontier = next
	}
	return visited
}
