package tiledgraph

import (
	"fmt"

	"zombiezen.com/go/sqlite"
)

// ExportSQLite writes a queryable snapshot of the current vertex and
// edge arrays into a new SQLite database at path, for ad-hoc
// inspection with any SQL client. It is a debug export, not a storage
// format this package reads back.
//
// Grounded on the teacher's convert.go, which drives the same
// zombiezen.com/go/sqlite driver in the opposite direction (reading an
// MBTiles SQLite file); there is no SQLite-backed input format in this
// domain, so here the driver only ever writes.
func (g *Graph) ExportSQLite(path string) (err error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite|sqlite.OpenCreate)
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}
	defer func() {
		if closeErr := conn.Close(); err == nil {
			err = closeErr
		}
	}()

	schema := []string{
		"CREATE TABLE vertices (tile_id INTEGER, local_id INTEGER, lon REAL, lat REAL)",
		"CREATE TABLE edges (edge_id INTEGER PRIMARY KEY, v1_tile INTEGER, v1_local INTEGER, v2_tile INTEGER, v2_local INTEGER)",
	}
	for _, stmt := range schema {
		if execErr := execStatement(conn, stmt); execErr != nil {
			return execErr
		}
	}

	insertVertex, _, prepErr := conn.PrepareTransient("INSERT INTO vertices (tile_id, local_id, lon, lat) VALUES (?, ?, ?, ?)")
	if prepErr != nil {
		return fmt.Errorf("preparing vertex insert: %w", prepErr)
	}
	defer insertVertex.Finalize()

	for _, tileID := range g.ActiveTiles() {
		base, capacity, ok := g.tiles.find(tileID)
		if !ok {
			continue
		}
		for local := uint32(0); local < capacity; local++ {
			v := VertexID{TileID: tileID, LocalID: local}
			coord, ok := g.vertices.TryGetVertex(v)
			if !ok {
				continue
			}
			insertVertex.BindInt64(1, int64(tileID))
			insertVertex.BindInt64(2, int64(local))
			insertVertex.BindFloat(3, coord.Lon)
			insertVertex.BindFloat(4, coord.Lat)
			if _, stepErr := insertVertex.Step(); stepErr != nil {
				return fmt.Errorf("inserting vertex: %w", stepErr)
			}
			if resetErr := insertVertex.Reset(); resetErr != nil {
				return resetErr
			}
		}
		_ = base
	}

	insertEdge, _, prepErr := conn.PrepareTransient("INSERT INTO edges (edge_id, v1_tile, v1_local, v2_tile, v2_local) VALUES (?, ?, ?, ?, ?)")
	if prepErr != nil {
		return fmt.Errorf("preparing edge insert: %w", prepErr)
	}
	defer insertEdge.Finalize()

	en := g.Enumerator()
	for edgeID := uint32(0); uint64(edgeID) < g.edges.EdgeCount(); edgeID++ {
		en.MoveToEdge(edgeID, true)
		v1 := en.From()
		v2 := en.To()
		insertEdge.BindInt64(1, int64(edgeID))
		insertEdge.BindInt64(2, int64(v1.TileID))
		insertEdge.BindInt64(3, int64(v1.LocalID))
		insertEdge.BindInt64(4, int64(v2.TileID))
		insertEdge.BindInt64(5, int64(v2.LocalID))
		if _, stepErr := insertEdge.Step(); stepErr != nil {
			return fmt.Errorf("inserting edge: %w", stepErr)
		}
		if resetErr := insertEdge.Reset(); resetErr != nil {
			return resetErr
		}
	}

	return nil
}

func execStatement(conn *sqlite.Conn, sql string) error {
	stmt, _, err := conn.PrepareTransient(sql)
	if err != nil {
		return fmt.Errorf("preparing %q: %w", sql, err)
	}
	defer stmt.Finalize()
	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("executing %q: %w", sql, err)
	}
	return nil
}
