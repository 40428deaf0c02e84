package tiledgraph

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerStatsEndpoint(t *testing.T) {
	g := New(WithZoom(14))
	g.AddVertex(4.9, 52.37)
	srv := NewServer(g, "*")

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var stats Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats.VertexPointerHigh)
}

func TestServerVertexEndpointFound(t *testing.T) {
	g := New(WithZoom(14))
	v := g.AddVertex(4.9, 52.37)
	srv := NewServer(g, "")

	path := "/vertex/" + itoa(uint64(v.TileID)) + "/" + itoa(uint64(v.LocalID))
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var coord Coordinate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &coord))
	assert.InDelta(t, 4.9, coord.Lon, 0.01)
}

func TestServerVertexEndpointNotFound(t *testing.T) {
	g := New(WithZoom(14))
	srv := NewServer(g, "")

	req := httptest.NewRequest(http.MethodGet, "/vertex/1/1", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
}

func TestServerUnknownPath(t *testing.T) {
	g := New(WithZoom(14))
	srv := NewServer(g, "")

	req := httptest.NewRequest(http.MethodGet, "/nonsense", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
}

func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
