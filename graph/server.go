package tiledgraph

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"time"
)

// Server is a read-only HTTP view over an in-memory Graph: vertex
// lookups and size stats as JSON. Grounded on the
// teacher's pmtiles/server.go Get(ctx, path) (status, headers, body)
// shape, trimmed to this package's much simpler needs — a Graph lives
// fully in memory, so there is no directory cache or range-request
// plumbing to carry over.
type Server struct {
	graph *Graph
	cors  string
}

// NewServer wraps graph for HTTP access. cors, if non-empty, is echoed
// back as Access-Control-Allow-Origin on GET and OPTIONS responses.
func NewServer(graph *Graph, cors string) *Server {
	return &Server{graph: graph, cors: cors}
}

var vertexPattern = regexp.MustCompile(`^/vertex/(\d+)/(\d+)$`)

func (s *Server) get(ctx context.Context, path string) (status int, headers map[string]string, body []byte) {
	headers = make(map[string]string)
	if s.cors != "" {
		headers["Access-Control-Allow-Origin"] = s.cors
	}
	headers["Content-Type"] = "application/json"

	switch {
	case path == "/stats":
		return 200, headers, mustMarshal(s.graph.Stats())
	case vertexPattern.MatchString(path):
		m := vertexPattern.FindStringSubmatch(path)
		tileID, err1 := strconv.ParseUint(m[1], 10, 32)
		localID, err2 := strconv.ParseUint(m[2], 10, 32)
		if err1 != nil || err2 != nil {
			return 400, headers, []byte(`{"error":"malformed vertex id"}`)
		}
		v := VertexID{TileID: TileID(tileID), LocalID: uint32(localID)}
		coord, ok := s.graph.TryGetVertex(v)
		if !ok {
			return 404, headers, []byte(`{"error":"vertex not found"}`)
		}
		return 200, headers, mustMarshal(coord)
	default:
		return 404, headers, []byte(`{"error":"not found"}`)
	}
}

// ServeHTTP answers GET /stats and GET /vertex/{tileId}/{localId}.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method == http.MethodOptions {
		if s.cors != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.cors)
		}
		w.WriteHeader(204)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(405)
		return
	}

	status, headers, body := s.get(r.Context(), r.URL.Path)
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(status)
	w.Write(body)
	_ = start
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"error":"internal"}`)
	}
	return b
}
