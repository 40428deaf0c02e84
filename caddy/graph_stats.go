package caddy

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/caddyserver/caddy/v2"
	"github.com/caddyserver/caddy/v2/caddyconfig/caddyfile"
	"github.com/caddyserver/caddy/v2/caddyconfig/httpcaddyfile"
	"github.com/caddyserver/caddy/v2/modules/caddyhttp"
	"github.com/tiledgraph/tiledgraph/graph"
	"go.uber.org/zap"
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

func init() {
	caddy.RegisterModule(Middleware{})
	httpcaddyfile.RegisterHandlerDirective("graph_stats", parseCaddyfile)
}

// Middleware exposes a single in-memory Graph's stats and vertex
// lookup endpoints behind a Caddy route. Grounded on the teacher's
// caddy/pmtiles_proxy.go Provision/Validate/ServeHTTP wiring, trimmed
// to a single snapshot path instead of a bucket of many archives.
type Middleware struct {
	SnapshotPath string `json:"snapshot_path"`
	Cors         string `json:"cors"`
	logger       *zap.Logger
	server       *graph.Server
}

// CaddyModule returns the Caddy module information.
func (Middleware) CaddyModule() caddy.ModuleInfo {
	return caddy.ModuleInfo{
		ID:  "http.handlers.graph_stats",
		New: func() caddy.Module { return new(Middleware) },
	}
}

func (m *Middleware) Provision(ctx caddy.Context) error {
	m.logger = ctx.Logger()

	f, err := os.Open(m.SnapshotPath)
	if err != nil {
		return fmt.Errorf("opening %q: %w", m.SnapshotPath, err)
	}
	defer f.Close()

	g, err := graph.ReadFrom(f)
	if err != nil {
		return fmt.Errorf("reading %q: %w", m.SnapshotPath, err)
	}

	m.server = graph.NewServer(g, m.Cors)
	return nil
}

func (m *Middleware) Validate() error {
	if m.SnapshotPath == "" {
		return fmt.Errorf("no snapshot_path")
	}
	return nil
}

func (m Middleware) ServeHTTP(w http.ResponseWriter, r *http.Request, next caddyhttp.Handler) error {
	start := time.Now()
	m.server.ServeHTTP(w, r)
	m.logger.Info("response", zap.String("path", r.URL.Path), zap.Duration("duration", time.Since(start)))
	return next.ServeHTTP(w, r)
}

func (m *Middleware) UnmarshalCaddyfile(d *caddyfile.Dispenser) error {
	for d.Next() {
		for nesting := d.Nesting(); d.NextBlock(nesting); {
			switch d.Val() {
			case "snapshot_path":
				if !d.Args(&m.SnapshotPath) {
					return d.ArgErr()
				}
			case "cors":
				if !d.Args(&m.Cors) {
					return d.ArgErr()
				}
			}
		}
	}
	return nil
}

func parseCaddyfile(h httpcaddyfile.Helper) (caddyhttp.MiddlewareHandler, error) {
	var m Middleware
	err := m.UnmarshalCaddyfile(h.Dispenser)
	return m, err
}

var (
	_ caddy.Provisioner           = (*Middleware)(nil)
	_ caddy.Validator             = (*Middleware)(nil)
	_ caddyhttp.MiddlewareHandler = (*Middleware)(nil)
	_ caddyfile.Unmarshaler       = (*Middleware)(nil)
)
