package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	httptrace "github.com/DataDog/dd-trace-go/contrib/net/http/v2"
	"github.com/DataDog/dd-trace-go/v2/ddtrace/tracer"
	"github.com/dustin/go-humanize"
	"github.com/rs/cors"
	"github.com/tiledgraph/tiledgraph/graph"
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

func main() {
	logger := log.New(os.Stdout, "", log.Ldate|log.Ltime|log.Lshortfile)

	if len(os.Args) < 2 {
		helptext := `Usage: tiledgraph [COMMAND] [ARGS]

Building a snapshot from vertex/edge CSV:
tiledgraph build [-zoom N] [-edge-data-size N] VERTICES.csv EDGES.csv OUTPUT.bin

Inspecting a snapshot:
tiledgraph inspect GRAPH.bin

Exporting a snapshot for ad-hoc SQL queries:
tiledgraph export-sqlite GRAPH.bin OUTPUT.sqlite

Serving a snapshot's stats/vertex lookup endpoints:
tiledgraph serve GRAPH.bin`
		fmt.Println(helptext)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		buildCmd := flag.NewFlagSet("build", flag.ExitOnError)
		zoom := buildCmd.Uint("zoom", uint(graph.DefaultZoom), "web-mercator zoom level to bucket vertices at")
		edgeDataSize := buildCmd.Int("edge-data-size", 0, "fixed inline payload size, in bytes, stored with every edge")
		buildCmd.Parse(os.Args[2:])
		verticesPath := buildCmd.Arg(0)
		edgesPath := buildCmd.Arg(1)
		output := buildCmd.Arg(2)
		if verticesPath == "" || edgesPath == "" || output == "" {
			logger.Fatal("USAGE: build [-zoom N] [-edge-data-size N] VERTICES.csv EDGES.csv OUTPUT.bin")
		}

		g := graph.New(
			graph.WithZoom(uint8(*zoom)),
			graph.WithEdgeDataSize(*edgeDataSize),
			graph.WithLogger(logger),
			graph.WithProgress(graph.BarProgressWriter{}),
		)
		vertices := loadVertices(logger, verticesPath, g)
		loadEdges(logger, edgesPath, g, vertices)

		out, err := os.Create(output)
		if err != nil {
			logger.Fatalf("failed to create %s, %v", output, err)
		}
		defer out.Close()
		if _, err := g.WriteTo(out); err != nil {
			logger.Fatalf("failed to write %s, %v", output, err)
		}

	case "inspect":
		inspectCmd := flag.NewFlagSet("inspect", flag.ExitOnError)
		inspectCmd.Parse(os.Args[2:])
		path := inspectCmd.Arg(0)
		if path == "" {
			logger.Fatal("USAGE: inspect GRAPH.bin")
		}
		g := mustLoad(logger, path)
		stats := g.Stats()
		fmt.Printf("tiles:        %s\n", humanize.Comma(int64(stats.TileCount)))
		fmt.Printf("vertex slots: %s\n", humanize.Comma(int64(stats.VertexPointerHigh)))
		fmt.Printf("edges:        %s\n", humanize.Comma(int64(stats.EdgeCount)))
		fmt.Printf("vertex bytes: %s\n", humanize.Bytes(stats.VertexArenaBytes))
		fmt.Printf("edge bytes:   %s\n", humanize.Bytes(stats.EdgeArenaBytes))
		fmt.Printf("shapes:       %s\n", humanize.Comma(int64(stats.ShapeCount)))

	case "export-sqlite":
		exportCmd := flag.NewFlagSet("export-sqlite", flag.ExitOnError)
		exportCmd.Parse(os.Args[2:])
		path := exportCmd.Arg(0)
		output := exportCmd.Arg(1)
		if path == "" || output == "" {
			logger.Fatal("USAGE: export-sqlite GRAPH.bin OUTPUT.sqlite")
		}
		g := mustLoad(logger, path)
		if err := g.ExportSQLite(output); err != nil {
			logger.Fatalf("failed to export %s, %v", output, err)
		}

	case "serve":
		serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
		port := serveCmd.Int("p", 8080, "port to serve on")
		corsOrigin := serveCmd.String("cors", "", "CORS allowed origin value")
		traceEnabled := serveCmd.Bool("trace", false, "enable Datadog APM tracing")
		serveCmd.Parse(os.Args[2:])
		path := serveCmd.Arg(0)
		if path == "" {
			logger.Fatal("USAGE: serve [-p PORT] [-cors VALUE] [-trace] GRAPH.bin")
		}

		g := mustLoad(logger, path)
		srv := graph.NewServer(g, *corsOrigin)

		var handler http.Handler = http.HandlerFunc(srv.ServeHTTP)
		if *corsOrigin != "" {
			handler = cors.New(cors.Options{AllowedOrigins: []string{*corsOrigin}}).Handler(handler)
		}
		if *traceEnabled {
			tracer.Start(tracer.WithService("tiledgraph"))
			defer tracer.Stop()
			handler = httptrace.WrapHandler(handler, "tiledgraph", "serve")
		}

		addr := ":" + strconv.Itoa(*port)
		logger.Printf("serving %s on HTTP port %d with Access-Control-Allow-Origin: %s\n", path, *port, *corsOrigin)
		logger.Fatal(http.ListenAndServe(addr, handler))

	default:
		logger.Println("unrecognized command.")
		flag.PrintDefaults()
		os.Exit(1)
	}
}

// loadVertices reads "id,lon,lat" lines from path, adding each to g and
// returning the id->VertexID mapping edges are resolved against.
func loadVertices(logger *log.Logger, path string, g *graph.Graph) map[string]graph.VertexID {
	f, err := os.Open(path)
	if err != nil {
		logger.Fatalf("failed to open %s, %v", path, err)
	}
	defer f.Close()

	out := make(map[string]graph.VertexID)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			logger.Fatalf("%s: malformed vertex line %q, want id,lon,lat", path, line)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			logger.Fatalf("%s: bad lon in %q, %v", path, line, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			logger.Fatalf("%s: bad lat in %q, %v", path, line, err)
		}
		out[strings.TrimSpace(fields[0])] = g.AddVertex(lon, lat)
	}
	if err := scanner.Err(); err != nil {
		logger.Fatalf("failed to read %s, %v", path, err)
	}
	return out
}

// loadEdges reads "v1,v2[,payloadHex[,lon:lat;lon:lat;...]]" lines from
// path, adding each edge to g with endpoints resolved through vertices.
func loadEdges(logger *log.Logger, path string, g *graph.Graph, vertices map[string]graph.VertexID) {
	f, err := os.Open(path)
	if err != nil {
		logger.Fatalf("failed to open %s, %v", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			logger.Fatalf("%s: malformed edge line %q, want v1,v2[,payload[,shape]]", path, line)
		}
		v1, ok := vertices[strings.TrimSpace(fields[0])]
		if !ok {
			logger.Fatalf("%s: unknown vertex id %q", path, fields[0])
		}
		v2, ok := vertices[strings.TrimSpace(fields[1])]
		if !ok {
			logger.Fatalf("%s: unknown vertex id %q", path, fields[1])
		}

		var payload []byte
		if len(fields) > 2 && strings.TrimSpace(fields[2]) != "" {
			payload, err = hex.DecodeString(strings.TrimSpace(fields[2]))
			if err != nil {
				logger.Fatalf("%s: bad payload hex in %q, %v", path, line, err)
			}
		}

		var shape []graph.Coordinate
		if len(fields) > 3 && strings.TrimSpace(fields[3]) != "" {
			for _, pt := range strings.Split(fields[3], ";") {
				lonLat := strings.Split(pt, ":")
				if len(lonLat) != 2 {
					logger.Fatalf("%s: bad shape point %q in %q", path, pt, line)
				}
				lon, err := strconv.ParseFloat(strings.TrimSpace(lonLat[0]), 64)
				if err != nil {
					logger.Fatalf("%s: bad shape lon in %q, %v", path, line, err)
				}
				lat, err := strconv.ParseFloat(strings.TrimSpace(lonLat[1]), 64)
				if err != nil {
					logger.Fatalf("%s: bad shape lat in %q, %v", path, line, err)
				}
				shape = append(shape, graph.Coordinate{Lon: lon, Lat: lat})
			}
		}

		if _, err := g.AddEdge(v1, v2, payload, shape); err != nil {
			logger.Fatalf("%s: failed to add edge %q, %v", path, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Fatalf("failed to read %s, %v", path, err)
	}
}

func mustLoad(logger *log.Logger, path string) *graph.Graph {
	f, err := os.Open(path)
	if err != nil {
		logger.Fatalf("failed to open %s, %v", path, err)
	}
	defer f.Close()

	g, err := graph.ReadFrom(f, graph.WithLogger(logger))
	if err != nil {
		logger.Fatalf("failed to read %s, %v", path, err)
	}
	return g
}
