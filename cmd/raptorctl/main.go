// Command raptorctl loads a feed and runs a single journey query from
// the command line, printing the resulting Pareto set — useful for
// smoke-testing a feed without standing up the HTTP adapter.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/antigravity/transit-raptor/internal/feed"
	"github.com/antigravity/transit-raptor/internal/feed/gtfszip"
	"github.com/antigravity/transit-raptor/internal/feed/sqlitefeed"
	"github.com/antigravity/transit-raptor/internal/footpath"
	"github.com/antigravity/transit-raptor/internal/query"
	"github.com/antigravity/transit-raptor/internal/raptor"
	"github.com/antigravity/transit-raptor/internal/snapshot"
)

func main() {
	backend := flag.String("backend", "sqlite", "feed backend: sqlite or gtfszip")
	feedPath := flag.String("feed", "", "path to the sqlite database or GTFS zip/directory")
	originLat := flag.Float64("origin-lat", 0, "origin latitude")
	originLon := flag.Float64("origin-lon", 0, "origin longitude")
	destLat := flag.Float64("dest-lat", 0, "destination latitude")
	destLon := flag.Float64("dest-lon", 0, "destination longitude")
	departureTime := flag.Int64("departure", 0, "departure time, seconds since service day start")
	accessRadius := flag.Float64("access-radius-m", 1000, "access/egress search radius in meters")
	maxResults := flag.Int("max-results", 5, "maximum number of journeys to print")
	flag.Parse()

	if *feedPath == "" {
		fmt.Fprintln(os.Stderr, "raptorctl: -feed is required")
		os.Exit(2)
	}

	ctx := context.Background()
	source, err := openFeed(*backend, *feedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "raptorctl: %v\n", err)
		os.Exit(1)
	}

	snap, err := snapshot.Build(ctx, source, footpath.DefaultConfig(), 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "raptorctl: building snapshot: %v\n", err)
		os.Exit(1)
	}

	engine := &query.Engine{
		Store:     snap.Store,
		Footpath:  snap.Footpath,
		Resolver:  snap.Resolver,
		RaptorCfg: raptor.DefaultConfig(),
	}

	results, err := engine.Search(ctx, query.Request{
		OriginLat:     *originLat,
		OriginLon:     *originLon,
		DestLat:       *destLat,
		DestLon:       *destLon,
		DepartureTime: *departureTime,
		AccessRadiusM: *accessRadius,
		MaxResults:    *maxResults,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "raptorctl: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(results)
}

func openFeed(backend, path string) (feed.Source, error) {
	switch backend {
	case "gtfszip":
		return gtfszip.Open(path)
	default:
		return sqlitefeed.Open(path)
	}
}
