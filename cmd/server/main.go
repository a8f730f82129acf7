// Command server runs the HTTP adapter over the Query API, loading its
// Timetable Store from whichever feed backend is configured and
// refreshing it on a schedule.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/antigravity/transit-raptor/internal/config"
	"github.com/antigravity/transit-raptor/internal/feed"
	"github.com/antigravity/transit-raptor/internal/feed/gtfszip"
	"github.com/antigravity/transit-raptor/internal/feed/pgfeed"
	"github.com/antigravity/transit-raptor/internal/feed/sqlitefeed"
	"github.com/antigravity/transit-raptor/internal/footpath"
	"github.com/antigravity/transit-raptor/internal/httpapi"
	"github.com/antigravity/transit-raptor/internal/raptor"
	"github.com/antigravity/transit-raptor/internal/snapshot"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (optional; defaults are otherwise used)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("server: loading config: %v", err)
	}

	ctx := context.Background()
	source, closeFn, err := openFeed(ctx, cfg)
	if err != nil {
		log.Fatalf("server: opening feed: %v", err)
	}
	if closeFn != nil {
		defer closeFn()
	}

	footpathCfg := footpath.Config{
		MaxWalkRadiusM: cfg.Walking.MaxWalkRadiusM,
		WalkSpeedMPS:   cfg.Walking.WalkSpeedMPS,
		WalkPenalty:    cfg.Walking.WalkPenalty,
	}

	snap, err := snapshot.Build(ctx, source, footpathCfg, cfg.Query.ResolverCache)
	if err != nil {
		log.Fatalf("server: building initial snapshot: %v", err)
	}
	log.Printf("server: loaded snapshot (%s)", snap.Store.Summary())

	holder := snapshot.NewHolder(snap)

	if cfg.Snapshot.RefreshCron != "" {
		sched, err := snapshot.NewScheduler(holder, source, footpathCfg, cfg.Query.ResolverCache, cfg.Snapshot.RefreshCron)
		if err != nil {
			log.Fatalf("server: scheduling refresh: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	raptorCfg := raptor.Config{
		MaxRounds:               cfg.Raptor.MaxRounds,
		SameStopTransferSeconds: cfg.Raptor.SameStopTransferSeconds,
	}
	queryTimeout := time.Duration(cfg.Query.TimeoutMS) * time.Millisecond

	handler := httpapi.NewServer(holder, raptorCfg, queryTimeout)

	log.Printf("server: listening on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func openFeed(ctx context.Context, cfg *config.Config) (feed.Source, func(), error) {
	switch cfg.Feed.Backend {
	case config.FeedBackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Feed.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		return pgfeed.New(pool), func() { pool.Close() }, nil

	case config.FeedBackendGTFSZip:
		l, err := gtfszip.Open(cfg.Feed.GTFSZip.Path)
		if err != nil {
			return nil, nil, err
		}
		return l, nil, nil

	default:
		l, err := sqlitefeed.Open(cfg.Feed.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { _ = l.Close() }, nil
	}
}
