package snapshot

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/antigravity/transit-raptor/internal/feed"
	"github.com/antigravity/transit-raptor/internal/footpath"
)

// Scheduler periodically rebuilds a Snapshot from source and publishes
// it to a Holder, logging failures rather than letting them take down
// the currently-serving Snapshot.
type Scheduler struct {
	holder        *Holder
	source        feed.Source
	footpathCfg   footpath.Config
	resolverCache int
	cron          *cron.Cron
}

// NewScheduler wires a rebuild job on the given cron spec. The parser
// is built with cron.WithSeconds, so spec takes six fields with a
// leading seconds field (e.g. "0 */15 * * * *"); plain 5-field specs
// are rejected.
func NewScheduler(holder *Holder, source feed.Source, footpathCfg footpath.Config, resolverCache int, spec string) (*Scheduler, error) {
	s := &Scheduler{
		holder:        holder,
		source:        source,
		footpathCfg:   footpathCfg,
		resolverCache: resolverCache,
		cron:          cron.New(cron.WithSeconds()),
	}
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the scheduled refresh loop in the background.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the scheduler and waits for any in-flight refresh.
func (s *Scheduler) Stop() { <-s.cron.Stop().Done() }

func (s *Scheduler) refresh() {
	ctx := context.Background()
	next, err := Build(ctx, s.source, s.footpathCfg, s.resolverCache)
	if err != nil {
		log.Printf("snapshot: scheduled refresh failed: %v", err)
		return
	}
	s.holder.Replace(next)
	log.Printf("snapshot: refreshed (%s)", next.Store.Summary())
}
