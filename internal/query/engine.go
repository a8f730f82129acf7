// Package query implements the Query Orchestrator (spec §4.6): it turns
// a free-form origin/destination request into a Pareto-optimal set of
// journeys by resolving access/egress stops, running RAPTOR once, and
// reconstructing + filtering the results.
package query

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/antigravity/transit-raptor/internal/footpath"
	"github.com/antigravity/transit-raptor/internal/journey"
	"github.com/antigravity/transit-raptor/internal/model"
	"github.com/antigravity/transit-raptor/internal/raptor"
)

// Request is a single journey query: free-form origin and destination
// coordinates, a departure time in seconds since the service day
// started, and search bounds.
type Request struct {
	OriginLat, OriginLon float64
	DestLat, DestLon     float64
	DepartureTime        int64
	AccessRadiusM        float64
	MaxResults           int
}

// Engine is the Query Orchestrator, bound to one immutable timetable
// snapshot's store, footpath index and resolver.
type Engine struct {
	Store     *model.Store
	Footpath  *footpath.Index
	Resolver  *footpath.Resolver
	RaptorCfg raptor.Config
	Timeout   time.Duration
}

// Search runs one journey query end to end.
func (e *Engine) Search(ctx context.Context, req Request) ([]journey.Journey, error) {
	if req.AccessRadiusM <= 0 {
		return nil, newError(ErrInvalidInput, "access radius must be positive", nil)
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var accessStops []footpath.NearStop
	var egressStops []footpath.NearStop

	var group errgroup.Group
	group.Go(func() error {
		accessStops = e.Resolver.Near(req.OriginLat, req.OriginLon, req.AccessRadiusM)
		return nil
	})
	group.Go(func() error {
		egressStops = e.Resolver.Near(req.DestLat, req.DestLon, req.AccessRadiusM)
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, newError(ErrInternal, "resolving access/egress stops", err)
	}

	if len(accessStops) == 0 {
		return nil, newError(ErrNoAccess, "no stops within access radius of origin", nil)
	}
	if len(egressStops) == 0 {
		return nil, newError(ErrNoEgress, "no stops within access radius of destination", nil)
	}

	access := make(map[model.StopIndex]int64, len(accessStops))
	for _, s := range accessStops {
		if prev, ok := access[s.Stop]; !ok || s.WalkSeconds < prev {
			access[s.Stop] = s.WalkSeconds
		}
	}

	state := raptor.NewState(e.Store, e.Footpath, e.RaptorCfg)
	if err := state.Run(ctx, access, req.DepartureTime); err != nil {
		return nil, classifyRunError(err)
	}

	egressWalk := make(map[model.StopIndex]int64, len(egressStops))
	for _, s := range egressStops {
		if prev, ok := egressWalk[s.Stop]; !ok || s.WalkSeconds < prev {
			egressWalk[s.Stop] = s.WalkSeconds
		}
	}

	var candidates []journey.Journey
	for stop, walk := range egressWalk {
		if state.TauStar[stop] >= raptor.Inf {
			continue
		}
		for _, round := range journey.CandidateRounds(state, stop) {
			j := journey.Reconstruct(state, e.Store, stop, round)
			j.ArrivalTime += walk
			j.EgressWalkSecs = walk
			j.WalkSeconds += walk
			candidates = append(candidates, j)
		}
	}

	if len(candidates) == 0 {
		return nil, newError(ErrUnreachable, "no journey reaches any egress stop", nil)
	}

	result := journey.Filter(candidates)
	if req.MaxResults > 0 && len(result) > req.MaxResults {
		result = result[:req.MaxResults]
	}
	return result, nil
}

func classifyRunError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return newError(ErrTimeout, "raptor search exceeded its deadline", err)
	case errors.Is(err, context.Canceled):
		return newError(ErrCancelled, "raptor search was cancelled", err)
	default:
		return newError(ErrInternal, "raptor search did not complete", err)
	}
}
