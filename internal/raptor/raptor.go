// Package raptor implements the RAPTOR core: the round-based multi-
// criteria search over (arrival time, transfer count) described in
// spec §4.4. It knows nothing about journeys, Pareto filtering, or
// query orchestration — only how to fill in per-round labels from a
// set of access stops.
package raptor

import (
	"context"
	"fmt"

	"github.com/antigravity/transit-raptor/internal/footpath"
	"github.com/antigravity/transit-raptor/internal/model"
)

// ParentKind distinguishes how a label's stop was reached.
type ParentKind int

const (
	// ParentNone marks a label with no predecessor: the stop is
	// unreached in that round.
	ParentNone ParentKind = iota
	// ParentAccess marks a round-0 label reached directly from the
	// query's origin by walking.
	ParentAccess
	// ParentRide marks a label reached by riding a trip from another
	// stop on the same route.
	ParentRide
	// ParentWalk marks a label reached by a foot-path transfer from
	// another stop reached earlier in the same round.
	ParentWalk
)

// Parent records how a (round, stop) label was produced, enough to
// reconstruct one leg of a journey without re-deriving it.
type Parent struct {
	Kind ParentKind

	// Valid when Kind == ParentAccess.
	AccessWalkSeconds int64

	// Valid when Kind == ParentRide.
	Route        model.RouteIndex
	Trip         model.TripIndex
	FromPosition int
	ToPosition   int

	// Valid when Kind == ParentWalk.
	FromStop    model.StopIndex
	WalkSeconds int64
}

// State is the result of one RAPTOR search: per-round, per-stop best
// arrival times and the parent pointers needed to trace journeys back
// from any reached stop.
type State struct {
	Store    *model.Store
	Footpath *footpath.Index
	Cfg      Config

	// Tau[k][s] is the earliest known arrival at stop s using at
	// most k trips. TauStar[s] = min_k Tau[k][s].
	Tau     [][]int64
	Parent  [][]Parent
	TauStar []int64

	roundsRun int
}

// RoundsRun reports how many rounds actually executed before the
// search converged (no stop marked) or MaxRounds was reached.
func (s *State) RoundsRun() int { return s.roundsRun }

// NewState allocates a fresh, unreached State sized for the given
// store.
func NewState(store *model.Store, fp *footpath.Index, cfg Config) *State {
	n := len(store.Stops)
	s := &State{
		Store:    store,
		Footpath: fp,
		Cfg:      cfg,
		Tau:      make([][]int64, cfg.MaxRounds+1),
		Parent:   make([][]Parent, cfg.MaxRounds+1),
		TauStar:  make([]int64, n),
	}
	for k := 0; k <= cfg.MaxRounds; k++ {
		s.Tau[k] = make([]int64, n)
		for i := range s.Tau[k] {
			s.Tau[k][i] = Inf
		}
		s.Parent[k] = make([]Parent, n)
	}
	for i := range s.TauStar {
		s.TauStar[i] = Inf
	}
	return s
}

// routeBatchCheckSize is how many routes are scanned within a round
// before the search re-checks ctx for cancellation.
const routeBatchCheckSize = 64

// Run executes the RAPTOR round loop. access maps each source stop to
// the walk duration (in seconds) from the query's true origin;
// departureTime is the seconds-since-service-day-start the rider is
// ready to leave.
func (s *State) Run(ctx context.Context, access map[model.StopIndex]int64, departureTime int64) error {
	marked := make(map[model.StopIndex]bool, len(access))
	for stop, walk := range access {
		arr := departureTime + walk
		if arr < s.TauStar[stop] {
			s.Tau[0][stop] = arr
			s.TauStar[stop] = arr
			s.Parent[0][stop] = Parent{Kind: ParentAccess, AccessWalkSeconds: walk}
			marked[stop] = true
		}
	}

	for k := 1; k <= s.Cfg.MaxRounds; k++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("raptor: round %d: %w", k, err)
		}
		s.roundsRun = k

		copy(s.Tau[k], s.Tau[k-1])
		copy(s.Parent[k], s.Parent[k-1])

		queue := s.collectRoutes(marked)
		marked = make(map[model.StopIndex]bool)

		routesProcessed := 0
		for route, startPos := range queue {
			if routesProcessed > 0 && routesProcessed%routeBatchCheckSize == 0 {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("raptor: round %d, route batch: %w", k, err)
				}
			}
			routesProcessed++
			s.scanRoute(k, route, startPos, marked)
		}

		rideMarked := make([]model.StopIndex, 0, len(marked))
		for stop := range marked {
			rideMarked = append(rideMarked, stop)
		}
		s.relaxFootpaths(k, rideMarked, marked)

		if len(marked) == 0 {
			break
		}
	}

	return nil
}

// collectRoutes builds the set of routes touched by marked stops, each
// mapped to the earliest position among those stops — the point the
// route scan needs to start from.
func (s *State) collectRoutes(marked map[model.StopIndex]bool) map[model.RouteIndex]int {
	queue := make(map[model.RouteIndex]int)
	for stop := range marked {
		for _, ref := range s.Store.StopRoutes(stop) {
			if existing, ok := queue[ref.Route]; !ok || ref.Position < existing {
				queue[ref.Route] = ref.Position
			}
		}
	}
	return queue
}

// scanRoute walks a single route forward from startPos, boarding the
// earliest catchable trip at each stop and improving arrivals for
// whatever trip is currently held.
func (s *State) scanRoute(k int, routeIdx model.RouteIndex, startPos int, marked map[model.StopIndex]bool) {
	route := &s.Store.Routes[routeIdx]

	const noTrip = -1
	currentTrip := noTrip
	var boardPosition int

	for p := startPos; p < len(route.Stops); p++ {
		stop := route.Stops[p]

		if currentTrip != noTrip {
			arr := route.Trips[currentTrip].StopTimes[p].Arrival
			if arr < s.TauStar[stop] {
				s.Tau[k][stop] = arr
				s.TauStar[stop] = arr
				s.Parent[k][stop] = Parent{
					Kind:         ParentRide,
					Route:        routeIdx,
					Trip:         model.TripIndex(currentTrip),
					FromPosition: boardPosition,
					ToPosition:   p,
				}
				marked[stop] = true
			}
		}

		prevArrival := s.Tau[k-1][stop]
		if prevArrival >= Inf {
			continue
		}
		threshold := prevArrival + s.Cfg.SameStopTransferSeconds

		canSearch := currentTrip == noTrip || threshold <= route.Trips[currentTrip].StopTimes[p].Departure
		if !canSearch {
			continue
		}
		if idx, ok := route.EarliestTripAtOrAfter(p, threshold); ok {
			if currentTrip == noTrip || int(idx) < currentTrip {
				currentTrip = int(idx)
				boardPosition = p
			}
		}
	}
}

// relaxFootpaths walks the foot-path graph once from every stop marked
// by this round's route scan, possibly marking further stops.
func (s *State) relaxFootpaths(k int, from []model.StopIndex, marked map[model.StopIndex]bool) {
	for _, stop := range from {
		arrival := s.Tau[k][stop]
		for _, nbr := range s.Footpath.Neighbours(stop) {
			walkArrival := arrival + nbr.WalkSeconds
			if walkArrival < s.TauStar[nbr.Stop] {
				s.Tau[k][nbr.Stop] = walkArrival
				s.TauStar[nbr.Stop] = walkArrival
				s.Parent[k][nbr.Stop] = Parent{
					Kind:        ParentWalk,
					FromStop:    stop,
					WalkSeconds: nbr.WalkSeconds,
				}
				marked[nbr.Stop] = true
			}
		}
	}
}
