package model

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/antigravity/transit-raptor/internal/feed"
)

// Store is the Timetable Store: a fully-built, read-only dense-index
// view of a feed, ready for RAPTOR to scan. Once built, a Store is
// immutable and safe for concurrent readers.
type Store struct {
	Stops []Stop

	Routes []Route

	// stopRoutes[s] lists every (route, position) pair stop s
	// participates in. A stop visited more than once by the same
	// looping route appears more than once in its own entry.
	stopRoutes [][]RouteStopRef

	stopIndex map[string]StopIndex

	// Declared transfers carried straight from the feed, keyed by
	// from-stop and resolved to dense stop indices. The footpath
	// package merges these with its own geometry-derived foot-paths.
	DeclaredTransfers map[StopIndex][]Transfer
}

// StopByID resolves a feed stop ID to its dense index.
func (s *Store) StopByID(id string) (StopIndex, bool) {
	idx, ok := s.stopIndex[id]
	return idx, ok
}

// StopRoutes returns every (route, position) a stop participates in.
func (s *Store) StopRoutes(stop StopIndex) []RouteStopRef {
	return s.stopRoutes[stop]
}

// Build constructs a Store from a feed Source. It re-groups trips into
// synthetic routes keyed by the exact ordered tuple of stop IDs they
// visit — not by the feed's own route/pattern key — so that two trips
// the upstream feed calls the same route, but which disagree on stop
// sequence, end up as two distinct routes here.
func Build(ctx context.Context, source feed.Source) (*Store, error) {
	stopRecords, err := source.Stops(ctx)
	if err != nil {
		return nil, fmt.Errorf("model: loading stops: %w", err)
	}

	store := &Store{
		Stops:             make([]Stop, 0, len(stopRecords)),
		stopIndex:         make(map[string]StopIndex, len(stopRecords)),
		DeclaredTransfers: make(map[StopIndex][]Transfer),
	}
	for _, rec := range stopRecords {
		idx := StopIndex(len(store.Stops))
		store.Stops = append(store.Stops, Stop{ID: rec.ID, Lat: rec.Lat, Lon: rec.Lon})
		store.stopIndex[rec.ID] = idx
	}

	trips, err := source.Trips(ctx)
	if err != nil {
		return nil, fmt.Errorf("model: loading trips: %w", err)
	}

	type group struct {
		stopSeq   []StopIndex
		originKey string
		trips     []Trip
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, t := range trips {
		if len(t.StopTimes) < 2 {
			continue
		}
		stopSeq := make([]StopIndex, 0, len(t.StopTimes))
		key := strings.Builder{}
		valid := true
		for i, st := range t.StopTimes {
			idx, ok := store.stopIndex[st.StopID]
			if !ok {
				valid = false
				break
			}
			stopSeq = append(stopSeq, idx)
			if i > 0 {
				key.WriteByte('\x1f')
			}
			key.WriteString(st.StopID)
		}
		if !valid {
			continue
		}
		k := key.String()
		g, ok := groups[k]
		if !ok {
			g = &group{stopSeq: stopSeq, originKey: t.RouteKey}
			groups[k] = g
			order = append(order, k)
		}

		stopTimes := make([]StopTime, len(t.StopTimes))
		for i, st := range t.StopTimes {
			stopTimes[i] = StopTime{Arrival: st.Arrival, Departure: st.Departure}
		}
		g.trips = append(g.trips, Trip{ID: t.ID, ServiceID: t.ServiceID, StopTimes: stopTimes})
	}

	store.Routes = make([]Route, 0, len(order))
	for _, k := range order {
		g := groups[k]
		sort.SliceStable(g.trips, func(i, j int) bool {
			return g.trips[i].StopTimes[0].Departure < g.trips[j].StopTimes[0].Departure
		})
		store.Routes = append(store.Routes, Route{
			ID:        uuid.NewString(),
			OriginKey: g.originKey,
			Stops:     g.stopSeq,
			Trips:     g.trips,
		})
	}

	store.stopRoutes = make([][]RouteStopRef, len(store.Stops))
	for ri, route := range store.Routes {
		for p, s := range route.Stops {
			store.stopRoutes[s] = append(store.stopRoutes[s], RouteStopRef{Route: RouteIndex(ri), Position: p})
		}
	}

	transferRecords, err := source.Transfers(ctx)
	if err != nil {
		return nil, fmt.Errorf("model: loading declared transfers: %w", err)
	}
	for _, tr := range transferRecords {
		from, ok := store.stopIndex[tr.FromStopID]
		if !ok {
			continue
		}
		to, ok := store.stopIndex[tr.ToStopID]
		if !ok {
			continue
		}
		store.DeclaredTransfers[from] = append(store.DeclaredTransfers[from], Transfer{To: to, WalkSeconds: tr.WalkSeconds})
	}

	return store, nil
}

// Summary returns a human-readable one-line description of the store's
// size, used in startup logs.
func (s *Store) Summary() string {
	trips := 0
	for _, r := range s.Routes {
		trips += len(r.Trips)
	}
	return fmt.Sprintf("%s stops, %s routes, %s trips",
		humanize.Comma(int64(len(s.Stops))),
		humanize.Comma(int64(len(s.Routes))),
		humanize.Comma(int64(trips)))
}
