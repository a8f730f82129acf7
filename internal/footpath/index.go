// Package footpath builds the foot-path graph between stops (spec §4.2)
// and the access/egress resolver used to seed and finish a query
// (spec §4.3). Distances come from a grid-bucketed spatial index over
// stop coordinates so that building or querying the graph never costs
// an all-pairs scan.
package footpath

import (
	"github.com/antigravity/transit-raptor/internal/geo"
	"github.com/antigravity/transit-raptor/internal/model"
)

// Neighbour is one entry of a stop's foot-path adjacency list.
type Neighbour struct {
	Stop        model.StopIndex
	WalkSeconds int64
}

// Index is the foot-path graph: for every stop, the other stops
// reachable on foot within Config.MaxWalkRadiusM, plus any transfer the
// feed declared explicitly regardless of distance.
type Index struct {
	cfg        Config
	neighbours [][]Neighbour
	grid       *grid
	stops      []model.Stop
}

// Neighbours returns stop s's foot-path adjacency list.
func (idx *Index) Neighbours(s model.StopIndex) []Neighbour {
	return idx.neighbours[s]
}

// Build derives the foot-path graph from stop coordinates and merges in
// any transfers the feed declared directly (these bypass the distance
// cutoff — a feed may know about a legitimate but physically long
// in-station transfer a pure distance model would reject).
func Build(stops []model.Stop, declared map[model.StopIndex][]model.Transfer, cfg Config) *Index {
	g := newGrid(stops, cfg.MaxWalkRadiusM)
	idx := &Index{
		cfg:        cfg,
		neighbours: make([][]Neighbour, len(stops)),
		grid:       g,
		stops:      stops,
	}

	maxSeconds := cfg.MaxWalkSeconds()
	for i, s := range stops {
		best := make(map[model.StopIndex]int64)
		for _, j := range g.candidatesNear(s.Lat, s.Lon, cfg.MaxWalkRadiusM) {
			if int(j) == i {
				continue
			}
			other := stops[j]
			dist := geo.HaversineMeters(s.Lat, s.Lon, other.Lat, other.Lon)
			if dist > cfg.MaxWalkRadiusM {
				continue
			}
			walk := cfg.WalkSeconds(dist)
			if walk > maxSeconds {
				continue
			}
			if prev, ok := best[j]; !ok || walk < prev {
				best[j] = walk
			}
		}
		for _, rec := range declared[model.StopIndex(i)] {
			if prev, ok := best[rec.To]; !ok || rec.WalkSeconds < prev {
				best[rec.To] = rec.WalkSeconds
			}
		}

		for stop, secs := range best {
			idx.neighbours[i] = append(idx.neighbours[i], Neighbour{Stop: stop, WalkSeconds: secs})
		}
	}

	return idx
}
