package footpath

import (
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/antigravity/transit-raptor/internal/geo"
	"github.com/antigravity/transit-raptor/internal/model"
)

// NearStop is one candidate access or egress stop: how far (in walk
// seconds) it is from a free-form lat/lon query point.
type NearStop struct {
	Stop        model.StopIndex
	WalkSeconds int64
}

// Resolver answers "which stops are within walking distance of this
// point" for arbitrary query coordinates (not necessarily a stop),
// which is exactly the Access/Egress Resolver component: it turns a
// journey's free-form origin/destination into the set of source/target
// stops RAPTOR seeds from.
type Resolver struct {
	stops []model.Stop
	grid  *grid
	cfg   Config
	cache *lru.Cache[string, []NearStop]
}

// NewResolver builds a Resolver over the index's grid. cacheSize <= 0
// disables memoization.
func NewResolver(idx *Index, cacheSize int) *Resolver {
	r := &Resolver{stops: idx.stops, grid: idx.grid, cfg: idx.cfg}
	if cacheSize > 0 {
		c, err := lru.New[string, []NearStop](cacheSize)
		if err == nil {
			r.cache = c
		}
	}
	return r
}

// Near returns every stop within radiusM of (lat, lon), ordered
// arbitrarily, each annotated with an estimated walk duration.
func (r *Resolver) Near(lat, lon, radiusM float64) []NearStop {
	key := cacheKey(lat, lon, radiusM)
	if r.cache != nil {
		if hit, ok := r.cache.Get(key); ok {
			return hit
		}
	}

	var out []NearStop
	for _, idx := range r.grid.candidatesNear(lat, lon, radiusM) {
		s := r.stops[idx]
		dist := geo.HaversineMeters(lat, lon, s.Lat, s.Lon)
		if dist > radiusM {
			continue
		}
		out = append(out, NearStop{Stop: idx, WalkSeconds: r.cfg.WalkSeconds(dist)})
	}

	if r.cache != nil {
		r.cache.Add(key, out)
	}
	return out
}

// cacheKey rounds coordinates to roughly 1-meter precision so that
// near-identical repeat queries (e.g. the same client polling) hit the
// cache instead of missing on floating-point noise.
func cacheKey(lat, lon, radiusM float64) string {
	const precision = 1e5
	round := func(v float64) float64 { return math.Round(v*precision) / precision }
	return fmt.Sprintf("%.5f,%.5f,%.0f", round(lat), round(lon), radiusM)
}
