package footpath

import (
	"math"

	"github.com/antigravity/transit-raptor/internal/geo"
	"github.com/antigravity/transit-raptor/internal/model"
)

// cellKey identifies a square bucket of the grid.
type cellKey struct {
	x, y int
}

// grid buckets stops by approximate location so that a radius query
// only has to inspect the handful of cells overlapping the search
// circle instead of every stop in the timetable.
type grid struct {
	stops    []model.Stop
	cellSize float64 // degrees of latitude, approximately
	cells    map[cellKey][]model.StopIndex
}

func newGrid(stops []model.Stop, cellMeters float64) *grid {
	g := &grid{
		stops:    stops,
		cellSize: cellMeters / geo.MetersPerDegreeLat,
		cells:    make(map[cellKey][]model.StopIndex),
	}
	for i, s := range stops {
		k := g.keyFor(s.Lat, s.Lon)
		g.cells[k] = append(g.cells[k], model.StopIndex(i))
	}
	return g
}

func (g *grid) keyFor(lat, lon float64) cellKey {
	return cellKey{
		x: int(math.Floor(lon / g.cellSize)),
		y: int(math.Floor(lat / g.cellSize)),
	}
}

// candidatesNear returns every stop in a cell block wide enough to
// fully cover radiusM around (lat, lon). Callers must still filter by
// exact haversine distance since the block is a square, not a circle.
func (g *grid) candidatesNear(lat, lon, radiusM float64) []model.StopIndex {
	reach := int(math.Ceil(radiusM/geo.MetersPerDegreeLat/g.cellSize)) + 1
	// A degree of longitude spans cos(lat) times the meters of a degree
	// of latitude, so the block needs more cells along x than along y.
	cosLat := math.Max(math.Cos(lat*math.Pi/180), 0.01)
	reachX := int(math.Ceil(radiusM/(geo.MetersPerDegreeLat*cosLat)/g.cellSize)) + 1
	center := g.keyFor(lat, lon)

	var out []model.StopIndex
	for dx := -reachX; dx <= reachX; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			k := cellKey{x: center.x + dx, y: center.y + dy}
			out = append(out, g.cells[k]...)
		}
	}
	return out
}
