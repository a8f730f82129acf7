// Package pgfeed implements a feed.Source backed by a live Postgres
// database, the way the teacher pack's own transit backend loads its
// RAPTOR data.
package pgfeed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antigravity/transit-raptor/internal/feed"
)

// Loader reads stops, trips and declared transfers straight out of
// Postgres tables (stops, trip_stop_times, transfers). Unlike the
// teacher's loader.go, it does not attempt to group trips into routes
// itself — that is the Timetable Store's job, done uniformly across
// every backend from the exact stop sequence each trip reports.
type Loader struct {
	pool *pgxpool.Pool
}

// New wraps an already-connected pool.
func New(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

var _ feed.Source = (*Loader)(nil)

func (l *Loader) Stops(ctx context.Context) ([]feed.StopRecord, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, lat, lon FROM stops`)
	if err != nil {
		return nil, fmt.Errorf("pgfeed: querying stops: %w", err)
	}
	defer rows.Close()

	var out []feed.StopRecord
	for rows.Next() {
		var s feed.StopRecord
		if err := rows.Scan(&s.ID, &s.Lat, &s.Lon); err != nil {
			return nil, fmt.Errorf("pgfeed: scanning stop row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (l *Loader) Trips(ctx context.Context) ([]feed.TripRecord, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT trip_id, route_key, service_id, stop_id, arrival, departure
		FROM trip_stop_times
		ORDER BY trip_id, position`)
	if err != nil {
		return nil, fmt.Errorf("pgfeed: querying trip stop times: %w", err)
	}
	defer rows.Close()

	trips := make(map[string]*feed.TripRecord)
	var order []string
	for rows.Next() {
		var tripID, routeKey, serviceID, stopID string
		var arr, dep int64
		if err := rows.Scan(&tripID, &routeKey, &serviceID, &stopID, &arr, &dep); err != nil {
			return nil, fmt.Errorf("pgfeed: scanning trip stop time row: %w", err)
		}
		t, ok := trips[tripID]
		if !ok {
			t = &feed.TripRecord{ID: tripID, RouteKey: routeKey, ServiceID: serviceID}
			trips[tripID] = t
			order = append(order, tripID)
		}
		t.StopTimes = append(t.StopTimes, feed.StopTimeRecord{StopID: stopID, Arrival: arr, Departure: dep})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]feed.TripRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *trips[id])
	}
	return out, nil
}

func (l *Loader) Transfers(ctx context.Context) ([]feed.TransferRecord, error) {
	rows, err := l.pool.Query(ctx, `SELECT from_stop_id, to_stop_id, walk_seconds FROM transfers`)
	if err != nil {
		return nil, fmt.Errorf("pgfeed: querying transfers: %w", err)
	}
	defer rows.Close()

	var out []feed.TransferRecord
	for rows.Next() {
		var t feed.TransferRecord
		if err := rows.Scan(&t.FromStopID, &t.ToStopID, &t.WalkSeconds); err != nil {
			return nil, fmt.Errorf("pgfeed: scanning transfer row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
