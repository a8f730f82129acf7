// Package sqlitefeed implements a feed.Source backed by an embedded
// SQLite database, for offline or single-binary deployments that don't
// want a Postgres dependency.
package sqlitefeed

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/antigravity/transit-raptor/internal/feed"
)

// Loader reads the same three-table shape as pgfeed.Loader (stops,
// trip_stop_times, transfers), but queries via squirrel-built SQL
// against database/sql + go-sqlite3 instead of pgx.
type Loader struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite file at path.
func Open(path string) (*Loader, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitefeed: opening %s: %w", path, err)
	}
	return &Loader{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Loader) Close() error { return l.db.Close() }

var _ feed.Source = (*Loader)(nil)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func (l *Loader) Stops(ctx context.Context) ([]feed.StopRecord, error) {
	query, args, err := builder.Select("id", "lat", "lon").From("stops").ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlitefeed: building stops query: %w", err)
	}
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlitefeed: querying stops: %w", err)
	}
	defer rows.Close()

	var out []feed.StopRecord
	for rows.Next() {
		var s feed.StopRecord
		if err := rows.Scan(&s.ID, &s.Lat, &s.Lon); err != nil {
			return nil, fmt.Errorf("sqlitefeed: scanning stop row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (l *Loader) Trips(ctx context.Context) ([]feed.TripRecord, error) {
	query, args, err := builder.
		Select("trip_id", "route_key", "service_id", "stop_id", "arrival", "departure").
		From("trip_stop_times").
		OrderBy("trip_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlitefeed: building trips query: %w", err)
	}
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlitefeed: querying trip stop times: %w", err)
	}
	defer rows.Close()

	trips := make(map[string]*feed.TripRecord)
	var order []string
	for rows.Next() {
		var tripID, routeKey, serviceID, stopID string
		var arr, dep int64
		if err := rows.Scan(&tripID, &routeKey, &serviceID, &stopID, &arr, &dep); err != nil {
			return nil, fmt.Errorf("sqlitefeed: scanning trip stop time row: %w", err)
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
	query, args, err := builder.Select("from_stop_id", "to_stop_id", "walk_seconds").From("transfers").ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlitefeed: building transfers query: %w", err)
	}
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlitefeed: querying transfers: %w", err)
	}
	defer rows.Close()

	var out []feed.TransferRecord
	for rows.Next() {
		var t feed.TransferRecord
		if err := rows.Scan(&t.FromStopID, &t.ToStopID, &t.WalkSeconds); err != nil {
			return nil, fmt.Errorf("sqlitefeed: scanning transfer row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
