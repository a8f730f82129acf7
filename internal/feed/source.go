// Package feed defines the interface the Timetable Store is populated
// from. It has no knowledge of dense indices or route re-grouping — those
// are the store's job — so a Source is nothing more than three flat scans
// over stop, trip and transfer records.
package feed

import "context"

// StopRecord is one stop as reported by an upstream feed.
type StopRecord struct {
	ID  string
	Lat float64
	Lon float64
}

// StopTimeRecord is one stop visit within a TripRecord, in visit order.
type StopTimeRecord struct {
	StopID    string
	Arrival   int64
	Departure int64
}

// TripRecord is a single scheduled run. RouteKey is the upstream feed's
// own grouping key (e.g. GTFS route_id + direction_id); the Timetable
// Store does not trust it and re-groups trips by their exact ordered stop
// sequence instead, keeping RouteKey around only for logging.
type TripRecord struct {
	ID        string
	RouteKey  string
	ServiceID string
	StopTimes []StopTimeRecord
}

// TransferRecord is an upstream-declared foot-path between two stops,
// distinct from (and additional to) the ones the footpath index derives
// itself from stop coordinates.
type TransferRecord struct {
	FromStopID  string
	ToStopID    string
	WalkSeconds int64
}

// Source is the Feed Loader interface: anything that can enumerate a
// timetable's stops, trips and declared transfers. Implementations live
// under internal/feed/{pgfeed,sqlitefeed,gtfszip} and share no code
// beyond this interface and the record types above.
type Source interface {
	Stops(ctx context.Context) ([]StopRecord, error)
	Trips(ctx context.Context) ([]TripRecord, error)
	Transfers(ctx context.Context) ([]TransferRecord, error)
}
