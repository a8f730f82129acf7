// Package model holds the dense-index timetable representation that the
// rest of the module operates on: stops, synthetic routes, trips and the
// stop->routes index used to seed a RAPTOR round.
package model

// StopIndex is a dense, zero-based index into Store.Stops. It is the
// primary key used everywhere a stop is referenced internally.
type StopIndex int

// RouteIndex is a dense, zero-based index into Store.Routes.
type RouteIndex int

// TripIndex is a dense, zero-based index into Route.Trips.
type TripIndex int

// Stop is a boarding/alighting location.
type Stop struct {
	ID  string
	Lat float64
	Lon float64
}

// StopTime is a single stop's arrival/departure offset within a trip,
// expressed in seconds since the start of the service day. Departure
// times may exceed 24*3600 for trips that run past midnight.
type StopTime struct {
	Arrival   int64
	Departure int64
}

// Trip is one scheduled run of a Route. StopTimes has the same length as
// the owning Route's Stops slice and is indexed the same way (by
// position, not by stop).
type Trip struct {
	ID        string
	ServiceID string
	StopTimes []StopTime
}

// Route is a synthetic route: a set of trips that all visit the exact
// same ordered tuple of stops. Trips is sorted ascending by departure
// time at position 0, which — because trips on a route never overtake
// one another — also orders every other position consistently.
type Route struct {
	ID        string // synthetic, assigned at construction time
	OriginKey string // upstream line/pattern key this route was grouped from, for logging only
	Stops     []StopIndex
	Trips     []Trip
}

// RouteStopRef names a (route, position) pair: the position a given stop
// occupies within a given route's Stops slice. A stop visited twice by
// the same looping route gets two distinct RouteStopRefs.
type RouteStopRef struct {
	Route    RouteIndex
	Position int
}

// Transfer is a feed-declared foot-path between two stops, already
// resolved to dense indices.
type Transfer struct {
	To          StopIndex
	WalkSeconds int64
}
