// Package journey reconstructs rider-facing journeys from a raptor.State
// and filters them down to a Pareto-optimal set on (arrival time,
// transfer count), per spec §4.5.
package journey

import (
	"github.com/antigravity/transit-raptor/internal/model"
	"github.com/antigravity/transit-raptor/internal/raptor"
)

// LegType distinguishes how a leg of a journey was traveled.
type LegType int

const (
	LegAccess LegType = iota
	LegRide
	LegWalk
)

// Leg is one traversal within a journey: either the initial access walk,
// a ride along a route between two stops, or a foot-path transfer.
type Leg struct {
	Type LegType `json:"type"`

	FromStop model.StopIndex `json:"fromStop"`
	ToStop   model.StopIndex `json:"toStop"`

	DepartTime int64 `json:"departTime"`
	ArriveTime int64 `json:"arriveTime"`

	// Valid when Type == LegRide.
	Route model.RouteIndex  `json:"route,omitempty"`
	Trip  model.TripIndex   `json:"trip,omitempty"`
	Stops []model.StopIndex `json:"stops,omitempty"` // full ordered stop sequence of the ride, inclusive
}

// Journey is a complete, rider-facing itinerary from the query's origin
// to one of its egress stops.
type Journey struct {
	ArrivalStop    model.StopIndex `json:"arrivalStop"`
	ArrivalTime    int64           `json:"arrivalTime"`
	TransferCount  int             `json:"transferCount"`
	EgressWalkSecs int64           `json:"egressWalkSeconds"`
	WalkSeconds    int64           `json:"walkSeconds"` // total time spent walking across all legs, including egress
	Legs           []Leg           `json:"legs"`
}

// CandidateRounds returns every round k in [0, state.RoundsRun()] at
// which stop received a genuinely new label, per spec §4.5's "for each
// k where parent[k][s_e] != none": round 0 counts when stop is reached
// directly by access, and a later round k counts only when Tau[k]
// strictly improves on Tau[k-1] — an unchanged round is a
// carried-forward copy of an earlier label, not a new one, and would
// otherwise surface the same journey a second time. Each returned
// round is a distinct (arrival, transfer-count) candidate for Pareto
// filtering; the caller must reconstruct and filter across all of
// them, not just the one achieving TauStar.
func CandidateRounds(state *raptor.State, stop model.StopIndex) []int {
	var rounds []int
	if state.Tau[0][stop] < raptor.Inf {
		rounds = append(rounds, 0)
	}
	for k := 1; k <= state.RoundsRun(); k++ {
		if state.Tau[k][stop] < raptor.Inf && state.Tau[k][stop] < state.Tau[k-1][stop] {
			rounds = append(rounds, k)
		}
	}
	return rounds
}

// Reconstruct walks a raptor.State's parent pointers backward from a
// reached egress stop to build the full Leg sequence for the single
// candidate journey achieving Tau[round][stop]. round should come from
// CandidateRounds, so Parent[round][stop] is guaranteed to describe an
// actual label rather than a carried-forward copy.
//
// Stepping backward across a leg must track which round its source
// label was read at, not just follow the same round index down:
// scanRoute always boards a trip against the *previous* round's label
// at the board stop (it reads Tau[k-1]), while relaxFootpaths always
// walks off the *same* round's post-scan label (it reads Tau[k]).
// Using round k's parent pointer for a ride's board stop — instead of
// round k-1's — can describe a different, later same-round
// improvement the rider never actually boarded against, producing an
// extra or mismatched leg.
func Reconstruct(state *raptor.State, store *model.Store, stop model.StopIndex, round int) Journey {
	arrivalTime := state.Tau[round][stop]

	var legs []Leg
	current := stop
	k := round

	for {
		p := state.Parent[k][current]
		switch p.Kind {
		case raptor.ParentRide:
			route := &store.Routes[p.Route]
			stops := append([]model.StopIndex(nil), route.Stops[p.FromPosition:p.ToPosition+1]...)
			trip := route.Trips[p.Trip]
			legs = append([]Leg{{
				Type:       LegRide,
				FromStop:   route.Stops[p.FromPosition],
				ToStop:     current,
				DepartTime: trip.StopTimes[p.FromPosition].Departure,
				ArriveTime: trip.StopTimes[p.ToPosition].Arrival,
				Route:      p.Route,
				Trip:       p.Trip,
				Stops:      stops,
			}}, legs...)
			current = route.Stops[p.FromPosition]
			k--

		case raptor.ParentWalk:
			legs = append([]Leg{{
				Type:       LegWalk,
				FromStop:   p.FromStop,
				ToStop:     current,
				DepartTime: state.Tau[k][current] - p.WalkSeconds,
				ArriveTime: state.Tau[k][current],
			}}, legs...)
			current = p.FromStop

		case raptor.ParentAccess:
			legs = append([]Leg{{
				Type:       LegAccess,
				FromStop:   current,
				ToStop:     current,
				DepartTime: state.Tau[k][current] - p.AccessWalkSeconds,
				ArriveTime: state.Tau[k][current],
			}}, legs...)
			return finish(stop, arrivalTime, legs)

		case raptor.ParentNone:
			return finish(stop, arrivalTime, legs)
		}
	}
}

func finish(stop model.StopIndex, arrivalTime int64, legs []Leg) Journey {
	var walk int64
	for _, l := range legs {
		if l.Type == LegAccess || l.Type == LegWalk {
			walk += l.ArriveTime - l.DepartTime
		}
	}
	return Journey{
		ArrivalStop:   stop,
		ArrivalTime:   arrivalTime,
		TransferCount: countTransfers(legs),
		WalkSeconds:   walk,
		Legs:          legs,
	}
}

// countTransfers counts the number of rides taken, minus one: a
// journey with a single ride has zero transfers, one with two rides
// (joined by a walk or a same-stop re-board) has one, and so on.
func countTransfers(legs []Leg) int {
	rides := 0
	for _, l := range legs {
		if l.Type == LegRide {
			rides++
		}
	}
	if rides == 0 {
		return 0
	}
	return rides - 1
}
