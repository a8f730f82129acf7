package model

import "sort"

// EarliestTripAtOrAfter returns the index of the earliest trip on this
// route whose departure at the given position is >= threshold. Trips
// are sorted ascending by departure at position 0; because a route's
// trips never overtake one another, that ordering holds at every
// position, so a binary search on any single position is valid.
func (r *Route) EarliestTripAtOrAfter(position int, threshold int64) (TripIndex, bool) {
	n := len(r.Trips)
	i := sort.Search(n, func(i int) bool {
		return r.Trips[i].StopTimes[position].Departure >= threshold
	})
	if i == n {
		return 0, false
	}
	return TripIndex(i), true
}
