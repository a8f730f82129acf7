package journey

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a cheap 64-bit identity for a journey's leg
// sequence, used to de-duplicate candidates produced from different
// egress stops that happen to retrace the same rides.
func Fingerprint(j Journey) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, l := range j.Legs {
		binary.LittleEndian.PutUint64(buf[:], uint64(l.Type))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(l.FromStop))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(l.ToStop))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(l.Route))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(l.Trip))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// departTime returns the journey's first leg departure time, or 0 for
// a (degenerate) journey with no legs.
func departTime(j Journey) int64 {
	if len(j.Legs) == 0 {
		return 0
	}
	return j.Legs[0].DepartTime
}

// dominates reports whether a is at least as good as b on both
// criteria, and strictly better on at least one — the standard Pareto
// domination test on (arrival time, transfer count).
func dominates(a, b Journey) bool {
	if a.ArrivalTime > b.ArrivalTime || a.TransferCount > b.TransferCount {
		return false
	}
	return a.ArrivalTime < b.ArrivalTime || a.TransferCount < b.TransferCount
}

// Filter reduces a set of candidate journeys to the Pareto-optimal
// subset on (arrival_time, transfer_count), de-duplicating identical
// leg sequences reached via different egress stops. Only strictly
// dominated journeys are removed: two journeys with the same criteria
// pair but different legs (e.g. different egress walk distances) are
// both kept, since neither dominates the other.
func Filter(candidates []Journey) []Journey {
	seen := make(map[uint64]bool, len(candidates))
	deduped := make([]Journey, 0, len(candidates))
	for _, c := range candidates {
		fp := Fingerprint(c)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		deduped = append(deduped, c)
	}

	var result []Journey
	for i, candidate := range deduped {
		dominated := false
		for j, other := range deduped {
			if i == j {
				continue
			}
			if dominates(other, candidate) {
				dominated = true
				break
			}
		}
		if !dominated {
			result = append(result, candidate)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.ArrivalTime != b.ArrivalTime {
			return a.ArrivalTime < b.ArrivalTime
		}
		if a.WalkSeconds != b.WalkSeconds {
			return a.WalkSeconds < b.WalkSeconds
		}
		return departTime(a) < departTime(b)
	})

	return result
}
