package raptor

import "math"

// Inf is the sentinel "unreached" arrival time. It is not MaxInt64
// itself so that adding a walk duration to it cannot overflow.
const Inf int64 = math.MaxInt64 / 2

// Config holds the round-based search bounds (spec §4.4).
type Config struct {
	// MaxRounds bounds the number of transfers a journey may use
	// (round k holds journeys using at most k trips).
	MaxRounds int

	// SameStopTransferSeconds is added to a stop's previous-round
	// arrival time before it is compared against a trip's departure
	// at that same stop, modeling the minimum dwell time a rider
	// needs to board a different ride there.
	SameStopTransferSeconds int64
}

// DefaultConfig matches the spec's suggested defaults.
func DefaultConfig() Config {
	return Config{MaxRounds: 7, SameStopTransferSeconds: 0}
}
