package geo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antigravity/transit-raptor/internal/geo"
)

func TestHaversineMetersZeroDistance(t *testing.T) {
	require.InDelta(t, 0.0, geo.HaversineMeters(45, 5, 45, 5), 1e-6)
}

func TestHaversineMetersKnownDistance(t *testing.T) {
	// Roughly one degree of latitude apart, near the equator.
	d := geo.HaversineMeters(0, 0, 1, 0)
	require.InDelta(t, 111195.0, d, 200.0)
}
