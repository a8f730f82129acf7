package footpath_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antigravity/transit-raptor/internal/footpath"
	"github.com/antigravity/transit-raptor/internal/model"
)

func sampleStops() []model.Stop {
	return []model.Stop{
		{ID: "A", Lat: 0.0, Lon: 0.0},
		{ID: "B", Lat: 0.002, Lon: 0.0}, // ~222m north of A
		{ID: "C", Lat: 1.0, Lon: 1.0},   // far away
	}
}

func TestBuildConnectsStopsWithinRadius(t *testing.T) {
	cfg := footpath.DefaultConfig()
	idx := footpath.Build(sampleStops(), nil, cfg)

	nbrs := idx.Neighbours(0)
	require.Len(t, nbrs, 1)
	require.Equal(t, model.StopIndex(1), nbrs[0].Stop)
	require.Greater(t, nbrs[0].WalkSeconds, int64(0))
}

func TestBuildMergesDeclaredTransfersBeyondRadius(t *testing.T) {
	cfg := footpath.DefaultConfig()
	declared := map[model.StopIndex][]model.Transfer{
		0: {{To: 2, WalkSeconds: 45}},
	}
	idx := footpath.Build(sampleStops(), declared, cfg)

	nbrs := idx.Neighbours(0)
	found := false
	for _, n := range nbrs {
		if n.Stop == 2 {
			found = true
			require.Equal(t, int64(45), n.WalkSeconds)
		}
	}
	require.True(t, found, "declared transfer must bypass the distance cutoff")
}

func TestResolverNearFindsStopsAroundArbitraryPoint(t *testing.T) {
	cfg := footpath.DefaultConfig()
	idx := footpath.Build(sampleStops(), nil, cfg)
	resolver := footpath.NewResolver(idx, 16)

	near := resolver.Near(0.0, 0.0, 500)
	require.Len(t, near, 2) // A and B, not C

	near2 := resolver.Near(0.0, 0.0, 500)
	require.Equal(t, near, near2, "cached lookup must return the same result")
}
