package snapshot_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antigravity/transit-raptor/internal/feed"
	"github.com/antigravity/transit-raptor/internal/footpath"
	"github.com/antigravity/transit-raptor/internal/snapshot"
)

type fakeSource struct {
	stops     []feed.StopRecord
	trips     []feed.TripRecord
	transfers []feed.TransferRecord
}

func (f fakeSource) Stops(context.Context) ([]feed.StopRecord, error)         { return f.stops, nil }
func (f fakeSource) Trips(context.Context) ([]feed.TripRecord, error)         { return f.trips, nil }
func (f fakeSource) Transfers(context.Context) ([]feed.TransferRecord, error) { return f.transfers, nil }

func sampleSource() fakeSource {
	return fakeSource{
		stops: []feed.StopRecord{
			{ID: "A", Lat: 1, Lon: 1},
			{ID: "B", Lat: 1.001, Lon: 1},
		},
		trips: []feed.TripRecord{
			{
				ID: "t1", RouteKey: "line-1", ServiceID: "weekday",
				StopTimes: []feed.StopTimeRecord{
					{StopID: "A", Arrival: 0, Departure: 0},
					{StopID: "B", Arrival: 100, Departure: 100},
				},
			},
		},
	}
}

func TestBuildProducesQueryableSnapshot(t *testing.T) {
	snap, err := snapshot.Build(context.Background(), sampleSource(), footpath.DefaultConfig(), 16)
	require.NoError(t, err)
	require.NotNil(t, snap.Store)
	require.NotNil(t, snap.Footpath)
	require.NotNil(t, snap.Resolver)
	require.Len(t, snap.Store.Routes, 1)
	require.False(t, snap.BuiltAt.IsZero())
}

func TestHolderReplaceIsVisibleToSubsequentReaders(t *testing.T) {
	first, err := snapshot.Build(context.Background(), sampleSource(), footpath.DefaultConfig(), 16)
	require.NoError(t, err)

	h := snapshot.NewHolder(first)
	require.Same(t, first, h.Current())

	second, err := snapshot.Build(context.Background(), sampleSource(), footpath.DefaultConfig(), 16)
	require.NoError(t, err)
	h.Replace(second)

	require.Same(t, second, h.Current())
}

func TestDiskCacheRoundTripsAScan(t *testing.T) {
	src := sampleSource()
	path := filepath.Join(t.TempDir(), "feed.cache")

	require.NoError(t, snapshot.WriteDiskCache(context.Background(), src, path))
	require.FileExists(t, path)

	loaded, err := snapshot.ReadDiskCache(path)
	require.NoError(t, err)

	stops, err := loaded.Stops(context.Background())
	require.NoError(t, err)
	require.Equal(t, src.stops, stops)

	trips, err := loaded.Trips(context.Background())
	require.NoError(t, err)
	require.Equal(t, src.trips, trips)
}

func TestReadDiskCacheMissingFile(t *testing.T) {
	_, err := snapshot.ReadDiskCache(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(errors.Unwrap(err)))
}
