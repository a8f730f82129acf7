package model_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antigravity/transit-raptor/internal/feed"
	"github.com/antigravity/transit-raptor/internal/model"
)

type fakeSource struct {
	stops     []feed.StopRecord
	trips     []feed.TripRecord
	transfers []feed.TransferRecord
}

func (f fakeSource) Stops(context.Context) ([]feed.StopRecord, error)         { return f.stops, nil }
func (f fakeSource) Trips(context.Context) ([]feed.TripRecord, error)        { return f.trips, nil }
func (f fakeSource) Transfers(context.Context) ([]feed.TransferRecord, error) { return f.transfers, nil }

func TestBuildRegroupsByExactStopSequence(t *testing.T) {
	src := fakeSource{
		stops: []feed.StopRecord{
			{ID: "A", Lat: 1, Lon: 1},
			{ID: "B", Lat: 2, Lon: 2},
			{ID: "C", Lat: 3, Lon: 3},
		},
		trips: []feed.TripRecord{
			{
				ID: "t1", RouteKey: "line-1", ServiceID: "weekday",
				StopTimes: []feed.StopTimeRecord{
					{StopID: "A", Arrival: 0, Departure: 0},
					{StopID: "B", Arrival: 100, Departure: 100},
					{StopID: "C", Arrival: 200, Departure: 200},
				},
			},
			{
				// Same feed route key, but skips B: must land in a
				// different synthetic route.
				ID: "t2", RouteKey: "line-1", ServiceID: "weekday",
				StopTimes: []feed.StopTimeRecord{
					{StopID: "A", Arrival: 50, Departure: 50},
					{StopID: "C", Arrival: 150, Departure: 150},
				},
			},
			{
				ID: "t3", RouteKey: "line-1", ServiceID: "weekday",
				StopTimes: []feed.StopTimeRecord{
					{StopID: "A", Arrival: 500, Departure: 500},
					{StopID: "B", Arrival: 600, Departure: 600},
					{StopID: "C", Arrival: 700, Departure: 700},
				},
			},
		},
	}

	store, err := model.Build(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, store.Routes, 2, "trips with different stop sequences must form distinct routes")

	for _, r := range store.Routes {
		if len(r.Stops) == 3 {
			require.Len(t, r.Trips, 2)
			require.Equal(t, "t1", r.Trips[0].ID)
			require.Equal(t, "t3", r.Trips[1].ID)
		} else {
			require.Len(t, r.Stops, 2)
			require.Len(t, r.Trips, 1)
			require.Equal(t, "t2", r.Trips[0].ID)
		}
	}

	aIdx, ok := store.StopByID("A")
	require.True(t, ok)
	require.Len(t, store.StopRoutes(aIdx), 2, "stop A participates in both synthetic routes")
}

func TestBuildSkipsTripsReferencingUnknownStops(t *testing.T) {
	src := fakeSource{
		stops: []feed.StopRecord{{ID: "A"}, {ID: "B"}},
		trips: []feed.TripRecord{
			{
				ID: "bad", ServiceID: "weekday",
				StopTimes: []feed.StopTimeRecord{
					{StopID: "A", Departure: 0},
					{StopID: "ghost", Departure: 100},
				},
			},
		},
	}
	store, err := model.Build(context.Background(), src)
	require.NoError(t, err)
	require.Empty(t, store.Routes)
}
