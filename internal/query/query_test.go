package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antigravity/transit-raptor/internal/feed"
	"github.com/antigravity/transit-raptor/internal/footpath"
	"github.com/antigravity/transit-raptor/internal/model"
	"github.com/antigravity/transit-raptor/internal/query"
	"github.com/antigravity/transit-raptor/internal/raptor"
)

type fakeSource struct {
	stops []feed.StopRecord
	trips []feed.TripRecord
}

func (f fakeSource) Stops(context.Context) ([]feed.StopRecord, error) { return f.stops, nil }
func (f fakeSource) Trips(context.Context) ([]feed.TripRecord, error) { return f.trips, nil }
func (f fakeSource) Transfers(context.Context) ([]feed.TransferRecord, error) {
	return nil, nil
}

func buildEngine(t *testing.T) *query.Engine {
	t.Helper()
	src := fakeSource{
		stops: []feed.StopRecord{
			{ID: "A", Lat: 0, Lon: 0},
			{ID: "B", Lat: 0, Lon: 0.002},
		},
		trips: []feed.TripRecord{{
			ID: "t1", ServiceID: "weekday",
			StopTimes: []feed.StopTimeRecord{
				{StopID: "A", Arrival: 0, Departure: 0},
				{StopID: "B", Arrival: 300, Departure: 300},
			},
		}},
	}
	store, err := model.Build(context.Background(), src)
	require.NoError(t, err)
	fp := footpath.Build(store.Stops, nil, footpath.DefaultConfig())
	resolver := footpath.NewResolver(fp, 0)

	return &query.Engine{
		Store:     store,
		Footpath:  fp,
		Resolver:  resolver,
		RaptorCfg: raptor.DefaultConfig(),
	}
}

func TestSearchFindsDirectJourney(t *testing.T) {
	e := buildEngine(t)
	results, err := e.Search(context.Background(), query.Request{
		OriginLat: 0, OriginLon: 0,
		DestLat: 0, DestLon: 0.002,
		DepartureTime: 0,
		AccessRadiusM: 200,
		MaxResults:    5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, int64(300), results[0].ArrivalTime)
}

func TestSearchReturnsNoAccessError(t *testing.T) {
	e := buildEngine(t)
	_, err := e.Search(context.Background(), query.Request{
		OriginLat: 50, OriginLon: 50, // far from every stop
		DestLat: 0, DestLon: 0.002,
		AccessRadiusM: 200,
	})
	require.Error(t, err)
	var qerr *query.Error
	require.True(t, errors.As(err, &qerr))
	require.Equal(t, query.ErrNoAccess, qerr.Kind)
}

func TestSearchRejectsInvalidRadius(t *testing.T) {
	e := buildEngine(t)
	_, err := e.Search(context.Background(), query.Request{AccessRadiusM: 0})
	require.Error(t, err)
	var qerr *query.Error
	require.True(t, errors.As(err, &qerr))
	require.Equal(t, query.ErrInvalidInput, qerr.Kind)
}
