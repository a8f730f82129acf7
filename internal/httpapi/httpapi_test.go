package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antigravity/transit-raptor/internal/feed"
	"github.com/antigravity/transit-raptor/internal/footpath"
	"github.com/antigravity/transit-raptor/internal/httpapi"
	"github.com/antigravity/transit-raptor/internal/raptor"
	"github.com/antigravity/transit-raptor/internal/snapshot"
)

type fakeSource struct {
	stops []feed.StopRecord
	trips []feed.TripRecord
}

func (f fakeSource) Stops(context.Context) ([]feed.StopRecord, error)         { return f.stops, nil }
func (f fakeSource) Trips(context.Context) ([]feed.TripRecord, error)         { return f.trips, nil }
func (f fakeSource) Transfers(context.Context) ([]feed.TransferRecord, error) { return nil, nil }

func buildHolder(t *testing.T) *snapshot.Holder {
	t.Helper()
	src := fakeSource{
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
	snap, err := snapshot.Build(context.Background(), src, footpath.DefaultConfig(), 16)
	require.NoError(t, err)
	return snapshot.NewHolder(snap)
}

func TestHealthzReportsLoadedSnapshot(t *testing.T) {
	srv := httpapi.NewServer(buildHolder(t), raptor.DefaultConfig(), 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestJourneysEndToEndReturnsDirectRide(t *testing.T) {
	srv := httpapi.NewServer(buildHolder(t), raptor.DefaultConfig(), 0)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/journeys?origin_lat=1&origin_lon=1&dest_lat=1.001&dest_lon=1&departure_time=0&access_radius_m=50", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var journeys []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &journeys))
	require.Len(t, journeys, 1)
	require.InDelta(t, 100.0, journeys[0]["arrivalTime"], 1)
}

func TestJourneysRejectsMissingCoordinates(t *testing.T) {
	srv := httpapi.NewServer(buildHolder(t), raptor.DefaultConfig(), 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/journeys?origin_lat=1&origin_lon=1", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
