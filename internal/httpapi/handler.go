package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/antigravity/transit-raptor/internal/query"
	"github.com/antigravity/transit-raptor/internal/raptor"
	"github.com/antigravity/transit-raptor/internal/snapshot"
)

// Handler exposes the Query Orchestrator over HTTP.
type Handler struct {
	Holder       *snapshot.Holder
	RaptorCfg    raptor.Config
	QueryTimeout time.Duration
}

// Healthz reports whether a Snapshot is currently loaded.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	snap := h.Holder.Current()
	if snap == nil {
		http.Error(w, "no snapshot loaded", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(snap.Store.Summary()))
}

// Journeys parses ?origin_lat, ?origin_lon, ?dest_lat, ?dest_lon,
// ?departure_time and runs one query against the current Snapshot.
func (h *Handler) Journeys(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap := h.Holder.Current()
	if snap == nil {
		http.Error(w, "no snapshot loaded", http.StatusServiceUnavailable)
		return
	}

	engine := &query.Engine{
		Store:     snap.Store,
		Footpath:  snap.Footpath,
		Resolver:  snap.Resolver,
		RaptorCfg: h.RaptorCfg,
		Timeout:   h.QueryTimeout,
	}

	results, err := engine.Search(r.Context(), req)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(results)
}

func parseRequest(r *http.Request) (query.Request, error) {
	q := r.URL.Query()

	originLat, err := strconv.ParseFloat(q.Get("origin_lat"), 64)
	if err != nil {
		return query.Request{}, errors.New("invalid or missing origin_lat")
	}
	originLon, err := strconv.ParseFloat(q.Get("origin_lon"), 64)
	if err != nil {
		return query.Request{}, errors.New("invalid or missing origin_lon")
	}
	destLat, err := strconv.ParseFloat(q.Get("dest_lat"), 64)
	if err != nil {
		return query.Request{}, errors.New("invalid or missing dest_lat")
	}
	destLon, err := strconv.ParseFloat(q.Get("dest_lon"), 64)
	if err != nil {
		return query.Request{}, errors.New("invalid or missing dest_lon")
	}

	departureTime := int64(0)
	if v := q.Get("departure_time"); v != "" {
		departureTime, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return query.Request{}, errors.New("invalid departure_time")
		}
	}

	accessRadius := 1000.0
	if v := q.Get("access_radius_m"); v != "" {
		accessRadius, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return query.Request{}, errors.New("invalid access_radius_m")
		}
	}

	maxResults := 5
	if v := q.Get("max_results"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			maxResults = n
		}
	}

	return query.Request{
		OriginLat:     originLat,
		OriginLon:     originLon,
		DestLat:       destLat,
		DestLon:       destLon,
		DepartureTime: departureTime,
		AccessRadiusM: accessRadius,
		MaxResults:    maxResults,
	}, nil
}

func writeQueryError(w http.ResponseWriter, err error) {
	var qerr *query.Error
	if !errors.As(err, &qerr) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch qerr.Kind {
	case query.ErrInvalidInput:
		status = http.StatusBadRequest
	case query.ErrNoAccess, query.ErrNoEgress, query.ErrUnreachable:
		status = http.StatusNotFound
	case query.ErrTimeout:
		status = http.StatusGatewayTimeout
	case query.ErrCancelled:
		status = http.StatusRequestTimeout
	}
	http.Error(w, qerr.Error(), status)
}
