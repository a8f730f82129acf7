// Package httpapi is a thin HTTP adapter over the Query API. It is
// explicitly outside the module's core scope (spec §1) — it exists
// only to give the Query Orchestrator a caller, the way the teacher's
// own main.go wires chi + cors around its handlers.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/antigravity/transit-raptor/internal/raptor"
	"github.com/antigravity/transit-raptor/internal/snapshot"
)

// NewServer builds the chi router exposing the journeys endpoint over
// holder's current Snapshot.
func NewServer(holder *snapshot.Holder, raptorCfg raptor.Config, queryTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
	}).Handler)

	h := &Handler{Holder: holder, RaptorCfg: raptorCfg, QueryTimeout: queryTimeout}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/journeys", h.Journeys)
		r.Get("/healthz", h.Healthz)
	})

	return r
}
