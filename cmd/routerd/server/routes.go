package server

// routes.go – HTTP route table, grounded on the teacher's
// cmd/xchainserver/server/routes.go (same middleware-then-route-table
// shape) but rebuilt on go-chi/chi/v5 instead of gorilla/mux (spec §9:
// chi is the teacher's own declared-but-unused dependency, promoted here).

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter configures the HTTP routes for the router daemon.
func NewRouter(s *Server) *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	r.Use(JSONHeaders)

	r.Post("/v1/route", s.PostRoute)
	r.Get("/v1/chains", s.ListChains)
	r.Get("/v1/health", s.Health)
	r.Post("/v1/graph/refresh", s.RefreshGraph)

	return r
}
