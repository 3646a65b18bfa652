package main

import (
	"net/http"

	"github.com/pdfdock/pdfdock/pkg/routes"
)

// registerRoutes configures all HTTP routes for the service.
func registerRoutes(r routes.System, s *Service) {
	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	r.RegisterGroup(s.documents.Handler().Routes())
	r.RegisterGroup(s.annotations.Handler().Routes())
	r.RegisterGroup(s.assistHandler.Routes())
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
