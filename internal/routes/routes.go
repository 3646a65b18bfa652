// Package routes collects the domain route groups and builds the service mux.
package routes

import (
	"log/slog"
	"net/http"

	pkgroutes "github.com/pdfdock/pdfdock/pkg/routes"
)

type routes struct {
	routes []pkgroutes.Route
	groups []pkgroutes.Group
	logger *slog.Logger
}

// New creates a route system with the specified logger.
func New(logger *slog.Logger) pkgroutes.System {
	return &routes{logger: logger}
}

func (r *routes) Groups() []pkgroutes.Group {
	return r.groups
}

func (r *routes) Routes() []pkgroutes.Route {
	return r.routes
}

// RegisterRoute adds a standalone route to the route system.
func (r *routes) RegisterRoute(route pkgroutes.Route) {
	r.routes = append(r.routes, route)
}

// RegisterGroup adds a route group to the route system.
func (r *routes) RegisterGroup(group pkgroutes.Group) {
	r.groups = append(r.groups, group)
}

// Build flattens the registered groups into fully prefixed routes and
// registers them alongside the standalone routes on a single mux.
func (r *routes) Build() http.Handler {
	flat := make([]pkgroutes.Route, 0, len(r.routes))
	flat = append(flat, r.routes...)
	for _, group := range r.groups {
		flat = flatten(flat, "", group)
	}

	mux := http.NewServeMux()
	for _, route := range flat {
		r.logger.Debug("route registered", "method", route.Method, "pattern", route.Pattern)
		mux.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	r.logger.Info("routes built", "count", len(flat))
	return mux
}

func flatten(flat []pkgroutes.Route, parentPrefix string, group pkgroutes.Group) []pkgroutes.Route {
	prefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		flat = append(flat, pkgroutes.Route{
			Method:  route.Method,
			Pattern: prefix + route.Pattern,
			Handler: route.Handler,
		})
	}
	for _, child := range group.Children {
		flat = flatten(flat, prefix, child)
	}
	return flat
}
