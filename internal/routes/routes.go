// Package routes provides HTTP route registration and handler building.
package routes

import (
	"log/slog"
	"net/http"

	pkgroutes "studykit/pkg/routes"
)

type routes struct {
	routes []pkgroutes.Route
	groups []pkgroutes.Group
	logger *slog.Logger
}

// New creates a route system with the specified logger.
func New(logger *slog.Logger) pkgroutes.System {
	return &routes{
		logger: logger,
		groups: []pkgroutes.Group{},
		routes: []pkgroutes.Route{},
	}
}

func (r *routes) Groups() []pkgroutes.Group {
	return r.groups
}

func (r *routes) Routes() []pkgroutes.Route {
	return r.routes
}

// RegisterRoute adds a route to the route system.
func (r *routes) RegisterRoute(route pkgroutes.Route) {
	r.routes = append(r.routes, route)
}

// RegisterGroup adds a route group to the route system.
func (r *routes) RegisterGroup(group pkgroutes.Group) {
	r.groups = append(r.groups, group)
}

// Build constructs an http.Handler from all registered routes and groups.
func (r *routes) Build() http.Handler {
	mux := http.NewServeMux()

	for _, route := range r.routes {
		mux.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
		r.logger.Debug("route registered", "method", route.Method, "pattern", route.Pattern)
	}

	for _, group := range r.groups {
		r.registerGroup(mux, "", nil, group)
	}

	return mux
}

func (r *routes) registerGroup(mux *http.ServeMux, parentPrefix string, parentMW func(http.HandlerFunc) http.HandlerFunc, group pkgroutes.Group) {
	fullPrefix := parentPrefix + group.Prefix

	mw := parentMW
	if group.Middleware != nil {
		inner := group.Middleware
		if mw == nil {
			mw = inner
		} else {
			outer := mw
			mw = func(h http.HandlerFunc) http.HandlerFunc {
				return outer(inner(h))
			}
		}
	}

	for _, route := range group.Routes {
		pattern := fullPrefix + route.Pattern
		handler := route.Handler
		if mw != nil {
			handler = mw(handler)
		}
		mux.HandleFunc(route.Method+" "+pattern, handler)
		r.logger.Debug("route registered", "method", route.Method, "pattern", pattern)
	}

	for _, child := range group.Children {
		r.registerGroup(mux, fullPrefix, mw, child)
	}
}
