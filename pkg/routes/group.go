// Package routes defines the route registration types shared by HTTP modules.
package routes

import "net/http"

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
// Middleware, when set, wraps every handler in the group. Groups can
// contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Description string
	Middleware  func(http.HandlerFunc) http.HandlerFunc
	Routes      []Route
	Children    []Group
}
