// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods, handlers, and rate limit cost

package handlers

import "net/http"

// sweepCost is the rate limit weight of a sweep, which runs many comparisons.
const sweepCost = 10

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
	Cost    int              // Rate limit units per request (0 counts as 1)
}

// Pattern returns the Go 1.22 ServeMux pattern for the route.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Fabric sizing
		{Method: http.MethodGet, Path: "/api/v1/fabric/defaults", Handler: h.Defaults},
		{Method: http.MethodPost, Path: "/api/v1/fabric/clos", Handler: h.SizeClos},
		{Method: http.MethodPost, Path: "/api/v1/fabric/mesh", Handler: h.SizeMesh},
		{Method: http.MethodPost, Path: "/api/v1/fabric/compare", Handler: h.CompareFabrics},
		{Method: http.MethodPost, Path: "/api/v1/fabric/sweep", Handler: h.Sweep, Cost: sweepCost},
	}
}
