// ABOUTME: Tests for route table definitions
// ABOUTME: Verifies all routes have required fields and no duplicates

package handlers

import (
	"strings"
	"testing"
)

func TestRoutes_AllRoutesHaveRequiredFields(t *testing.T) {
	h := NewHandler(nil, nil)
	routes := h.Routes()

	if len(routes) == 0 {
		t.Fatal("Routes() returned empty slice")
	}

	for i, route := range routes {
		if route.Method == "" {
			t.Errorf("Route %d: Method is empty", i)
		}
		if route.Path == "" {
			t.Errorf("Route %d: Path is empty", i)
		}
		if route.Handler == nil {
			t.Errorf("Route %d: Handler is nil", i)
		}
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			t.Errorf("Route %d: Path %q must start with /api/v1/", i, route.Path)
		}
	}
}

func TestRoutes_NoDuplicatePaths(t *testing.T) {
	h := NewHandler(nil, nil)
	routes := h.Routes()

	seen := make(map[string]bool)
	for _, route := range routes {
		key := route.Pattern()
		if seen[key] {
			t.Errorf("Duplicate route: %s", key)
		}
		seen[key] = true
	}
}

func TestRoutes_ExpectedEndpoints(t *testing.T) {
	h := NewHandler(nil, nil)
	routes := h.Routes()

	expected := map[string]bool{
		"GET /api/v1/health":          false,
		"GET /api/v1/fabric/defaults": false,
		"POST /api/v1/fabric/clos":    false,
		"POST /api/v1/fabric/mesh":    false,
		"POST /api/v1/fabric/compare": false,
		"POST /api/v1/fabric/sweep":   false,
	}

	for _, route := range routes {
		key := route.Pattern()
		if _, ok := expected[key]; ok {
			expected[key] = true
		}
	}

	for key, found := range expected {
		if !found {
			t.Errorf("Missing expected route: %s", key)
		}
	}
}

func TestRoutes_SweepCostsMore(t *testing.T) {
	h := NewHandler(nil, nil)

	for _, route := range h.Routes() {
		if route.Path == "/api/v1/fabric/sweep" && route.Cost <= 1 {
			t.Errorf("Expected sweep to carry a rate limit cost above 1, got %d", route.Cost)
		}
		if route.Cost < 0 {
			t.Errorf("Route %s has negative cost %d", route.Pattern(), route.Cost)
		}
	}
}
