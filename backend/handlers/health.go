// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports service status and memoized comparison count

package handlers

import (
	"net/http"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
)

// Health returns API health status including cache occupancy.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:  "ok",
		Version: Version,
	}
	if h.cache != nil {
		resp.CacheEntries = h.cache.Len()
	}

	h.writeJSON(w, http.StatusOK, resp)
}
