// ABOUTME: HTTP handlers for fabric sizing API endpoints
// ABOUTME: Holds calculators, cache, and shared JSON request/response helpers

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/markalston/fabric-capacity-analyzer/backend/cache"
	"github.com/markalston/fabric-capacity-analyzer/backend/config"
	"github.com/markalston/fabric-capacity-analyzer/backend/models"
	"github.com/markalston/fabric-capacity-analyzer/backend/services"
)

// maxRequestBodySize limits request bodies to 1MB
const maxRequestBodySize = 1 << 20

// Version is reported by the health endpoint; overridden at build time with -ldflags.
var Version = "dev"

type Handler struct {
	cfg        *config.Config
	cache      *cache.Cache
	closSizer  *services.ClosSizer
	meshSizer  *services.MeshSizer
	comparator *services.FabricComparator
	sweepCalc  *services.SweepCalculator
}

// NewHandler wires the calculators. cfg and cache may be nil (for testing):
// a nil cfg serves built-in defaults, a nil cache disables memoization.
func NewHandler(cfg *config.Config, cache *cache.Cache) *Handler {
	workers := 0
	if cfg != nil {
		workers = cfg.SweepWorkers
	}

	return &Handler{
		cfg:        cfg,
		cache:      cache,
		closSizer:  services.NewClosSizer(),
		meshSizer:  services.NewMeshSizer(),
		comparator: services.NewFabricComparator(),
		sweepCalc:  services.NewSweepCalculator(workers),
	}
}

// defaults returns the network configuration request bodies are decoded over,
// so omitted fields take the server's configured values.
func (h *Handler) defaults() models.NetworkConfig {
	if h.cfg == nil {
		return models.DefaultNetworkConfig()
	}
	return h.cfg.Defaults
}

// decodeJSON reads a size-limited JSON body into v, writing the error response on failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		h.writeErrorWithDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON encodes v before committing the status so an unencodable value becomes a 500.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(models.ErrorResponse{
			Error: "Failed to encode response",
			Code:  status,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func (h *Handler) writeErrorWithDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}
