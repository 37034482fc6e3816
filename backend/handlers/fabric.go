// ABOUTME: HTTP handlers for Clos, mesh, comparison and sweep endpoints
// ABOUTME: Decodes request bodies over configured defaults and returns sizing results

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
	"github.com/markalston/fabric-capacity-analyzer/backend/services"
)

// Defaults returns the network configuration used when request fields are omitted.
func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.defaults())
}

// SizeClos sizes a folded-Clos fabric.
// Infeasible designs are a 200 response with possible=false.
func (h *Handler) SizeClos(w http.ResponseWriter, r *http.Request) {
	cfg := h.defaults()
	if !h.decodeJSON(w, r, &cfg) {
		return
	}

	h.writeJSON(w, http.StatusOK, h.closSizer.Size(cfg))
}

// SizeMesh sizes a full-mesh fabric against target_capacity, or num_users when omitted.
func (h *Handler) SizeMesh(w http.ResponseWriter, r *http.Request) {
	req := models.MeshRequest{NetworkConfig: h.defaults()}
	if !h.decodeJSON(w, r, &req) {
		return
	}

	var result models.TopologyMetrics
	if req.TargetCapacity != nil {
		result = h.meshSizer.Size(req.NetworkConfig, *req.TargetCapacity)
	} else {
		result = h.meshSizer.Size(req.NetworkConfig)
	}

	h.writeJSON(w, http.StatusOK, result)
}

// CompareFabrics sizes both designs at equal capacity.
// Results are memoized per configuration; concurrent identical requests share one computation.
func (h *Handler) CompareFabrics(w http.ResponseWriter, r *http.Request) {
	cfg := h.defaults()
	if !h.decodeJSON(w, r, &cfg) {
		return
	}

	if h.cache == nil {
		w.Header().Set("X-Cache", "BYPASS")
		h.writeJSON(w, http.StatusOK, h.comparator.Compare(cfg))
		return
	}

	val, cached, err := h.cache.GetOrLoad("compare:"+cfg.CacheKey(), func() (any, error) {
		return h.comparator.Compare(cfg), nil
	})
	if err != nil {
		slog.Error("Comparison failed", "error", err)
		h.writeError(w, "Comparison failed", http.StatusInternalServerError)
		return
	}

	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	h.writeJSON(w, http.StatusOK, val)
}

// Sweep compares both designs across a user-count range.
func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	req := models.SweepRequest{Config: h.defaults()}
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := services.ValidateSweep(req); err != nil {
		h.writeErrorWithDetails(w, "Invalid sweep range", err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.sweepCalc.Sweep(r.Context(), req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			slog.Warn("Sweep cancelled", "error", err)
			h.writeError(w, "Sweep cancelled", http.StatusServiceUnavailable)
			return
		}
		slog.Error("Sweep failed", "error", err)
		h.writeErrorWithDetails(w, "Sweep failed", fmt.Sprint(err), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}
