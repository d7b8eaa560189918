// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package api

import (
	"net/http"
	"time"
)

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// HealthLive reports that the process is serving HTTP.
//
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "alive",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether the catalog index is built and the database
// answers.
//
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Ready() {
		respondError(w, r, http.StatusServiceUnavailable, "Catalog index not built", nil)
		return
	}
	if h.db != nil {
		ctx, cancel := h.storeContext(r.Context())
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			respondError(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
			return
		}
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "ready",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}
