// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/pizzarec/internal/database"
	"github.com/tomtom215/pizzarec/internal/logging"
	"github.com/tomtom215/pizzarec/internal/middleware"
	"github.com/tomtom215/pizzarec/internal/recommend"
)

// PopularRecommendations returns the most ordered pizzas.
//
// GET /api/v1/recommendations/popular?top_n=N
func (h *Handler) PopularRecommendations(w http.ResponseWriter, r *http.Request) {
	topN, err := h.parseTopN(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	names, err := h.engine.Popular(r.Context(), topN)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, names)
}

// DietRecommendations returns a random sample of pizzas with the given diet tag.
//
// GET /api/v1/recommendations/diet/{diet_type}?top_n=N
func (h *Handler) DietRecommendations(w http.ResponseWriter, r *http.Request) {
	diet, err := pathParam(r, "diet_type", dietTypeRule)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	topN, err := h.parseTopN(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	names, err := h.engine.ByDiet(diet, topN)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, names)
}

// UserRecommendations returns pizzas similar to the user's latest order.
//
// GET /api/v1/recommendations/user/{user_id}?top_n=N
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := pathParam(r, "user_id", userIDRule)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	topN, err := h.parseTopN(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	names, err := h.engine.ForUser(r.Context(), userID, topN)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, names)
}

// SimilarRecommendations returns the pizzas most similar to a named pizza.
//
// GET /api/v1/recommendations/similar/{pizza_name}?top_n=N
func (h *Handler) SimilarRecommendations(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "pizza_name", pizzaNameRule)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	topN, err := h.parseTopN(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	names, err := h.engine.Similar(name, topN)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, names)
}

// BreakerInfo is the breaker section of the status response.
type BreakerInfo struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// StatusResponse is returned by the status endpoint.
type StatusResponse struct {
	Index         recommend.BuildStatus     `json:"index"`
	Stats         recommend.Stats           `json:"stats"`
	Counts        *database.Counts          `json:"counts,omitempty"`
	Breaker       *BreakerInfo              `json:"breaker,omitempty"`
	Latency       []middleware.RouteLatency `json:"latency,omitempty"`
	UptimeSeconds float64                   `json:"uptime_seconds"`
}

// RecommendationStatus reports index state, engine counters, table sizes,
// breaker state and recent route latencies.
//
// GET /api/v1/recommendations/status
func (h *Handler) RecommendationStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Index:         h.engine.Status(),
		Stats:         h.engine.Stats(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.db != nil {
		ctx, cancel := h.storeContext(r.Context())
		counts, err := h.db.GetCounts(ctx)
		cancel()
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to read table counts")
		} else {
			resp.Counts = counts
		}
	}
	if h.breaker != nil {
		resp.Breaker = &BreakerInfo{Name: h.breaker.Name(), State: h.breaker.State()}
	}
	if h.latency != nil {
		resp.Latency = h.latency.Stats()
	}

	respondJSON(w, http.StatusOK, resp)
}

// RebuildIndex rebuilds the catalog index from the current menu. It answers
// 409 while another build runs. The build is not canceled when the client
// goes away.
//
// POST /api/v1/recommendations/index/rebuild
func (h *Handler) RebuildIndex(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Build(context.WithoutCancel(r.Context())); err != nil {
		respondEngineError(w, r, err)
		return
	}

	status := h.engine.Status()
	logging.Ctx(r.Context()).Info().
		Int("catalog_size", status.CatalogSize).
		Int64("duration_ms", status.LastBuildDurationMS).
		Msg("Catalog index rebuilt on request")
	respondJSON(w, http.StatusOK, status)
}
