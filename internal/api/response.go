// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pizzarec/internal/logging"
	"github.com/tomtom215/pizzarec/internal/recommend"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// sanitizeLogValue escapes control characters so request values cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON writes v as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes {"error": message}. A non-nil err is logged with the
// request IDs; 5xx at error level, everything else at warn.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		logger := logging.Ctx(r.Context())
		event := logger.Warn()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Int("status", status).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondEngineError maps recommendation errors to HTTP responses.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *recommend.PizzaNotFoundError
	var noDiet *recommend.NoPizzasForDietError

	switch {
	case errors.As(err, &notFound):
		respondError(w, r, http.StatusNotFound, "Pizza not found: "+notFound.Name, nil)
	case errors.Is(err, recommend.ErrPizzaNotFound):
		respondError(w, r, http.StatusNotFound, "Pizza not found", nil)
	case errors.As(err, &noDiet):
		respondError(w, r, http.StatusNotFound, "No pizzas found for this diet type: "+noDiet.Diet, nil)
	case errors.Is(err, recommend.ErrNoPizzasForDiet):
		respondError(w, r, http.StatusNotFound, "No pizzas found for this diet type", nil)
	case errors.Is(err, recommend.ErrCatalogStoreUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, "Catalog store unavailable", err)
	case errors.Is(err, recommend.ErrIndexNotBuilt):
		respondError(w, r, http.StatusServiceUnavailable, "Catalog index not built", err)
	case errors.Is(err, recommend.ErrEmptyCatalog):
		respondError(w, r, http.StatusServiceUnavailable, "Catalog is empty", err)
	case errors.Is(err, recommend.ErrBuildInProgress):
		respondError(w, r, http.StatusConflict, "Catalog index build already in progress", nil)
	case errors.Is(err, recommend.ErrInvalidTopN):
		respondError(w, r, http.StatusBadRequest, "top_n must be greater than or equal to 1", nil)
	default:
		respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
	}
}
