// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/pizzarec/internal/database"
	"github.com/tomtom215/pizzarec/internal/middleware"
	"github.com/tomtom215/pizzarec/internal/orders"
	"github.com/tomtom215/pizzarec/internal/recommend"
	"github.com/tomtom215/pizzarec/internal/validation"
)

// Path parameter rules.
const (
	dietTypeRule  = "required,max=64,nocontrol"
	userIDRule    = "required,max=128,nocontrol"
	pizzaNameRule = "required,max=128,nocontrol"
)

// Database is the part of the database the handlers report on.
type Database interface {
	Ping(ctx context.Context) error
	GetCounts(ctx context.Context) (*database.Counts, error)
}

// OrderSubmitter accepts new orders.
type OrderSubmitter interface {
	Submit(ctx context.Context, userID string, items []orders.Item, idempotencyKey string) (orders.Submission, error)
}

// BreakerStatus reports the state of a circuit breaker.
type BreakerStatus interface {
	Name() string
	State() string
}

// Deps are the collaborators of a Handler. Engine and Store are required.
type Deps struct {
	Engine *recommend.Engine

	// Store serves the catalog endpoints. It is normally the same guarded
	// store the engine reads from.
	Store recommend.CatalogStore

	DB      Database
	Orders  OrderSubmitter
	Breaker BreakerStatus
	Latency *middleware.LatencyTracker
}

// Handler serves the HTTP API.
type Handler struct {
	engine  *recommend.Engine
	store   recommend.CatalogStore
	db      Database
	orders  OrderSubmitter
	breaker BreakerStatus
	latency *middleware.LatencyTracker

	limits       recommend.LimitsConfig
	storeTimeout time.Duration
	startTime    time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps Deps) (*Handler, error) {
	if deps.Engine == nil {
		return nil, errors.New("recommendation engine is required")
	}
	if deps.Store == nil {
		return nil, errors.New("catalog store is required")
	}

	cfg := deps.Engine.Config()
	return &Handler{
		engine:       deps.Engine,
		store:        deps.Store,
		db:           deps.DB,
		orders:       deps.Orders,
		breaker:      deps.Breaker,
		latency:      deps.Latency,
		limits:       cfg.Limits,
		storeTimeout: cfg.Timeouts.Store,
		startTime:    time.Now(),
	}, nil
}

// parseTopN reads the top_n query parameter, falling back to the configured
// default when it is absent.
func (h *Handler) parseTopN(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("top_n")
	if raw == "" {
		return h.limits.DefaultTopN, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("top_n must be a number")
	}
	if verr := validation.ValidateVar("top_n", n, fmt.Sprintf("gte=1,lte=%d", h.limits.MaxTopN)); verr != nil {
		return 0, verr
	}
	return n, nil
}

// pathParam returns the decoded chi URL parameter key validated against rule.
func pathParam(r *http.Request, key, rule string) (string, error) {
	value := chi.URLParam(r, key)

	// chi matches on RawPath when the path holds escapes such as %2F.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}
	}

	if verr := validation.ValidateVar(key, value, rule); verr != nil {
		return "", verr
	}
	return value, nil
}

// storeContext bounds a direct store call by the configured store timeout.
func (h *Handler) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.storeTimeout)
}
