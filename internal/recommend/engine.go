// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pizzarec/internal/metrics"
	"github.com/tomtom215/pizzarec/internal/recommend/algorithms"
)

// Engine is the recommendation facade. It owns the published CatalogIndex
// and answers popular, diet, similar and per-user queries.
// It is safe for concurrent use.
type Engine struct {
	config     *Config
	logger     zerolog.Logger
	store      CatalogStore
	vectorizer algorithms.Vectorizer

	// Published index; nil until the first successful build.
	index atomic.Pointer[CatalogIndex]

	// Build state
	buildMu  sync.Mutex
	statusMu sync.RWMutex
	status   BuildStatus

	// Random source for the diet filter (protected by rngMu)
	rng   *rand.Rand
	rngMu sync.Mutex

	// Counters keyed by operation; the maps are never written after NewEngine.
	requests  map[string]*atomic.Int64
	errors    map[string]*atomic.Int64
	fallbacks atomic.Int64
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithVectorizer replaces the default TF-IDF backend.
func WithVectorizer(v algorithms.Vectorizer) Option {
	return func(e *Engine) {
		if v != nil {
			e.vectorizer = v
		}
	}
}

// WithRand injects the random source used by the diet filter.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// NewEngine creates a recommendation engine over store. The engine serves no
// queries until Build succeeds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store CatalogStore, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		config:     cfg.Clone(),
		logger:     logger.With().Str("component", "recommend").Logger(),
		store:      store,
		vectorizer: algorithms.NewTFIDF(),
		rng:        rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for menu sampling
		requests:   make(map[string]*atomic.Int64),
		errors:     make(map[string]*atomic.Int64),
	}
	for _, op := range []string{OpSimilar, OpPopular, OpDiet, OpForUser} {
		e.requests[op] = new(atomic.Int64)
		e.errors[op] = new(atomic.Int64)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Build loads the menu and publishes a new CatalogIndex.
//
// Only one build runs at a time; a concurrent call returns ErrBuildInProgress.
// On failure the previously published index, if any, stays in place.
func (e *Engine) Build(ctx context.Context) error {
	if !e.buildMu.TryLock() {
		return ErrBuildInProgress
	}
	defer e.buildMu.Unlock()

	e.statusMu.Lock()
	e.status.IsBuilding = true
	e.statusMu.Unlock()

	start := time.Now()
	idx, err := e.buildIndex(ctx)

	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.status.IsBuilding = false

	if err != nil {
		e.status.LastError = err.Error()
		metrics.RecordIndexBuild("failure", 0, time.Since(start))
		e.logger.Error().Err(err).Msg("catalog index build failed")
		return err
	}

	e.index.Store(idx)
	e.status.Built = true
	e.status.CatalogSize = idx.Len()
	e.status.Vectorizer = idx.Vectorizer()
	e.status.BuildCount++
	e.status.LastBuiltAt = idx.BuiltAt()
	e.status.LastBuildDurationMS = time.Since(start).Milliseconds()
	e.status.LastError = ""
	metrics.RecordIndexBuild("success", idx.Len(), time.Since(start))

	e.logger.Info().
		Int("items", idx.Len()).
		Str("vectorizer", idx.Vectorizer()).
		Int64("duration_ms", e.status.LastBuildDurationMS).
		Msg("catalog index built")
	return nil
}

// buildIndex loads the menu under the build timeout and vectorizes it.
func (e *Engine) buildIndex(ctx context.Context) (*CatalogIndex, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.Timeouts.Build)
	defer cancel()

	items, err := e.store.LoadMenu(ctx)
	if err != nil {
		return nil, storeUnavailable("load menu", err)
	}

	idx, err := BuildIndex(items, e.vectorizer)
	if err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}
	return idx, nil
}

// Index returns the published index, or nil before the first build.
func (e *Engine) Index() *CatalogIndex {
	return e.index.Load()
}

// Ready reports whether an index has been published.
func (e *Engine) Ready() bool {
	return e.index.Load() != nil
}

// Similar returns up to topN pizzas most similar to name.
func (e *Engine) Similar(name string, topN int) ([]string, error) {
	start := time.Now()
	names, err := e.similar(name, topN)
	e.observe(OpSimilar, start, err)
	return names, err
}

func (e *Engine) similar(name string, topN int) ([]string, error) {
	idx := e.index.Load()
	if idx == nil {
		return nil, ErrIndexNotBuilt
	}
	return idx.Similar(name, topN)
}

// Popular returns up to topN pizza names ranked by how many order lines name
// them. With no order history it returns the fallback pizza alone.
func (e *Engine) Popular(ctx context.Context, topN int) ([]string, error) {
	start := time.Now()
	names, err := e.popular(ctx, topN)
	e.observe(OpPopular, start, err)
	return names, err
}

func (e *Engine) popular(ctx context.Context, topN int) ([]string, error) {
	if topN < 1 {
		return nil, ErrInvalidTopN
	}

	items, err := e.fetchOrders(ctx, nil)
	if err != nil {
		return nil, err
	}

	names := rankPopular(items, topN)
	if len(names) == 0 {
		return e.fallback(), nil
	}
	return names, nil
}

// ByDiet returns a random sample of up to topN pizzas tagged with diet.
func (e *Engine) ByDiet(diet string, topN int) ([]string, error) {
	start := time.Now()
	names, err := e.byDiet(diet, topN)
	e.observe(OpDiet, start, err)
	return names, err
}

func (e *Engine) byDiet(diet string, topN int) ([]string, error) {
	idx := e.index.Load()
	if idx == nil {
		return nil, ErrIndexNotBuilt
	}

	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return idx.ByDiet(diet, topN, e.rng)
}

// ForUser recommends up to topN pizzas similar to the one userID ordered most
// recently. Users without orders get the fallback pizza alone. A last-ordered
// pizza that is no longer on the menu yields ErrPizzaNotFound.
func (e *Engine) ForUser(ctx context.Context, userID string, topN int) ([]string, error) {
	start := time.Now()
	names, err := e.forUser(ctx, userID, topN)
	e.observe(OpForUser, start, err)
	return names, err
}

func (e *Engine) forUser(ctx context.Context, userID string, topN int) ([]string, error) {
	if topN < 1 {
		return nil, ErrInvalidTopN
	}
	idx := e.index.Load()
	if idx == nil {
		return nil, ErrIndexNotBuilt
	}

	items, err := e.fetchOrders(ctx, &userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return e.fallback(), nil
	}

	last := mostRecent(items)
	e.logger.Debug().
		Str("user_id", userID).
		Str("last_pizza", last.PizzaName).
		Msg("recommending from most recent order")

	return idx.Similar(last.PizzaName, topN)
}

// mostRecent returns the line item with the latest timestamp. Items are
// expected oldest first, so on equal timestamps the later entry wins.
func mostRecent(items []OrderLineItem) OrderLineItem {
	latest := items[0]
	for _, item := range items[1:] {
		if !item.Timestamp.Before(latest.Timestamp) {
			latest = item
		}
	}
	return latest
}

// fetchOrders queries order history under the store timeout.
func (e *Engine) fetchOrders(ctx context.Context, userID *string) ([]OrderLineItem, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.Timeouts.Store)
	defer cancel()

	items, err := e.store.FetchOrderLineItems(ctx, userID)
	if err != nil {
		return nil, storeUnavailable("fetch order line items", err)
	}
	return items, nil
}

func (e *Engine) fallback() []string {
	e.fallbacks.Add(1)
	return []string{e.config.FallbackPizza}
}

func (e *Engine) observe(op string, start time.Time, err error) {
	e.requests[op].Add(1)
	if err != nil {
		e.errors[op].Add(1)
	}
	metrics.RecordRecommendation(op, outcome(err), time.Since(start))
}

// outcome labels a query result for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrPizzaNotFound):
		return "pizza_not_found"
	case errors.Is(err, ErrNoPizzasForDiet):
		return "no_pizzas_for_diet"
	case errors.Is(err, ErrCatalogStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrIndexNotBuilt):
		return "index_not_built"
	case errors.Is(err, ErrInvalidTopN):
		return "invalid_top_n"
	default:
		return "error"
	}
}

// Status returns the current build status.
func (e *Engine) Status() BuildStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status
}

// Stats returns a snapshot of the request counters.
func (e *Engine) Stats() Stats {
	stats := Stats{
		Requests:  make(map[string]int64, len(e.requests)),
		Errors:    make(map[string]int64, len(e.errors)),
		Fallbacks: e.fallbacks.Load(),
	}
	for op, c := range e.requests {
		stats.Requests[op] = c.Load()
	}
	for op, c := range e.errors {
		stats.Errors[op] = c.Load()
	}
	return stats
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
