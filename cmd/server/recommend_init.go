// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pizzarec/internal/api"
	"github.com/tomtom215/pizzarec/internal/breaker"
	"github.com/tomtom215/pizzarec/internal/config"
	"github.com/tomtom215/pizzarec/internal/recommend"
)

// recommendComponents holds the engine and the store it reads from.
type recommendComponents struct {
	Engine *recommend.Engine
	Store  recommend.CatalogStore

	// Breaker is nil when the circuit breaker is disabled.
	Breaker api.BreakerStatus
}

// buildEngineConfig maps the application config onto the engine config.
// Zero values keep the engine defaults.
func buildEngineConfig(cfg *config.RecommendConfig) *recommend.Config {
	engineCfg := recommend.DefaultConfig()
	if cfg.FallbackPizza != "" {
		engineCfg.FallbackPizza = cfg.FallbackPizza
	}
	if cfg.DefaultTopN > 0 {
		engineCfg.Limits.DefaultTopN = cfg.DefaultTopN
	}
	if cfg.MaxTopN > 0 {
		engineCfg.Limits.MaxTopN = cfg.MaxTopN
	}
	if cfg.BuildTimeout > 0 {
		engineCfg.Timeouts.Build = cfg.BuildTimeout
	}
	if cfg.StoreTimeout > 0 {
		engineCfg.Timeouts.Store = cfg.StoreTimeout
	}
	engineCfg.Seed = cfg.Seed
	return engineCfg
}

// wrapStore puts the circuit breaker in front of the store when enabled.
func wrapStore(store recommend.CatalogStore, cfg *config.BreakerConfig) (recommend.CatalogStore, api.BreakerStatus) {
	if !cfg.Enabled {
		return store, nil
	}
	guarded := breaker.New(store, cfg)
	return guarded, guarded
}

// initRecommend creates the engine and builds the catalog index. The server
// refuses to start without an index.
func initRecommend(cfg *config.Config, store recommend.CatalogStore, logger zerolog.Logger) (*recommendComponents, error) {
	guarded, status := wrapStore(store, &cfg.Breaker)

	engine, err := recommend.NewEngine(buildEngineConfig(&cfg.Recommend), guarded, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	if err := engine.Build(context.Background()); err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}

	st := engine.Status()
	logger.Info().
		Int("pizzas", st.CatalogSize).
		Str("vectorizer", st.Vectorizer).
		Bool("breaker", status != nil).
		Msg("Recommendation engine initialized")

	return &recommendComponents{
		Engine:  engine,
		Store:   guarded,
		Breaker: status,
	}, nil
}
