// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pizzarec/internal/recommend"
)

// DefaultRefreshInterval is used when a non-positive interval is given.
const DefaultRefreshInterval = time.Hour

// IndexBuilder rebuilds and publishes the catalog index.
type IndexBuilder interface {
	Build(ctx context.Context) error
}

// IndexRefreshService rebuilds the catalog index on a fixed interval so menu
// changes are served without a restart. A failed rebuild keeps the current
// index and is retried on the next tick.
type IndexRefreshService struct {
	builder  IndexBuilder
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewIndexRefreshService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIndexRefreshService(builder IndexBuilder, interval time.Duration, logger zerolog.Logger) *IndexRefreshService {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &IndexRefreshService{
		builder:  builder,
		interval: interval,
		logger:   logger.With().Str("service", "index-refresh").Logger(),
		name:     "index-refresh",
	}
}

// Serve implements suture.Service.
func (s *IndexRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("Index refresh running")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *IndexRefreshService) refresh(ctx context.Context) {
	start := time.Now()
	err := s.builder.Build(ctx)
	switch {
	case err == nil:
		s.logger.Debug().Dur("duration", time.Since(start)).Msg("Catalog index refreshed")
	case errors.Is(err, recommend.ErrBuildInProgress):
		s.logger.Debug().Msg("Index refresh skipped, build already running")
	case ctx.Err() != nil:
		// shutting down
	default:
		s.logger.Warn().Err(err).Msg("Index refresh failed, keeping current index")
	}
}

func (s *IndexRefreshService) String() string {
	return s.name
}
