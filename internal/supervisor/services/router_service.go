// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// MessageRouter is the lifecycle of *message.Router.
type MessageRouter interface {
	Run(ctx context.Context) error
	Running() chan struct{}
	IsClosed() bool
}

// RouterService runs a watermill router under a supervisor.
//
// A watermill router cannot be started again once closed, so after the
// router has stopped the service reports suture.ErrDoNotRestart instead of
// spinning on restarts.
type RouterService struct {
	router MessageRouter
	logger zerolog.Logger
	name   string
}

// NewRouterService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouterService(router MessageRouter, logger zerolog.Logger) *RouterService {
	return &RouterService{
		router: router,
		logger: logger.With().Str("service", "order-router").Logger(),
		name:   "order-router",
	}
}

// Running is closed once the router has started its handlers.
func (s *RouterService) Running() chan struct{} {
	return s.router.Running()
}

// Serve implements suture.Service. It blocks until ctx is canceled, which
// closes the router after in-flight messages finish.
func (s *RouterService) Serve(ctx context.Context) error {
	if s.router.IsClosed() {
		s.logger.Error().Msg("Order router is closed and cannot be restarted")
		return suture.ErrDoNotRestart
	}

	s.logger.Info().Msg("Order router starting")
	if err := s.router.Run(ctx); err != nil {
		return fmt.Errorf("order router failed: %w", err)
	}

	if ctx.Err() != nil {
		s.logger.Info().Msg("Order router stopped")
		return ctx.Err()
	}
	return nil
}

func (s *RouterService) String() string {
	return s.name
}
