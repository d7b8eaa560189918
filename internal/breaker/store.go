// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package breaker

import (
	"context"
	"errors"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/pizzarec/internal/config"
	"github.com/tomtom215/pizzarec/internal/logging"
	"github.com/tomtom215/pizzarec/internal/metrics"
	"github.com/tomtom215/pizzarec/internal/recommend"
)

// DefaultName is the breaker name used in logs and metric labels.
const DefaultName = "catalog-store"

const (
	opLoadMenu    = "load menu"
	opFetchOrders = "fetch order line items"
)

var _ recommend.CatalogStore = (*Store)(nil)

// Store is a CatalogStore protected by a circuit breaker.
type Store struct {
	next recommend.CatalogStore
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// New wraps next with a circuit breaker built from cfg.
func New(next recommend.CatalogStore, cfg *config.BreakerConfig) *Store {
	return NewNamed(DefaultName, next, cfg)
}

// NewNamed is New with an explicit breaker name.
func NewNamed(name string, next recommend.CatalogStore, cfg *config.BreakerConfig) *Store {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	minRequests := cfg.MinRequests
	failureRatio := cfg.FailureRatio

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		// Opens when the failure ratio reaches the threshold over at least
		// minRequests calls.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := ratio >= failureRatio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Store{next: next, cb: cb, name: name}
}

// LoadMenu loads the menu through the breaker.
func (s *Store) LoadMenu(ctx context.Context) ([]recommend.MenuItem, error) {
	result, err := s.execute(opLoadMenu, func() (any, error) {
		return s.next.LoadMenu(ctx)
	})
	if err != nil {
		return nil, err
	}
	items, _ := result.([]recommend.MenuItem)
	return items, nil
}

// FetchOrderLineItems fetches order line items through the breaker.
func (s *Store) FetchOrderLineItems(ctx context.Context, userID *string) ([]recommend.OrderLineItem, error) {
	result, err := s.execute(opFetchOrders, func() (any, error) {
		return s.next.FetchOrderLineItems(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	items, _ := result.([]recommend.OrderLineItem)
	return items, nil
}

// State returns the current breaker state as a string.
func (s *Store) State() string {
	return stateToString(s.cb.State())
}

// Name returns the breaker name.
func (s *Store) Name() string {
	return s.name
}

func (s *Store) execute(op string, fn func() (any, error)) (any, error) {
	result, err := s.cb.Execute(fn)
	if err == nil {
		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(0)
		return result, nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "canceled").Inc()
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
		logging.Warn().Err(err).Str("breaker", s.name).Str("op", op).Msg("[CIRCUIT BREAKER] Request rejected")
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
		counts := s.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(float64(counts.ConsecutiveFailures))
	}

	if errors.Is(err, recommend.ErrCatalogStoreUnavailable) {
		return nil, err
	}
	return nil, &recommend.StoreUnavailableError{Op: op, Err: err}
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
