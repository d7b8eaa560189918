// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/tomtom215/pizzarec/internal/config"
	"github.com/tomtom215/pizzarec/internal/logging"
	"github.com/tomtom215/pizzarec/internal/recommend"
)

type stubStore struct {
	menu []recommend.MenuItem
	err  error
}

func (s *stubStore) LoadMenu(_ context.Context) ([]recommend.MenuItem, error) {
	return s.menu, s.err
}

func (s *stubStore) FetchOrderLineItems(_ context.Context, _ *string) ([]recommend.OrderLineItem, error) {
	return nil, s.err
}

func TestBuildEngineConfig_Defaults(t *testing.T) {
	got := buildEngineConfig(&config.RecommendConfig{})
	want := recommend.DefaultConfig()

	if got.FallbackPizza != want.FallbackPizza {
		t.Errorf("FallbackPizza = %q, want %q", got.FallbackPizza, want.FallbackPizza)
	}
	if got.Limits != want.Limits {
		t.Errorf("Limits = %+v, want %+v", got.Limits, want.Limits)
	}
	if got.Timeouts != want.Timeouts {
		t.Errorf("Timeouts = %+v, want %+v", got.Timeouts, want.Timeouts)
	}
}

func TestBuildEngineConfig_Overrides(t *testing.T) {
	got := buildEngineConfig(&config.RecommendConfig{
		FallbackPizza: "Marinara",
		DefaultTopN:   5,
		MaxTopN:       10,
		BuildTimeout:  time.Minute,
		StoreTimeout:  2 * time.Second,
		Seed:          42,
	})

	if got.FallbackPizza != "Marinara" {
		t.Errorf("FallbackPizza = %q, want Marinara", got.FallbackPizza)
	}
	if got.Limits.DefaultTopN != 5 || got.Limits.MaxTopN != 10 {
		t.Errorf("Limits = %+v", got.Limits)
	}
	if got.Timeouts.Build != time.Minute || got.Timeouts.Store != 2*time.Second {
		t.Errorf("Timeouts = %+v", got.Timeouts)
	}
	if got.Seed != 42 {
		t.Errorf("Seed = %d, want 42", got.Seed)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestWrapStore(t *testing.T) {
	store := &stubStore{}

	got, status := wrapStore(store, &config.BreakerConfig{Enabled: false})
	if got != store {
		t.Error("disabled breaker should return the store unchanged")
	}
	if status != nil {
		t.Error("disabled breaker should report no status")
	}

	got, status = wrapStore(store, &config.BreakerConfig{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Second,
		MinRequests:  3,
		FailureRatio: 0.5,
	})
	if got == store {
		t.Error("enabled breaker should wrap the store")
	}
	if status == nil || status.State() != "closed" {
		t.Errorf("breaker status = %v, want closed", status)
	}
}

func TestInitRecommend(t *testing.T) {
	cfg := &config.Config{}
	store := &stubStore{menu: []recommend.MenuItem{
		{Name: "Margherita", Ingredients: "tomato mozzarella basil", Category: "classic", Diet: "veg"},
		{Name: "Diavola", Ingredients: "tomato mozzarella salami chili", Category: "spicy", Diet: "meat"},
	}}

	rec, err := initRecommend(cfg, store, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("initRecommend() error = %v", err)
	}
	if !rec.Engine.Ready() {
		t.Error("engine should be ready after init")
	}
	if rec.Breaker != nil {
		t.Error("breaker should be nil when disabled")
	}
}

func TestInitRecommend_EmptyCatalog(t *testing.T) {
	_, err := initRecommend(&config.Config{}, &stubStore{}, logging.NewTestLogger(io.Discard))
	if !errors.Is(err, recommend.ErrEmptyCatalog) {
		t.Fatalf("initRecommend() error = %v, want ErrEmptyCatalog", err)
	}
}

func TestInitRecommend_StoreUnavailable(t *testing.T) {
	_, err := initRecommend(&config.Config{}, &stubStore{err: errors.New("io error")}, logging.NewTestLogger(io.Discard))
	if !errors.Is(err, recommend.ErrCatalogStoreUnavailable) {
		t.Fatalf("initRecommend() error = %v, want ErrCatalogStoreUnavailable", err)
	}
}
