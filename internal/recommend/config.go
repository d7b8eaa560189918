// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultFallbackPizza is returned when there is no order history to rank.
const DefaultFallbackPizza = "Margherita"

// Config contains all configuration for the recommendation engine.
type Config struct {
	// FallbackPizza is the single name returned by Popular and ForUser when
	// there is no order history.
	// Default: "Margherita".
	FallbackPizza string `json:"fallback_pizza"`

	// Limits contains top_n bounds.
	Limits LimitsConfig `json:"limits"`

	// Timeouts bounds calls to the catalog store.
	Timeouts TimeoutConfig `json:"timeouts"`

	// Seed fixes the random source used by the diet filter.
	// If zero, the source is seeded from the clock.
	Seed int64 `json:"seed"`
}

// LimitsConfig contains top_n bounds.
type LimitsConfig struct {
	// DefaultTopN is used when a caller does not specify top_n.
	// Default: 3.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN is the largest top_n accepted at the API boundary.
	// Default: 50.
	MaxTopN int `json:"max_top_n"`
}

// TimeoutConfig bounds catalog store calls.
type TimeoutConfig struct {
	// Build is the maximum time for loading the menu and building the index.
	// Default: 30s.
	Build time.Duration `json:"build"`

	// Store is the maximum time for a single order history query.
	// Default: 5s.
	Store time.Duration `json:"store"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		FallbackPizza: DefaultFallbackPizza,
		Limits: LimitsConfig{
			DefaultTopN: 3,
			MaxTopN:     50,
		},
		Timeouts: TimeoutConfig{
			Build: 30 * time.Second,
			Store: 5 * time.Second,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FallbackPizza) == "" {
		return fmt.Errorf("fallback_pizza must not be empty")
	}
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= limits.default_top_n, got %d < %d", c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Timeouts.Build <= 0 {
		return fmt.Errorf("timeouts.build must be positive, got %v", c.Timeouts.Build)
	}
	if c.Timeouts.Store <= 0 {
		return fmt.Errorf("timeouts.store must be positive, got %v", c.Timeouts.Store)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Timeouts struct {
			Build string `json:"build"`
			Store string `json:"store"`
		} `json:"timeouts"`
	}{
		Alias: (*Alias)(c),
		Timeouts: struct {
			Build string `json:"build"`
			Store string `json:"store"`
		}{
			Build: c.Timeouts.Build.String(),
			Store: c.Timeouts.Store.String(),
		},
	})
}
