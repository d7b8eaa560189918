// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Orders    OrdersConfig    `koanf:"orders"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB file. An empty path opens an in-memory database.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = DuckDB default

	// SeedMenu inserts the house menu when menu_items is empty.
	SeedMenu bool `koanf:"seed_menu"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	FallbackPizza string        `koanf:"fallback_pizza"`
	DefaultTopN   int           `koanf:"default_top_n"`
	MaxTopN       int           `koanf:"max_top_n"`
	BuildTimeout  time.Duration `koanf:"build_timeout"`
	StoreTimeout  time.Duration `koanf:"store_timeout"`

	// Seed fixes the diet sampler. Zero seeds from the clock.
	Seed int64 `koanf:"seed"`

	// RefreshInterval rebuilds the catalog index periodically so menu
	// changes are picked up without a restart. Zero disables it.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// BreakerConfig holds the circuit breaker guarding the catalog store.
type BreakerConfig struct {
	Enabled bool `koanf:"enabled"`

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval is the closed-state window after which counts reset.
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration `koanf:"timeout"`

	// The breaker opens once at least MinRequests were seen in the window
	// and the failure ratio reaches FailureRatio.
	MinRequests  uint32  `koanf:"min_requests"`
	FailureRatio float64 `koanf:"failure_ratio"`
}

// OrdersConfig holds order ingestion settings.
type OrdersConfig struct {
	Topic string `koanf:"topic"`

	// Buffer is the gochannel output buffer per subscriber.
	Buffer int64 `koanf:"buffer"`

	// IdempotencyPath is the Badger directory for Idempotency-Key records.
	// Empty keeps them in memory.
	IdempotencyPath string        `koanf:"idempotency_path"`
	IdempotencyTTL  time.Duration `koanf:"idempotency_ttl"`

	RetryCount    int           `koanf:"retry_count"`
	RetryInterval time.Duration `koanf:"retry_interval"`
	CloseTimeout  time.Duration `koanf:"close_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
