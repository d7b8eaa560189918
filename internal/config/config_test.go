// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "port zero", modify: func(c *Config) { c.Server.Port = 0 }, wantErr: "HTTP_PORT"},
		{name: "port too large", modify: func(c *Config) { c.Server.Port = 70000 }, wantErr: "HTTP_PORT"},
		{name: "unknown environment", modify: func(c *Config) { c.Server.Environment = "qa" }, wantErr: "ENVIRONMENT"},
		{name: "negative threads", modify: func(c *Config) { c.Database.Threads = -1 }, wantErr: "DUCKDB_THREADS"},
		{name: "blank fallback", modify: func(c *Config) { c.Recommend.FallbackPizza = "" }, wantErr: "FALLBACK_PIZZA"},
		{name: "max below default", modify: func(c *Config) { c.Recommend.MaxTopN = 1 }, wantErr: "MAX_TOP_N"},
		{name: "breaker ratio above one", modify: func(c *Config) { c.Breaker.FailureRatio = 1.5 }, wantErr: "FAILURE_RATIO"},
		{
			name: "disabled breaker skips checks",
			modify: func(c *Config) {
				c.Breaker.Enabled = false
				c.Breaker.FailureRatio = 0
			},
		},
		{name: "empty topic", modify: func(c *Config) { c.Orders.Topic = " " }, wantErr: "ORDERS_TOPIC"},
		{name: "zero rate limit", modify: func(c *Config) { c.Security.RateLimitReqs = 0 }, wantErr: "RATE_LIMIT_REQUESTS"},
		{
			name: "disabled rate limit skips checks",
			modify: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitReqs = 0
			},
		},
		{name: "bad log level", modify: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "LOG_LEVEL"},
		{name: "bad log format", modify: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.IsProduction() {
		t.Error("IsProduction() = true for development")
	}
	cfg.Server.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false for production")
	}
}
