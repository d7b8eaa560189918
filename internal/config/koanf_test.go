// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Recommend.FallbackPizza != "Margherita" {
		t.Errorf("Recommend.FallbackPizza = %q, want Margherita", cfg.Recommend.FallbackPizza)
	}
	if cfg.Recommend.DefaultTopN != 3 {
		t.Errorf("Recommend.DefaultTopN = %d, want 3", cfg.Recommend.DefaultTopN)
	}
	if cfg.Recommend.MaxTopN != 50 {
		t.Errorf("Recommend.MaxTopN = %d, want 50", cfg.Recommend.MaxTopN)
	}
	if cfg.Orders.Topic != "orders.placed" {
		t.Errorf("Orders.Topic = %q, want orders.placed", cfg.Orders.Topic)
	}
	if cfg.Orders.IdempotencyPath != "" {
		t.Errorf("Orders.IdempotencyPath = %q, want empty (in-memory)", cfg.Orders.IdempotencyPath)
	}
	if cfg.Breaker.FailureRatio != 0.6 {
		t.Errorf("Breaker.FailureRatio = %v, want 0.6", cfg.Breaker.FailureRatio)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8000" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:8000", cfg.Server.Addr())
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DUCKDB_PATH", "/tmp/pizzarec-test.duckdb")
	t.Setenv("RECOMMEND_FALLBACK_PIZZA", "Pepperoni")
	t.Setenv("RECOMMEND_STORE_TIMEOUT", "2s")
	t.Setenv("BREAKER_MAX_REQUESTS", "5")
	t.Setenv("ORDERS_IDEMPOTENCY_TTL", "1h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/pizzarec-test.duckdb" {
		t.Errorf("Database.Path = %q, want /tmp/pizzarec-test.duckdb", cfg.Database.Path)
	}
	if cfg.Recommend.FallbackPizza != "Pepperoni" {
		t.Errorf("Recommend.FallbackPizza = %q, want Pepperoni", cfg.Recommend.FallbackPizza)
	}
	if cfg.Recommend.StoreTimeout != 2*time.Second {
		t.Errorf("Recommend.StoreTimeout = %v, want 2s", cfg.Recommend.StoreTimeout)
	}
	if cfg.Breaker.MaxRequests != 5 {
		t.Errorf("Breaker.MaxRequests = %d, want 5", cfg.Breaker.MaxRequests)
	}
	if cfg.Orders.IdempotencyTTL != time.Hour {
		t.Errorf("Orders.IdempotencyTTL = %v, want 1h", cfg.Orders.IdempotencyTTL)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != want[0] || cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7000
recommend:
  max_top_n: 20
orders:
  topic: orders.test
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	// Environment wins over the file.
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001", cfg.Server.Port)
	}
	if cfg.Recommend.MaxTopN != 20 {
		t.Errorf("Recommend.MaxTopN = %d, want 20", cfg.Recommend.MaxTopN)
	}
	if cfg.Orders.Topic != "orders.test" {
		t.Errorf("Orders.Topic = %q, want orders.test", cfg.Orders.Topic)
	}
	if cfg.Recommend.DefaultTopN != 3 {
		t.Errorf("Recommend.DefaultTopN = %d, want default 3", cfg.Recommend.DefaultTopN)
	}
}

func TestLoadWithKoanf_InvalidValue(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("RECOMMEND_DEFAULT_TOP_N", "0")

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() error = nil, want validation error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("RECOMMEND_SEED=1234\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("RECOMMEND_SEED", "")
	os.Unsetenv("RECOMMEND_SEED")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv() error = %v", err)
	}
	if got := os.Getenv("RECOMMEND_SEED"); got != "1234" {
		t.Errorf("RECOMMEND_SEED = %q, want 1234", got)
	}

	if err := loadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("loadDotEnv(missing) error = %v, want nil", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DUCKDB_PATH", "database.path"},
		{"RECOMMEND_MAX_TOP_N", "recommend.max_top_n"},
		{"BREAKER_FAILURE_RATIO", "breaker.failure_ratio"},
		{"ORDERS_IDEMPOTENCY_PATH", "orders.idempotency_path"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
