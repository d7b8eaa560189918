// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tomtom215/pizzarec/internal/config"
)

// testDBSemaphore serializes DuckDB tests; concurrent CGO connections from
// many parallel tests can stall under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB opens an in-memory database. The semaphore is held until the
// test completes.
func setupTestDB(t *testing.T, seed bool) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: "", MaxMemory: "256MB", SeedMenu: seed})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func TestNew_InMemory(t *testing.T) {
	db := setupTestDB(t, false)

	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	counts, err := db.GetCounts(context.Background())
	if err != nil {
		t.Fatalf("GetCounts() error = %v", err)
	}
	if counts.MenuItems != 0 || counts.Orders != 0 || counts.OrderItems != 0 {
		t.Errorf("GetCounts() = %+v, want all zero", counts)
	}
}

func TestNew_FileBacked(t *testing.T) {
	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	path := filepath.Join(t.TempDir(), "nested", "pizzarec.duckdb")
	cfg := &config.DatabaseConfig{Path: path, Threads: 1, SeedMenu: true}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening keeps the seeded menu and does not seed twice.
	db, err = New(cfg)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer db.Close()

	menu, err := db.LoadMenu(context.Background())
	if err != nil {
		t.Fatalf("LoadMenu() error = %v", err)
	}
	if len(menu) != len(HouseMenu()) {
		t.Errorf("LoadMenu() returned %d items after reopen, want %d", len(menu), len(HouseMenu()))
	}
}

func TestConnString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "defaults",
			path: ":memory:",
			cfg:  config.DatabaseConfig{},
			want: ":memory:?access_mode=read_write",
		},
		{
			name: "tuned",
			path: "/data/p.duckdb",
			cfg:  config.DatabaseConfig{Threads: 4, MaxMemory: "1GB"},
			want: "/data/p.duckdb?access_mode=read_write&threads=4&max_memory=1GB",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := connString(tt.path, &tt.cfg); got != tt.want {
				t.Errorf("connString() = %q, want %q", got, tt.want)
			}
		})
	}
}
