// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		ingredients TEXT NOT NULL,
		category TEXT NOT NULL,
		diet TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		vegetarian BOOLEAN NOT NULL DEFAULT FALSE,
		spicy BOOLEAN NOT NULL DEFAULT FALSE,
		price DOUBLE NOT NULL DEFAULT 0
	)`,
	`CREATE SEQUENCE IF NOT EXISTS orders_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT PRIMARY KEY DEFAULT nextval('orders_id_seq'),
		order_ref TEXT NOT NULL UNIQUE,
		user_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id BIGINT NOT NULL,
		line_no INTEGER NOT NULL,
		item_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		PRIMARY KEY (order_id, line_no)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders (user_id, created_at)`,
}

func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
