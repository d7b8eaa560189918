// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/pizzarec/internal/metrics"
)

// OrderRecord is an order ready to be stored.
type OrderRecord struct {
	Ref      string
	UserID   string
	PlacedAt time.Time
	Items    []OrderItemRecord
}

// OrderItemRecord is one line of an OrderRecord.
type OrderItemRecord struct {
	PizzaName string
	Quantity  int
}

// ErrEmptyOrder is returned when an order has no line items.
var ErrEmptyOrder = errors.New("order has no line items")

// InsertOrder stores order and its line items in one transaction and returns
// the order ID. Inserting a Ref that already exists returns the stored ID
// without writing, so redelivered events are harmless.
func (db *DB) InsertOrder(ctx context.Context, order *OrderRecord) (id int64, err error) {
	if len(order.Items) == 0 {
		return 0, ErrEmptyOrder
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "orders", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `SELECT id FROM orders WHERE order_ref = ?`, order.Ref).Scan(&id)
	switch {
	case err == nil:
		// Already stored; commit the read-only transaction.
		if err = tx.Commit(); err != nil {
			return 0, fmt.Errorf("commit order lookup: %w", err)
		}
		return id, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("look up order %s: %w", order.Ref, err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (order_ref, user_id, created_at)
		VALUES (?, ?, ?)
		RETURNING id`,
		order.Ref, order.UserID, order.PlacedAt.UTC()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order %s: %w", order.Ref, err)
	}

	for i, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, line_no, item_name, quantity)
			VALUES (?, ?, ?, ?)`,
			id, i, item.PizzaName, item.Quantity)
		if err != nil {
			return 0, fmt.Errorf("insert order item %d of %s: %w", i, order.Ref, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order %s: %w", order.Ref, err)
	}
	return id, nil
}

// Counts reports table sizes.
type Counts struct {
	MenuItems  int64 `json:"menu_items"`
	Orders     int64 `json:"orders"`
	OrderItems int64 `json:"order_items"`
}

// GetCounts returns the row count of each table.
func (db *DB) GetCounts(ctx context.Context) (*Counts, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var c Counts
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM menu_items),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM order_items)`).Scan(&c.MenuItems, &c.Orders, &c.OrderItems)
	if err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}
	return &c, nil
}
