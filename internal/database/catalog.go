// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/pizzarec/internal/metrics"
	"github.com/tomtom215/pizzarec/internal/recommend"
)

var _ recommend.CatalogStore = (*DB)(nil)

// LoadMenu returns every menu item in catalog order.
func (db *DB) LoadMenu(ctx context.Context) (items []recommend.MenuItem, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "menu_items", time.Since(start), err) }()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT name, ingredients, category, diet, description, vegetarian, spicy, price
		FROM menu_items
		ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	items = make([]recommend.MenuItem, 0)
	for rows.Next() {
		var m recommend.MenuItem
		if err := rows.Scan(&m.Name, &m.Ingredients, &m.Category, &m.Diet, &m.Description, &m.Vegetarian, &m.Spicy, &m.Price); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}
	return items, nil
}

// ReplaceMenu atomically replaces the menu with items, in order.
func (db *DB) ReplaceMenu(ctx context.Context, items []recommend.MenuItem) (err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("replace", "menu_items", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin menu transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM menu_items`); err != nil {
		return fmt.Errorf("clear menu items: %w", err)
	}
	for i := range items {
		m := &items[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO menu_items (name, position, ingredients, category, diet, description, vegetarian, spicy, price)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.Name, i, m.Ingredients, m.Category, m.Diet, m.Description, m.Vegetarian, m.Spicy, m.Price)
		if err != nil {
			return fmt.Errorf("insert menu item %q: %w", m.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit menu items: %w", err)
	}
	return nil
}

// FetchOrderLineItems returns order line items, oldest first. A nil userID
// returns every user's items.
func (db *DB) FetchOrderLineItems(ctx context.Context, userID *string) (items []recommend.OrderLineItem, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "order_items", time.Since(start), err) }()

	query := `
		SELECT o.id, o.user_id, oi.item_name, oi.quantity,
		       COALESCE(m.description, ''), COALESCE(m.vegetarian, FALSE), COALESCE(m.spicy, FALSE),
		       o.created_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN menu_items m ON m.name = oi.item_name`
	args := []any{}
	if userID != nil {
		query += ` WHERE o.user_id = ?`
		args = append(args, *userID)
	}
	query += ` ORDER BY o.created_at, o.id, oi.line_no`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order line items: %w", err)
	}
	defer rows.Close()

	items = make([]recommend.OrderLineItem, 0)
	for rows.Next() {
		var li recommend.OrderLineItem
		if err := rows.Scan(&li.OrderID, &li.UserID, &li.PizzaName, &li.Quantity,
			&li.Description, &li.Vegetarian, &li.Spicy, &li.Timestamp); err != nil {
			return nil, fmt.Errorf("scan order line item: %w", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order line items: %w", err)
	}
	return items, nil
}
