// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

/*
Package database is the DuckDB-backed catalog store.

It owns three tables:

	menu_items   one row per pizza; position fixes catalog order
	orders       one row per placed order, keyed by a client-visible order_ref
	order_items  line items of an order

DB implements recommend.CatalogStore: LoadMenu returns the menu in catalog
order and FetchOrderLineItems joins orders, order_items and menu_items into
flat line items, oldest first.

An empty DatabaseConfig.Path opens an in-memory database. When SeedMenu is
set and menu_items is empty, the house menu is inserted on startup.
*/
package database
