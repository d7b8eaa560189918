// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import (
	"context"
	"time"
)

// MenuItem is one pizza on the menu. Name is the unique key.
type MenuItem struct {
	Name        string  `json:"name"`
	Ingredients string  `json:"ingredients"`
	Category    string  `json:"category"`
	Diet        string  `json:"diet"`
	Description string  `json:"description"`
	Vegetarian  bool    `json:"vegetarian"`
	Spicy       bool    `json:"spicy"`
	Price       float64 `json:"price"`
}

// FeatureText returns the text the item is vectorized from: ingredients,
// category and diet tag joined by single spaces, in that order.
func (m *MenuItem) FeatureText() string {
	return m.Ingredients + " " + m.Category + " " + m.Diet
}

// OrderLineItem is one pizza line of a placed order, with menu details
// denormalized at read time.
type OrderLineItem struct {
	OrderID     int64     `json:"order_id"`
	UserID      string    `json:"user_id"`
	PizzaName   string    `json:"pizza_name"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	Vegetarian  bool      `json:"is_veg"`
	Spicy       bool      `json:"is_spicy"`
	Timestamp   time.Time `json:"timestamp"`
}

// CatalogStore is the read-only view of menu and order data the engine needs.
// It is typically implemented by the database layer.
type CatalogStore interface {
	// LoadMenu returns the full menu.
	LoadMenu(ctx context.Context) ([]MenuItem, error)

	// FetchOrderLineItems returns all order line items when userID is nil,
	// otherwise only that user's items. Items are ordered by placement time,
	// oldest first.
	FetchOrderLineItems(ctx context.Context, userID *string) ([]OrderLineItem, error)
}

// BuildStatus describes the state of the catalog index.
type BuildStatus struct {
	// Built is true once an index has been published.
	Built bool `json:"built"`

	// IsBuilding is true while a build is running.
	IsBuilding bool `json:"is_building"`

	// CatalogSize is the number of items in the published index.
	CatalogSize int `json:"catalog_size"`

	// Vectorizer names the backend used by the published index.
	Vectorizer string `json:"vectorizer"`

	// BuildCount is the number of successful builds since start.
	BuildCount int `json:"build_count"`

	// LastBuiltAt is when the published index was built.
	LastBuiltAt time.Time `json:"last_built_at,omitempty"`

	// LastBuildDurationMS is the duration of the last successful build.
	LastBuildDurationMS int64 `json:"last_build_duration_ms"`

	// LastError is the error of the most recent failed build, if any.
	LastError string `json:"last_error,omitempty"`
}

// Stats holds request counters per operation.
type Stats struct {
	Requests  map[string]int64 `json:"requests"`
	Errors    map[string]int64 `json:"errors"`
	Fallbacks int64            `json:"fallbacks"`
}

// Operation names used in Stats.
const (
	OpSimilar = "similar"
	OpPopular = "popular"
	OpDiet    = "diet"
	OpForUser = "for_user"
)
