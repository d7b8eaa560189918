// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// mockCatalogStore implements CatalogStore for testing.
type mockCatalogStore struct {
	menu      []MenuItem
	orders    []OrderLineItem
	menuErr   error
	ordersErr error

	// loadStarted is signalled when LoadMenu begins; LoadMenu then waits on
	// loadRelease when it is non-nil.
	loadStarted chan struct{}
	loadRelease chan struct{}

	loadCalls   atomic.Int32
	fetchCalls  atomic.Int32
	mu          sync.Mutex
	lastUserIDs []*string
}

func (m *mockCatalogStore) LoadMenu(ctx context.Context) ([]MenuItem, error) {
	m.loadCalls.Add(1)
	if m.loadStarted != nil {
		select {
		case m.loadStarted <- struct{}{}:
		default:
		}
	}
	if m.loadRelease != nil {
		select {
		case <-m.loadRelease:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.menuErr != nil {
		return nil, m.menuErr
	}
	return m.menu, nil
}

func (m *mockCatalogStore) FetchOrderLineItems(ctx context.Context, userID *string) ([]OrderLineItem, error) {
	m.fetchCalls.Add(1)
	m.mu.Lock()
	m.lastUserIDs = append(m.lastUserIDs, userID)
	m.mu.Unlock()

	if m.ordersErr != nil {
		return nil, m.ordersErr
	}
	if userID == nil {
		return m.orders, nil
	}
	var out []OrderLineItem
	for _, item := range m.orders {
		if item.UserID == *userID {
			out = append(out, item)
		}
	}
	return out, nil
}

// testMenu is a small catalog with deliberate overlaps in ingredients.
func testMenu() []MenuItem {
	return []MenuItem{
		{Name: "Margherita", Ingredients: "tomato mozzarella basil", Category: "classic", Diet: "veg"},
		{Name: "Pepperoni", Ingredients: "tomato mozzarella pepperoni", Category: "classic", Diet: "meat"},
		{Name: "Veggie Supreme", Ingredients: "peppers onions olives mushrooms tomato", Category: "specialty", Diet: "veg"},
		{Name: "Diavola", Ingredients: "tomato mozzarella salami chili", Category: "specialty", Diet: "meat"},
		{Name: "Quattro Formaggi", Ingredients: "mozzarella gorgonzola fontina parmigiano", Category: "classic", Diet: "veg"},
		{Name: "Hawaiian", Ingredients: "tomato mozzarella ham pineapple", Category: "specialty", Diet: "meat"},
	}
}

func orderAt(userID, pizza string, minute int) OrderLineItem {
	return OrderLineItem{
		UserID:    userID,
		PizzaName: pizza,
		Quantity:  1,
		Timestamp: time.Date(2026, 1, 1, 12, minute, 0, 0, time.UTC),
	}
}

func ordersOf(names ...string) []OrderLineItem {
	out := make([]OrderLineItem, len(names))
	for i, name := range names {
		out[i] = orderAt("u", name, i)
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
