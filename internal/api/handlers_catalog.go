// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package api

import (
	"net/http"

	"github.com/tomtom215/pizzarec/internal/recommend"
)

// orderDateLayout is the timestamp format of order history responses.
const orderDateLayout = "2006-01-02"

// OrderLine is one line of a user's order history.
type OrderLine struct {
	OrderID     int64  `json:"order_id"`
	UserID      string `json:"user_id"`
	PizzaName   string `json:"pizza_name"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
	IsVeg       bool   `json:"is_veg"`
	IsSpicy     bool   `json:"is_spicy"`
	Timestamp   string `json:"timestamp"`
}

// MenuItems returns the full menu as stored.
//
// GET /api/v1/menu-items
func (h *Handler) MenuItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.storeContext(r.Context())
	defer cancel()

	items, err := h.store.LoadMenu(ctx)
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, "Catalog store unavailable", err)
		return
	}
	if items == nil {
		items = []recommend.MenuItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// UserOrders returns the order history of one user, oldest first.
//
// GET /api/v1/orders/user/{user_id}
func (h *Handler) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := pathParam(r, "user_id", userIDRule)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := h.storeContext(r.Context())
	defer cancel()

	items, err := h.store.FetchOrderLineItems(ctx, &userID)
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, "Catalog store unavailable", err)
		return
	}

	lines := make([]OrderLine, len(items))
	for i := range items {
		lines[i] = shapeOrderLine(&items[i])
	}
	respondJSON(w, http.StatusOK, lines)
}

func shapeOrderLine(item *recommend.OrderLineItem) OrderLine {
	return OrderLine{
		OrderID:     item.OrderID,
		UserID:      item.UserID,
		PizzaName:   item.PizzaName,
		Quantity:    item.Quantity,
		Description: item.Description,
		IsVeg:       item.Vegetarian,
		IsSpicy:     item.Spicy,
		Timestamp:   item.Timestamp.Format(orderDateLayout),
	}
}
