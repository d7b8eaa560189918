// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pizzarec/internal/orders"
	"github.com/tomtom215/pizzarec/internal/validation"
)

// IdempotencyKeyHeader deduplicates order submissions.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxOrderBodyBytes = 64 << 10

// PlaceOrderItem is one line of a PlaceOrderRequest.
type PlaceOrderItem struct {
	PizzaName string `json:"pizza_name" validate:"required,max=128,nocontrol"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=50"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	UserID string           `json:"user_id" validate:"required,max=128,nocontrol"`
	Items  []PlaceOrderItem `json:"items" validate:"required,min=1,max=20,dive"`
}

// PlaceOrderResponse acknowledges an order.
type PlaceOrderResponse struct {
	OrderRef string `json:"order_ref"`
	Status   string `json:"status"`
}

// PlaceOrder accepts an order for asynchronous persistence. A new order
// answers 202; a repeated Idempotency-Key answers 200 with the original
// reference.
//
// POST /api/v1/orders
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if h.orders == nil {
		respondError(w, r, http.StatusServiceUnavailable, "Order ingestion unavailable", nil)
		return
	}

	var req PlaceOrderRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOrderBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, verr.Error(), nil)
		return
	}

	key := r.Header.Get(IdempotencyKeyHeader)
	if verr := validation.ValidateVar(IdempotencyKeyHeader, key, "omitempty,max=255,nocontrol"); verr != nil {
		respondError(w, r, http.StatusBadRequest, verr.Error(), nil)
		return
	}

	idx := h.engine.Index()
	if idx == nil {
		respondError(w, r, http.StatusServiceUnavailable, "Catalog index not built", nil)
		return
	}
	items := make([]orders.Item, len(req.Items))
	for i, line := range req.Items {
		if _, ok := idx.Lookup(line.PizzaName); !ok {
			respondError(w, r, http.StatusBadRequest, "Unknown pizza: "+line.PizzaName, nil)
			return
		}
		items[i] = orders.Item{PizzaName: line.PizzaName, Quantity: line.Quantity}
	}

	sub, err := h.orders.Submit(r.Context(), req.UserID, items, key)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidEvent) {
			respondError(w, r, http.StatusBadRequest, "Invalid order", err)
			return
		}
		respondError(w, r, http.StatusServiceUnavailable, "Order could not be accepted", err)
		return
	}

	if sub.Duplicate {
		respondJSON(w, http.StatusOK, PlaceOrderResponse{OrderRef: sub.OrderRef, Status: "duplicate"})
		return
	}
	respondJSON(w, http.StatusAccepted, PlaceOrderResponse{OrderRef: sub.OrderRef, Status: "accepted"})
}
