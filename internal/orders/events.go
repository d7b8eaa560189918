// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/pizzarec/internal/database"
)

// Message metadata keys.
const (
	MetadataOrderRef      = "order_ref"
	MetadataCorrelationID = "correlation_id"
	MetadataEventType     = "event_type"
)

// EventTypeOrderPlaced is the event_type metadata value of OrderPlaced messages.
const EventTypeOrderPlaced = "order.placed"

// ErrInvalidEvent is returned when an event payload cannot be used.
var ErrInvalidEvent = errors.New("invalid order event")

// Item is one pizza line of an order.
type Item struct {
	PizzaName string `json:"pizza_name"`
	Quantity  int    `json:"quantity"`
}

// OrderPlaced is published when a customer places an order.
type OrderPlaced struct {
	Ref      string    `json:"order_ref"`
	UserID   string    `json:"user_id"`
	PlacedAt time.Time `json:"placed_at"`
	Items    []Item    `json:"items"`
}

// NewOrderPlaced creates an event with a fresh order reference.
func NewOrderPlaced(userID string, items []Item, placedAt time.Time) *OrderPlaced {
	return &OrderPlaced{
		Ref:      uuid.New().String(),
		UserID:   userID,
		PlacedAt: placedAt.UTC(),
		Items:    items,
	}
}

// Validate checks the fields the database requires.
func (e *OrderPlaced) Validate() error {
	switch {
	case e.Ref == "":
		return fmt.Errorf("%w: missing order_ref", ErrInvalidEvent)
	case e.UserID == "":
		return fmt.Errorf("%w: missing user_id", ErrInvalidEvent)
	case e.PlacedAt.IsZero():
		return fmt.Errorf("%w: missing placed_at", ErrInvalidEvent)
	case len(e.Items) == 0:
		return fmt.Errorf("%w: no items", ErrInvalidEvent)
	}
	for i, item := range e.Items {
		if item.PizzaName == "" {
			return fmt.Errorf("%w: item %d has no pizza_name", ErrInvalidEvent, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d has quantity %d", ErrInvalidEvent, i, item.Quantity)
		}
	}
	return nil
}

// Record converts the event into a database order record.
func (e *OrderPlaced) Record() *database.OrderRecord {
	items := make([]database.OrderItemRecord, len(e.Items))
	for i, item := range e.Items {
		items[i] = database.OrderItemRecord{PizzaName: item.PizzaName, Quantity: item.Quantity}
	}
	return &database.OrderRecord{
		Ref:      e.Ref,
		UserID:   e.UserID,
		PlacedAt: e.PlacedAt,
		Items:    items,
	}
}

// LineCount returns the number of pizza lines in the order.
func (e *OrderPlaced) LineCount() int {
	return len(e.Items)
}

// Marshal encodes the event as a Watermill message.
func Marshal(e *OrderPlaced, correlationID string) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal order event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataEventType, EventTypeOrderPlaced)
	msg.Metadata.Set(MetadataOrderRef, e.Ref)
	if correlationID != "" {
		msg.Metadata.Set(MetadataCorrelationID, correlationID)
	}
	return msg, nil
}

// Unmarshal decodes and validates an OrderPlaced message.
func Unmarshal(msg *message.Message) (*OrderPlaced, error) {
	var e OrderPlaced
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
