// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package orders

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

func TestNewOrderPlaced(t *testing.T) {
	t.Parallel()

	placed := time.Date(2026, 4, 1, 19, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	e := NewOrderPlaced("u1", []Item{{PizzaName: "Diavola", Quantity: 2}}, placed)

	if e.Ref == "" {
		t.Error("Ref is empty")
	}
	if e.PlacedAt.Location() != time.UTC {
		t.Errorf("PlacedAt location = %v, want UTC", e.PlacedAt.Location())
	}
	if !e.PlacedAt.Equal(placed) {
		t.Errorf("PlacedAt = %v, want %v", e.PlacedAt, placed)
	}

	other := NewOrderPlaced("u1", e.Items, placed)
	if other.Ref == e.Ref {
		t.Error("NewOrderPlaced() reused an order reference")
	}
}

func TestOrderPlaced_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *OrderPlaced {
		return &OrderPlaced{
			Ref:      "ref-1",
			UserID:   "u1",
			PlacedAt: time.Now(),
			Items:    []Item{{PizzaName: "Margherita", Quantity: 1}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(e *OrderPlaced)
		wantErr string
	}{
		{name: "valid", mutate: func(e *OrderPlaced) {}},
		{name: "missing ref", mutate: func(e *OrderPlaced) { e.Ref = "" }, wantErr: "order_ref"},
		{name: "missing user", mutate: func(e *OrderPlaced) { e.UserID = "" }, wantErr: "user_id"},
		{name: "missing time", mutate: func(e *OrderPlaced) { e.PlacedAt = time.Time{} }, wantErr: "placed_at"},
		{name: "no items", mutate: func(e *OrderPlaced) { e.Items = nil }, wantErr: "no items"},
		{name: "blank pizza", mutate: func(e *OrderPlaced) { e.Items[0].PizzaName = "" }, wantErr: "pizza_name"},
		{name: "zero quantity", mutate: func(e *OrderPlaced) { e.Items[0].Quantity = 0 }, wantErr: "quantity 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := valid()
			tt.mutate(e)
			err := e.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidEvent) {
				t.Fatalf("Validate() error = %v, want ErrInvalidEvent", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestOrderPlaced_Record(t *testing.T) {
	t.Parallel()

	e := &OrderPlaced{
		Ref:      "ref-7",
		UserID:   "u7",
		PlacedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Items:    []Item{{PizzaName: "Pepperoni", Quantity: 1}, {PizzaName: "Capricciosa", Quantity: 2}},
	}
	rec := e.Record()

	if rec.Ref != "ref-7" || rec.UserID != "u7" || !rec.PlacedAt.Equal(e.PlacedAt) {
		t.Errorf("Record() = %+v, want fields copied from event", rec)
	}
	if len(rec.Items) != 2 || rec.Items[1].PizzaName != "Capricciosa" || rec.Items[1].Quantity != 2 {
		t.Errorf("Record().Items = %+v", rec.Items)
	}
}

func TestMarshal_Metadata(t *testing.T) {
	t.Parallel()

	e := NewOrderPlaced("u1", []Item{{PizzaName: "Margherita", Quantity: 1}}, time.Now())
	msg, err := Marshal(e, "abcd1234")
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if got := msg.Metadata.Get(MetadataEventType); got != EventTypeOrderPlaced {
		t.Errorf("event_type = %q, want %q", got, EventTypeOrderPlaced)
	}
	if got := msg.Metadata.Get(MetadataOrderRef); got != e.Ref {
		t.Errorf("order_ref = %q, want %q", got, e.Ref)
	}
	if got := msg.Metadata.Get(MetadataCorrelationID); got != "abcd1234" {
		t.Errorf("correlation_id = %q, want abcd1234", got)
	}

	decoded, err := Unmarshal(msg)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Ref != e.Ref || decoded.UserID != "u1" || len(decoded.Items) != 1 {
		t.Errorf("Unmarshal() = %+v, want %+v", decoded, e)
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "pizza"},
		{name: "missing items", payload: `{"order_ref":"r","user_id":"u","placed_at":"2026-01-01T00:00:00Z","items":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg := message.NewMessage("id", []byte(tt.payload))
			if _, err := Unmarshal(msg); !errors.Is(err, ErrInvalidEvent) {
				t.Errorf("Unmarshal() error = %v, want ErrInvalidEvent", err)
			}
		})
	}
}
