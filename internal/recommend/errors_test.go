// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: refused")

	tests := []struct {
		name    string
		err     error
		kind    error
		notKind error
		message string
	}{
		{
			name:    "pizza not found",
			err:     &PizzaNotFoundError{Name: "Calzone"},
			kind:    ErrPizzaNotFound,
			notKind: ErrNoPizzasForDiet,
			message: "Calzone",
		},
		{
			name:    "no pizzas for diet",
			err:     &NoPizzasForDietError{Diet: "vegan"},
			kind:    ErrNoPizzasForDiet,
			notKind: ErrPizzaNotFound,
			message: "vegan",
		},
		{
			name:    "store unavailable",
			err:     &StoreUnavailableError{Op: "load menu", Err: cause},
			kind:    ErrCatalogStoreUnavailable,
			notKind: ErrEmptyCatalog,
			message: "load menu",
		},
		{
			name:    "wrapped",
			err:     fmt.Errorf("handler: %w", &PizzaNotFoundError{Name: "Calzone"}),
			kind:    ErrPizzaNotFound,
			notKind: ErrCatalogStoreUnavailable,
			message: "handler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.kind)
			}
			if errors.Is(tt.err, tt.notKind) {
				t.Errorf("errors.Is(%v, %v) = true, want false", tt.err, tt.notKind)
			}
			if !strings.Contains(tt.err.Error(), tt.message) {
				t.Errorf("Error() = %q, want it to contain %q", tt.err.Error(), tt.message)
			}
		})
	}
}

func TestStoreUnavailable(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	err := storeUnavailable("fetch", cause)
	if !errors.Is(err, cause) {
		t.Errorf("storeUnavailable() does not unwrap to the cause")
	}

	// Already classified errors pass through unchanged.
	again := storeUnavailable("outer", err)
	if again != err {
		t.Errorf("storeUnavailable() rewrapped %v as %v", err, again)
	}

	bare := &StoreUnavailableError{Op: "ping"}
	if got := bare.Error(); !strings.Contains(got, "ping") {
		t.Errorf("Error() = %q, want it to contain the op", got)
	}
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{&PizzaNotFoundError{Name: "x"}, "pizza_not_found"},
		{&NoPizzasForDietError{Diet: "x"}, "no_pizzas_for_diet"},
		{&StoreUnavailableError{Op: "x"}, "store_unavailable"},
		{ErrIndexNotBuilt, "index_not_built"},
		{ErrInvalidTopN, "invalid_top_n"},
		{fmt.Errorf("wrapped: %w", errors.New("other")), "error"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
