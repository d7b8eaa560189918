// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Use errors.Is to classify errors returned by the engine.
var (
	// ErrEmptyCatalog is returned when the catalog index is built from no items.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrPizzaNotFound is returned when a pizza name is not in the catalog.
	ErrPizzaNotFound = errors.New("pizza not found")

	// ErrNoPizzasForDiet is returned when no catalog item carries the requested diet tag.
	ErrNoPizzasForDiet = errors.New("no pizzas found for this diet type")

	// ErrCatalogStoreUnavailable is returned when the catalog store cannot be reached.
	ErrCatalogStoreUnavailable = errors.New("catalog store unavailable")

	// ErrBuildInProgress is returned when Build is called while another build runs.
	ErrBuildInProgress = errors.New("catalog index build already in progress")

	// ErrIndexNotBuilt is returned by queries that need the index before the first build.
	ErrIndexNotBuilt = errors.New("catalog index not built")

	// ErrInvalidTopN is returned when top_n is less than one.
	ErrInvalidTopN = errors.New("top_n must be at least 1")
)

// PizzaNotFoundError carries the name that failed to resolve.
type PizzaNotFoundError struct {
	Name string
}

func (e *PizzaNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrPizzaNotFound, e.Name)
}

// Is reports whether target is ErrPizzaNotFound.
func (e *PizzaNotFoundError) Is(target error) bool {
	return target == ErrPizzaNotFound
}

// NoPizzasForDietError carries the diet tag that matched nothing.
type NoPizzasForDietError struct {
	Diet string
}

func (e *NoPizzasForDietError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNoPizzasForDiet, e.Diet)
}

// Is reports whether target is ErrNoPizzasForDiet.
func (e *NoPizzasForDietError) Is(target error) bool {
	return target == ErrNoPizzasForDiet
}

// StoreUnavailableError wraps a failed catalog store call.
// It matches ErrCatalogStoreUnavailable and unwraps to the underlying cause.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrCatalogStoreUnavailable, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", ErrCatalogStoreUnavailable, e.Op, e.Err)
}

// Is reports whether target is ErrCatalogStoreUnavailable.
func (e *StoreUnavailableError) Is(target error) bool {
	return target == ErrCatalogStoreUnavailable
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// storeUnavailable classifies a store error. Errors that already carry the
// ErrCatalogStoreUnavailable kind are returned unchanged.
func storeUnavailable(op string, err error) error {
	if errors.Is(err, ErrCatalogStoreUnavailable) {
		return err
	}
	return &StoreUnavailableError{Op: op, Err: err}
}
