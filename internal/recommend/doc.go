// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

// Package recommend implements the pizza recommendation engine.
//
// # Architecture
//
// The engine answers three kinds of questions over a menu catalog:
//
//   - Popular: the most frequently ordered pizzas across all order history
//   - Diet: a random sample of pizzas carrying a given diet tag
//   - User: pizzas most similar to the one a user ordered most recently
//
// Similarity is content based. Each menu item is reduced to a feature text
// (ingredients, category and diet tag, in that order), the catalog is
// vectorized by a pluggable algorithms.Vectorizer (TF-IDF by default) and an
// N×N similarity matrix is precomputed once per build.
//
// # Lifecycle
//
// A CatalogIndex is built from CatalogStore.LoadMenu before the engine serves
// queries. Once published it is immutable; queries read it through an atomic
// pointer without locks. Build is guarded so that a second concurrent build is
// rejected with ErrBuildInProgress, and a failed build never replaces the
// index already being served.
//
// Order history is never cached. Popular and ForUser read it from the
// CatalogStore on every call, bounded by Config.StoreTimeout.
//
// # Fallbacks
//
// Popular and ForUser return a single-element list holding
// Config.FallbackPizza ("Margherita" by default) when no order history
// exists. No other error is converted into an empty or fallback result.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, logger)
//	if err != nil {
//	    return err
//	}
//	if err := engine.Build(ctx); err != nil {
//	    return err // fatal: do not serve without a catalog
//	}
//	names, err := engine.ForUser(ctx, "u1", 3)
//
// Note: This package has no dependencies on other internal packages. The
// CatalogStore interface is implemented by the database layer.
package recommend
