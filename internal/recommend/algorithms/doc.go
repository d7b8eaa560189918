// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

// Package algorithms provides the text vectorizers behind the catalog index.
//
// A Vectorizer fits on the feature texts of the whole menu and returns one
// vector per item. The catalog index scores every pair once at build time,
// so Score runs only during a build and never on the request path.
//
// TFIDF is the default backend: raw term counts weighted by smoothed
// inverse document frequency and L2-normalised. Other backends can be
// plugged in with recommend.WithVectorizer.
package algorithms
