// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package algorithms

import "math"

// Vector is a dense feature vector. Vectors are only comparable when they
// were produced by the same Vectorize call.
type Vector []float64

// Vectorizer turns a corpus of feature texts into vectors and scores pairs
// of those vectors. Implementations must be safe for concurrent use once
// Vectorize has returned.
type Vectorizer interface {
	// Name identifies the backend in logs and status output.
	Name() string

	// Vectorize fits the backend on corpus and returns one vector per
	// document, in corpus order.
	Vectorize(corpus []string) ([]Vector, error)

	// Score returns the similarity of two vectors from the same Vectorize call.
	Score(a, b Vector) float64
}

// Cosine returns the cosine similarity of a and b.
// Zero-norm vectors score 0 against everything.
func Cosine(a, b Vector) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
