// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/pizzarec/internal/recommend/algorithms"
)

// CatalogIndex is the immutable vector-space view of one catalog build.
// All fields are written by BuildIndex and only read afterwards, so a
// *CatalogIndex may be shared by any number of goroutines.
type CatalogIndex struct {
	items      []MenuItem
	features   []string
	vectors    []algorithms.Vector
	similarity [][]float64
	byName     map[string]int
	vectorizer string
	builtAt    time.Time
}

// BuildIndex vectorizes the catalog and precomputes the item-to-item
// similarity matrix. It returns ErrEmptyCatalog when items is empty.
func BuildIndex(items []MenuItem, vectorizer algorithms.Vectorizer) (*CatalogIndex, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	if vectorizer == nil {
		vectorizer = algorithms.NewTFIDF()
	}

	catalog := make([]MenuItem, len(items))
	copy(catalog, items)

	features := make([]string, len(catalog))
	byName := make(map[string]int, len(catalog))
	for i := range catalog {
		features[i] = catalog[i].FeatureText()
		// First occurrence wins for duplicate names.
		if _, exists := byName[catalog[i].Name]; !exists {
			byName[catalog[i].Name] = i
		}
	}

	vectors, err := vectorizer.Vectorize(features)
	if err != nil {
		return nil, fmt.Errorf("vectorize catalog: %w", err)
	}
	if len(vectors) != len(catalog) {
		return nil, fmt.Errorf("vectorizer %s returned %d vectors for %d items", vectorizer.Name(), len(vectors), len(catalog))
	}

	return &CatalogIndex{
		items:      catalog,
		features:   features,
		vectors:    vectors,
		similarity: similarityMatrix(vectors, vectorizer),
		byName:     byName,
		vectorizer: vectorizer.Name(),
		builtAt:    time.Now(),
	}, nil
}

// similarityMatrix scores every pair once and mirrors the result, so the
// matrix is exactly symmetric. The diagonal is 1.0 by definition.
func similarityMatrix(vectors []algorithms.Vector, vectorizer algorithms.Vectorizer) [][]float64 {
	n := len(vectors)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			score := vectorizer.Score(vectors[i], vectors[j])
			matrix[i][j] = score
			matrix[j][i] = score
		}
	}
	return matrix
}

// Lookup returns the catalog position of name.
func (idx *CatalogIndex) Lookup(name string) (int, bool) {
	i, ok := idx.byName[name]
	return i, ok
}

// Len returns the number of catalog items.
func (idx *CatalogIndex) Len() int {
	return len(idx.items)
}

// Item returns the menu item at position i.
func (idx *CatalogIndex) Item(i int) MenuItem {
	return idx.items[i]
}

// Items returns a copy of the catalog in index order.
func (idx *CatalogIndex) Items() []MenuItem {
	out := make([]MenuItem, len(idx.items))
	copy(out, idx.items)
	return out
}

// FeatureText returns the feature text item i was vectorized from.
func (idx *CatalogIndex) FeatureText(i int) string {
	return idx.features[i]
}

// Similarity returns the precomputed similarity of items i and j.
func (idx *CatalogIndex) Similarity(i, j int) float64 {
	return idx.similarity[i][j]
}

// Vectorizer names the backend the index was built with.
func (idx *CatalogIndex) Vectorizer() string {
	return idx.vectorizer
}

// BuiltAt returns the build time.
func (idx *CatalogIndex) BuiltAt() time.Time {
	return idx.builtAt
}
