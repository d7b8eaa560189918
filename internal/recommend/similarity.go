// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import "sort"

// scoredItem pairs a catalog position with its similarity to the query.
type scoredItem struct {
	index int
	score float64
}

// Similar returns up to topN names most similar to name, best first.
//
// The query row of the similarity matrix is sorted by descending score with
// ties kept in catalog order, and the first entry (the query itself) is
// dropped. Fewer than topN names are returned when the catalog is small.
func (idx *CatalogIndex) Similar(name string, topN int) ([]string, error) {
	if topN < 1 {
		return nil, ErrInvalidTopN
	}

	query, ok := idx.Lookup(name)
	if !ok {
		return nil, &PizzaNotFoundError{Name: name}
	}

	row := idx.similarity[query]
	scored := make([]scoredItem, len(row))
	for i, score := range row {
		scored[i] = scoredItem{index: i, score: score}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	// The query scores 1.0 against itself but may share that score with an
	// identical item that sorts before it; remove it by position.
	names := make([]string, 0, topN)
	skipped := false
	for _, s := range scored {
		if !skipped && s.index == query {
			skipped = true
			continue
		}
		if idx.items[s.index].Name == name {
			continue
		}
		names = append(names, idx.items[s.index].Name)
		if len(names) == topN {
			break
		}
	}
	return names, nil
}
