// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import "math/rand"

// ByDiet returns up to topN names of items whose diet tag equals diet,
// sampled uniformly without replacement using rng. The match is exact and
// case-sensitive.
//
// rng is not safe for concurrent use; callers serialize access to it.
func (idx *CatalogIndex) ByDiet(diet string, topN int, rng *rand.Rand) ([]string, error) {
	if topN < 1 {
		return nil, ErrInvalidTopN
	}

	matches := make([]string, 0)
	for i := range idx.items {
		if idx.items[i].Diet == diet {
			matches = append(matches, idx.items[i].Name)
		}
	}
	if len(matches) == 0 {
		return nil, &NoPizzasForDietError{Diet: diet}
	}

	k := topN
	if k > len(matches) {
		k = len(matches)
	}

	// Partial Fisher-Yates: the first k slots become the sample.
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(matches)-i)
		matches[i], matches[j] = matches[j], matches[i]
	}
	return matches[:k], nil
}
