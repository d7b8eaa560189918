// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import "sort"

// nameCount is a pizza name and the number of line items that named it.
type nameCount struct {
	name  string
	count int
}

// countByName counts line items per pizza name. The result keeps the order in
// which each name was first seen. Quantity is ignored: one line, one vote.
func countByName(items []OrderLineItem) []nameCount {
	positions := make(map[string]int)
	counts := make([]nameCount, 0)
	for i := range items {
		name := items[i].PizzaName
		if pos, ok := positions[name]; ok {
			counts[pos].count++
			continue
		}
		positions[name] = len(counts)
		counts = append(counts, nameCount{name: name, count: 1})
	}
	return counts
}

// rankPopular returns up to topN names by descending frequency. Equal counts
// keep first-seen order. It returns nil for empty history.
func rankPopular(items []OrderLineItem, topN int) []string {
	counts := countByName(items)
	if len(counts) == 0 {
		return nil
	}

	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].count > counts[b].count
	})

	if topN > len(counts) {
		topN = len(counts)
	}
	names := make([]string, topN)
	for i := 0; i < topN; i++ {
		names[i] = counts[i].name
	}
	return names
}
