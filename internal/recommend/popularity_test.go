// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import "testing"

func TestRankPopular(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []OrderLineItem
		topN  int
		want  []string
	}{
		{
			name:  "by descending count",
			items: ordersOf("A", "B", "A", "C", "A", "B"),
			topN:  2,
			want:  []string{"A", "B"},
		},
		{
			name:  "ties keep first-seen order",
			items: ordersOf("A", "B", "C", "B", "C"),
			topN:  2,
			want:  []string{"B", "C"},
		},
		{
			name:  "all tied",
			items: ordersOf("C", "A", "B"),
			topN:  3,
			want:  []string{"C", "A", "B"},
		},
		{
			name:  "top_n larger than distinct names",
			items: ordersOf("A", "B", "A"),
			topN:  10,
			want:  []string{"A", "B"},
		},
		{
			name:  "empty history",
			items: nil,
			topN:  3,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := rankPopular(tt.items, tt.topN)
			if !equalNames(got, tt.want) {
				t.Errorf("rankPopular() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountByName_IgnoresQuantity(t *testing.T) {
	t.Parallel()

	items := ordersOf("A", "B", "B")
	items[0].Quantity = 10

	counts := countByName(items)
	if len(counts) != 2 {
		t.Fatalf("countByName() returned %d names, want 2", len(counts))
	}
	if counts[0].name != "A" || counts[0].count != 1 {
		t.Errorf("counts[0] = %+v, want {A 1}", counts[0])
	}
	if counts[1].name != "B" || counts[1].count != 2 {
		t.Errorf("counts[1] = %+v, want {B 2}", counts[1])
	}
}
