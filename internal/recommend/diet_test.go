// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package recommend

import (
	"errors"
	"math/rand"
	"testing"
)

func TestCatalogIndex_ByDiet(t *testing.T) {
	t.Parallel()

	idx, err := BuildIndex(testMenu(), nil)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	vegetarian := map[string]bool{"Margherita": true, "Veggie Supreme": true, "Quattro Formaggi": true}

	tests := []struct {
		name    string
		diet    string
		topN    int
		wantLen int
		wantErr error
	}{
		{name: "fewer than matches", diet: "veg", topN: 2, wantLen: 2},
		{name: "exactly matches", diet: "veg", topN: 3, wantLen: 3},
		{name: "more than matches", diet: "veg", topN: 10, wantLen: 3},
		{name: "no match", diet: "vegan", topN: 3, wantErr: ErrNoPizzasForDiet},
		{name: "case sensitive", diet: "VEG", topN: 3, wantErr: ErrNoPizzasForDiet},
		{name: "zero top_n", diet: "veg", topN: 0, wantErr: ErrInvalidTopN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic test source
			got, err := idx.ByDiet(tt.diet, tt.topN, rng)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ByDiet(%q, %d) error = %v, want %v", tt.diet, tt.topN, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ByDiet(%q, %d) error = %v", tt.diet, tt.topN, err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("ByDiet(%q, %d) returned %d names, want %d", tt.diet, tt.topN, len(got), tt.wantLen)
			}

			seen := make(map[string]bool)
			for _, name := range got {
				if !vegetarian[name] {
					t.Errorf("ByDiet(%q) returned %q, not tagged %q", tt.diet, name, tt.diet)
				}
				if seen[name] {
					t.Errorf("ByDiet(%q) returned %q twice", tt.diet, name)
				}
				seen[name] = true
			}
		})
	}
}

func TestCatalogIndex_ByDiet_NoMatchCarriesDiet(t *testing.T) {
	t.Parallel()

	idx, err := BuildIndex(testMenu(), nil)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	_, err = idx.ByDiet("vegan", 3, rand.New(rand.NewSource(1))) //nolint:gosec // deterministic test source
	var noDiet *NoPizzasForDietError
	if !errors.As(err, &noDiet) {
		t.Fatalf("ByDiet() error = %v, want *NoPizzasForDietError", err)
	}
	if noDiet.Diet != "vegan" {
		t.Errorf("NoPizzasForDietError.Diet = %q, want vegan", noDiet.Diet)
	}
}

func TestCatalogIndex_ByDiet_SeededIsReproducible(t *testing.T) {
	t.Parallel()

	idx, err := BuildIndex(testMenu(), nil)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	first, err := idx.ByDiet("meat", 2, rand.New(rand.NewSource(99))) //nolint:gosec // deterministic test source
	if err != nil {
		t.Fatalf("ByDiet() error = %v", err)
	}
	second, err := idx.ByDiet("meat", 2, rand.New(rand.NewSource(99))) //nolint:gosec // deterministic test source
	if err != nil {
		t.Fatalf("ByDiet() error = %v", err)
	}
	if !equalNames(first, second) {
		t.Errorf("ByDiet() with equal seeds = %v and %v, want identical", first, second)
	}
}

func TestCatalogIndex_ByDiet_CoversAllMatches(t *testing.T) {
	t.Parallel()

	idx, err := BuildIndex(testMenu(), nil)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	rng := rand.New(rand.NewSource(3)) //nolint:gosec // deterministic test source
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		got, err := idx.ByDiet("meat", 1, rng)
		if err != nil {
			t.Fatalf("ByDiet() error = %v", err)
		}
		seen[got[0]] = true
	}

	for _, name := range []string{"Pepperoni", "Diavola", "Hawaiian"} {
		if !seen[name] {
			t.Errorf("ByDiet(meat, 1) never sampled %q in 200 draws", name)
		}
	}
}
