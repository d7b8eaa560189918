// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/pizzarec/internal/recommend"
)

// HouseMenu is the menu inserted by SeedMenu.
func HouseMenu() []recommend.MenuItem {
	return []recommend.MenuItem{
		{
			Name:        "Margherita",
			Ingredients: "tomato mozzarella basil olive oil",
			Category:    "classic",
			Diet:        "veg",
			Description: "Classic pizza with tomato sauce, mozzarella, fresh basil, salt, and extra-virgin olive oil",
			Vegetarian:  true,
			Price:       10.99,
		},
		{
			Name:        "Pepperoni",
			Ingredients: "tomato mozzarella pepperoni",
			Category:    "classic",
			Diet:        "meat",
			Description: "American favorite topped with tomato sauce, mozzarella, and crispy pepperoni",
			Price:       12.99,
		},
		{
			Name:        "Quattro Formaggi",
			Ingredients: "mozzarella gorgonzola fontina parmigiano",
			Category:    "classic",
			Diet:        "veg",
			Description: "Four cheese pizza with mozzarella, gorgonzola, fontina, and parmigiano reggiano",
			Vegetarian:  true,
			Price:       13.99,
		},
		{
			Name:        "Diavola",
			Ingredients: "tomato mozzarella salami chili",
			Category:    "spicy",
			Diet:        "meat",
			Description: "Spicy pizza with tomato sauce, mozzarella, spicy salami, and chili peppers",
			Spicy:       true,
			Price:       13.99,
		},
		{
			Name:        "Prosciutto e Funghi",
			Ingredients: "tomato mozzarella ham mushrooms",
			Category:    "specialty",
			Diet:        "meat",
			Description: "Ham and mushroom pizza with tomato sauce and mozzarella",
			Price:       14.99,
		},
		{
			Name:        "Capricciosa",
			Ingredients: "tomato mozzarella artichokes mushrooms olives ham",
			Category:    "specialty",
			Diet:        "meat",
			Description: "Artichokes, mushrooms, olives, and ham with tomato sauce and mozzarella",
			Price:       14.99,
		},
		{
			Name:        "Veggie Supreme",
			Ingredients: "tomato mozzarella peppers onions olives mushrooms",
			Category:    "specialty",
			Diet:        "veg",
			Description: "Peppers, onions, olives, and mushrooms with tomato sauce and mozzarella",
			Vegetarian:  true,
			Price:       13.49,
		},
	}
}

// SeedMenu inserts HouseMenu when menu_items is empty and returns the number
// of rows inserted.
func (db *DB) SeedMenu(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	menu := HouseMenu()
	if err := db.ReplaceMenu(ctx, menu); err != nil {
		return 0, err
	}
	return len(menu), nil
}
