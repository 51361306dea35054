package catalog

import (
	"github.com/robocafe/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Default builds the cafeteria menu. Prices are in naira.
func Default() *Catalog {
	items := []MenuEntry{
		{
			ID:          "rice-meat",
			Name:        "Rice & Meat",
			Price:       decimal.NewFromInt(3000),
			Description: "Delicious white rice served with tender beef",
			Category:    enum.CategoryMain,
		},
		{
			ID:          "jollof-chicken",
			Name:        "Jollof Rice & Chicken",
			Price:       decimal.NewFromInt(4000),
			Description: "Spicy jollof rice with grilled chicken",
			Category:    enum.CategoryMain,
		},
		{
			ID:          "jollof-big-chicken",
			Name:        "Jollof Rice & Bigger Chicken",
			Price:       decimal.NewFromInt(5000),
			Description: "Spicy jollof rice with a larger portion of grilled chicken",
			Category:    enum.CategoryMain,
		},
		{
			ID:          "coke",
			Name:        "Coke",
			Price:       decimal.NewFromInt(600),
			Description: "Ice-cold Coca-Cola in a bottle",
			Category:    enum.CategoryDrink,
		},
		{
			ID:          "water",
			Name:        "Bottle Water",
			Price:       decimal.NewFromInt(300),
			Description: "Refreshing bottled water",
			Category:    enum.CategoryDrink,
		},
		{
			ID:          "moi-moi",
			Name:        "Moi-Moi",
			Price:       decimal.NewFromInt(1000),
			Description: "Steamed bean pudding with spices",
			Category:    enum.CategorySide,
		},
	}

	combos := []ComboEntry{
		{
			ID:    "combo-1",
			Name:  "Rice & Meat + Coke",
			Items: []string{"rice-meat", "coke"},
			Price: decimal.NewFromInt(3400),
		},
		{
			ID:    "combo-2",
			Name:  "Jollof Rice & Chicken + Water",
			Items: []string{"jollof-chicken", "water"},
			Price: decimal.NewFromInt(4100),
		},
		{
			ID:    "combo-3",
			Name:  "Jollof Rice & Bigger Chicken + Moi-Moi",
			Items: []string{"jollof-big-chicken", "moi-moi"},
			Price: decimal.NewFromInt(5500),
		},
		{
			ID:    "combo-4",
			Name:  "Rice & Meat + Moi-Moi",
			Items: []string{"rice-meat", "moi-moi"},
			Price: decimal.NewFromInt(3700),
		},
		{
			ID:    "combo-5",
			Name:  "Jollof Rice & Chicken + Moi-Moi",
			Items: []string{"jollof-chicken", "moi-moi"},
			Price: decimal.NewFromInt(4700),
		},
	}

	c, err := New(items, combos)
	if err != nil {
		// The seed data is compiled in; a failure here is a programming error.
		panic(err)
	}
	return c
}
