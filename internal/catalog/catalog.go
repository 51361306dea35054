package catalog

import (
	"errors"
	"fmt"

	"github.com/robocafe/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Errors returned by catalog lookups.
var (
	ErrNotFound        = errors.New("catalog entry not found")
	ErrInvalidCategory = errors.New("invalid category")
)

// MenuEntry is a single purchasable item. Prices are whole amounts in the
// smallest currency unit and never change after construction.
type MenuEntry struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
}

// ComboEntry is a fixed bundle of menu entries sold at a discount.
type ComboEntry struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Items   []string        `json:"items"`
	Price   decimal.Decimal `json:"price"`
	Savings decimal.Decimal `json:"savings"`
}

// Entry is the result of a Resolve call: exactly one of Item or Combo is set.
type Entry struct {
	Item  *MenuEntry
	Combo *ComboEntry
}

// Name returns the display name of the resolved entry.
func (e Entry) Name() string {
	if e.Combo != nil {
		return e.Combo.Name
	}
	return e.Item.Name
}

// Price returns the unit price of the resolved entry.
func (e Entry) Price() decimal.Decimal {
	if e.Combo != nil {
		return e.Combo.Price
	}
	return e.Item.Price
}

// IsCombo reports whether the resolved entry is a combo bundle.
func (e Entry) IsCombo() bool {
	return e.Combo != nil
}

// Catalog is the read-only menu listing. Built once at process start;
// all methods are safe for concurrent use because nothing mutates.
type Catalog struct {
	items  []MenuEntry
	combos []ComboEntry
	byID   map[string]Entry
}

// New validates the entries and builds the lookup index. It fails when a
// price is not a positive integer amount, a combo references an unknown
// item, a combo is not cheaper than its constituents, or an ID repeats.
func New(items []MenuEntry, combos []ComboEntry) (*Catalog, error) {
	c := &Catalog{
		items:  items,
		combos: combos,
		byID:   make(map[string]Entry, len(items)+len(combos)),
	}

	for i := range c.items {
		it := &c.items[i]
		if err := validatePrice(it.ID, it.Price); err != nil {
			return nil, err
		}
		if !validCategory(it.Category) {
			return nil, fmt.Errorf("item %q: %w: %q", it.ID, ErrInvalidCategory, it.Category)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", it.ID)
		}
		c.byID[it.ID] = Entry{Item: it}
	}

	for i := range c.combos {
		cb := &c.combos[i]
		if err := validatePrice(cb.ID, cb.Price); err != nil {
			return nil, err
		}
		if len(cb.Items) == 0 {
			return nil, fmt.Errorf("combo %q has no items", cb.ID)
		}
		if _, dup := c.byID[cb.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", cb.ID)
		}

		// A combo must cost less than buying its constituents separately.
		sum := decimal.Zero
		for _, itemID := range cb.Items {
			entry, ok := c.byID[itemID]
			if !ok || entry.IsCombo() {
				return nil, fmt.Errorf("combo %q: constituent %q: %w", cb.ID, itemID, ErrNotFound)
			}
			sum = sum.Add(entry.Item.Price)
		}
		if cb.Price.GreaterThanOrEqual(sum) {
			return nil, fmt.Errorf("combo %q price %s is not below constituent sum %s", cb.ID, cb.Price, sum)
		}
		cb.Savings = sum.Sub(cb.Price)

		c.byID[cb.ID] = Entry{Combo: cb}
	}

	return c, nil
}

// ListItems returns menu entries, optionally restricted to one category.
// An empty category means all items.
func (c *Catalog) ListItems(category string) ([]MenuEntry, error) {
	if category == "" {
		return c.items, nil
	}
	if !validCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	var out []MenuEntry
	for _, it := range c.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

// ListCombos returns all combo bundles.
func (c *Catalog) ListCombos() []ComboEntry {
	return c.combos
}

// Resolve looks up an item or combo by ID.
func (c *Catalog) Resolve(id string) (Entry, error) {
	entry, ok := c.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return entry, nil
}

func validCategory(s string) bool {
	switch s {
	case enum.CategoryMain, enum.CategorySide, enum.CategoryDrink:
		return true
	}
	return false
}

func validatePrice(id string, p decimal.Decimal) error {
	if !p.IsPositive() || !p.IsInteger() {
		return fmt.Errorf("entry %q: price must be a positive whole amount, got %s", id, p)
	}
	return nil
}
