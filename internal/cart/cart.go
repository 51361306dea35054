package cart

import (
	"errors"
	"fmt"

	"github.com/robocafe/api/internal/catalog"
	"github.com/shopspring/decimal"
)

// ErrOutOfRange is returned when a line index does not exist.
var ErrOutOfRange = errors.New("cart line index out of range")

// Line is one cart entry. Name and UnitPrice are snapshotted when the line
// is added so a later catalog price change does not alter an open cart.
type Line struct {
	EntryID   string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	IsCombo   bool            `json:"isCombo"`
}

// Subtotal returns price multiplied by quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart accumulates catalog entries for one customer session. It is not safe
// for concurrent use; a session owns its cart.
type Cart struct {
	catalog *catalog.Catalog
	lines   []Line
}

func New(c *catalog.Catalog) *Cart {
	return &Cart{catalog: c}
}

// AddLine resolves the entry and either bumps the quantity of a matching
// line or appends a new line with quantity 1. Two lines match iff both the
// entry ID and the combo flag are equal.
func (c *Cart) AddLine(entryID string, isCombo bool) (Line, error) {
	entry, err := c.catalog.Resolve(entryID)
	if err != nil {
		return Line{}, err
	}
	if entry.IsCombo() != isCombo {
		return Line{}, fmt.Errorf("%w: %q", catalog.ErrNotFound, entryID)
	}

	for i := range c.lines {
		if c.lines[i].EntryID == entryID && c.lines[i].IsCombo == isCombo {
			c.lines[i].Quantity++
			return c.lines[i], nil
		}
	}

	line := Line{
		EntryID:   entryID,
		Name:      entry.Name(),
		UnitPrice: entry.Price(),
		Quantity:  1,
		IsCombo:   isCombo,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// AdjustQuantity changes a line's quantity by delta. A line whose quantity
// would drop to zero or below is removed, never retained at zero.
func (c *Cart) AdjustQuantity(lineIndex, delta int) error {
	if lineIndex < 0 || lineIndex >= len(c.lines) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, lineIndex)
	}

	q := c.lines[lineIndex].Quantity + delta
	if q <= 0 {
		c.lines = append(c.lines[:lineIndex], c.lines[lineIndex+1:]...)
		return nil
	}
	c.lines[lineIndex].Quantity = q
	return nil
}

// Total sums price×quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Lines returns a copy of the current lines, in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}
