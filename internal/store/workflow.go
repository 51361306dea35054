package store

import (
	"fmt"

	"github.com/robocafe/api/internal/enum"
)

// allowedTransitions defines valid status transitions.
// Key is current status, value is the set of statuses it can advance to.
// delivered is terminal, so it has no entry.
var allowedTransitions = map[string][]string{
	enum.OrderStatusPending:   {enum.OrderStatusPreparing},
	enum.OrderStatusPreparing: {enum.OrderStatusDelivered},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case enum.OrderStatusPending, enum.OrderStatusPreparing, enum.OrderStatusDelivered:
		return true
	}
	return false
}

// ValidateTransition checks that an order may advance from current to next.
// Status only moves forward; it never regresses or skips a state.
func ValidateTransition(current, next string) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("%w: cannot transition from %s", ErrInvalidTransition, current)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, current, next)
}
