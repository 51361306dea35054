package store

import (
	"errors"
	"time"

	"github.com/robocafe/api/internal/cart"
	"github.com/shopspring/decimal"
)

// Errors returned by order stores.
var (
	ErrNotFound            = errors.New("order not found")
	ErrConflict            = errors.New("order id already exists")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrUpstreamUnavailable = errors.New("upstream store unavailable")
)

// Order is the immutable record built from a submitted cart. Only the
// status and UpdatedAt fields change after creation, and only through
// UpdateStatus.
type Order struct {
	ID          string          `json:"id"`
	TableNumber string          `json:"tableNumber"`
	Lines       []cart.Line     `json:"items"`
	Total       decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// Event describes a change observed on the order collection.
type Event struct {
	Type  string `json:"type"`
	Order Order  `json:"order"`
}

// Subscription is the cancellation handle returned by Subscribe.
type Subscription interface {
	Cancel()
}
