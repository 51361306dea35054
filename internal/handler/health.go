package handler

import (
	"context"
	"net/http"
	"time"
)

// OrderCounter reports how many orders the store holds.
// Satisfied by *service.OrderService.
type OrderCounter interface {
	Count(ctx context.Context) int
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	counter OrderCounter
}

func NewHealthHandler(counter OrderCounter) *HealthHandler {
	return &HealthHandler{counter: counter}
}

type healthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	OrdersCount int       `json:"ordersCount"`
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "OK",
		Timestamp:   time.Now().UTC(),
		OrdersCount: h.counter.Count(r.Context()),
	})
}
