package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/robocafe/api/internal/cart"
	"github.com/robocafe/api/internal/catalog"
	"github.com/robocafe/api/internal/logger"
	"github.com/robocafe/api/internal/payment"
	"github.com/robocafe/api/internal/robot"
	"github.com/robocafe/api/internal/service"
	"github.com/robocafe/api/internal/store"
)

var errInvalidQuantity = errors.New("quantity must be > 0")

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	Submit(ctx context.Context, c *cart.Cart, destination, notes string) (store.Order, error)
	List(ctx context.Context, statusFilter string) ([]store.Order, error)
	UpdateStatus(ctx context.Context, orderID, newStatus string) (store.Order, error)
	DispatchRobot(ctx context.Context, orderID string) (store.Order, robot.Command, error)
	ClearAll(ctx context.Context) error
}

// OrderHandler handles the order endpoints.
type OrderHandler struct {
	svc      OrderServicer
	catalog  *catalog.Catalog
	payments payment.Processor
	log      *logger.Logger
}

// NewOrderHandler creates a new OrderHandler. payments may be nil when the
// simulated payment step is disabled.
func NewOrderHandler(svc OrderServicer, cat *catalog.Catalog, payments payment.Processor, log *logger.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, catalog: cat, payments: payments, log: log}
}

// --- Request / Response types ---

type itemRef struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	TableNumber string    `json:"tableNumber"`
	Items       []itemRef `json:"items"`
	Combos      []itemRef `json:"combos"`
	Notes       string    `json:"notes"`
	// TotalAmount is accepted for compatibility with older clients but
	// never trusted; the total is recomputed server-side.
	TotalAmount json.Number `json:"totalAmount"`
}

type createOrderResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
	Total   string `json:"total"`
}

type listOrdersResponse struct {
	Orders []orderResponse `json:"orders"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateStatusResponse struct {
	Message string        `json:"message"`
	Order   orderResponse `json:"order"`
}

// --- Handlers ---

// Create handles POST /api/order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.TableNumber == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Table number is required."})
		return
	}
	if len(req.Items) == 0 && len(req.Combos) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "At least one item or combo is required."})
		return
	}

	c := cart.New(h.catalog)
	if err := fillCart(c, req.Items, false); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := fillCart(c, req.Combos, true); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if h.payments != nil {
		if err := h.payments.Process(r.Context(), c.Total()); err != nil {
			h.log.Error("payment_process", "payment simulation interrupted", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
	}

	order, err := h.svc.Submit(r.Context(), c, req.TableNumber, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) || errors.Is(err, service.ErrInvalidDestination) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.log.Error("order_create", "create order failed", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, createOrderResponse{
		Message: fmt.Sprintf("Order for table %s received.", order.TableNumber),
		OrderID: order.ID,
		Total:   order.Total.String(),
	})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" && !store.ValidStatus(statusFilter) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	orders, err := h.svc.List(r.Context(), statusFilter)
	if err != nil {
		h.log.Error("order_list", "list orders failed", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, listOrdersResponse{Orders: resp})
}

// UpdateStatus handles PUT /api/orders/{orderId}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}
	if !store.ValidStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		case errors.Is(err, store.ErrInvalidTransition):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			h.log.Error("order_update_status", "update status failed", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, updateStatusResponse{
		Message: fmt.Sprintf("Order status updated to %s", updated.Status),
		Order:   toOrderResponse(updated),
	})
}

// Clear handles DELETE /api/orders. Administrative clear-all.
func (h *OrderHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearAll(r.Context()); err != nil {
		h.log.Error("order_clear", "clear orders failed", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "All orders cleared."})
}

// --- Helpers ---

// fillCart adds each referenced entry to the cart at its requested
// quantity. Prices come from the catalog, never from the client.
func fillCart(c *cart.Cart, refs []itemRef, isCombo bool) error {
	for i, ref := range refs {
		if ref.Quantity <= 0 {
			return fmt.Errorf("entry[%d] %q: %w", i, ref.ID, errInvalidQuantity)
		}
		if _, err := c.AddLine(ref.ID, isCombo); err != nil {
			return fmt.Errorf("entry[%d]: %w", i, err)
		}
		if ref.Quantity > 1 {
			idx := lineIndex(c, ref.ID, isCombo)
			if err := c.AdjustQuantity(idx, ref.Quantity-1); err != nil {
				return fmt.Errorf("entry[%d]: %w", i, err)
			}
		}
	}
	return nil
}

func lineIndex(c *cart.Cart, entryID string, isCombo bool) int {
	for i, l := range c.Lines() {
		if l.EntryID == entryID && l.IsCombo == isCombo {
			return i
		}
	}
	return -1
}
