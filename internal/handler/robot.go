package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/robocafe/api/internal/logger"
	"github.com/robocafe/api/internal/store"
)

// DestinationTracker exposes the table of the most recently submitted
// order. Satisfied by *service.OrderService.
type DestinationTracker interface {
	LastDestination() (string, bool)
}

// RobotHandler serves the robot bridge endpoints: the table poll consumed
// by the robot firmware and the staff dispatch action.
type RobotHandler struct {
	svc   OrderServicer
	dests DestinationTracker
	log   *logger.Logger
}

func NewRobotHandler(svc OrderServicer, dests DestinationTracker, log *logger.Logger) *RobotHandler {
	return &RobotHandler{svc: svc, dests: dests, log: log}
}

type tableResponse struct {
	TableNumber string `json:"tableNumber"`
}

type dispatchRequest struct {
	OrderID string `json:"orderId"`
}

type dispatchResponse struct {
	Message     string        `json:"message"`
	Order       orderResponse `json:"order"`
	Destination string        `json:"destination"`
	Timestamp   time.Time     `json:"timestamp"`
}

// Table handles GET /api/table. Returns the destination of the most
// recently submitted order, or an empty string before the first order.
func (h *RobotHandler) Table(w http.ResponseWriter, r *http.Request) {
	dest, ok := h.dests.LastDestination()
	if !ok {
		writeJSON(w, http.StatusOK, tableResponse{TableNumber: ""})
		return
	}
	writeJSON(w, http.StatusOK, tableResponse{TableNumber: dest})
}

// Dispatch handles POST /api/robot/dispatch. Sends the robot to the
// order's table and marks the order delivered in the same step.
func (h *RobotHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "orderId is required"})
		return
	}

	order, cmd, err := h.svc.DispatchRobot(r.Context(), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		case errors.Is(err, store.ErrInvalidTransition):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			h.log.Error("robot_dispatch", "dispatch failed", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dispatchResponse{
		Message:     "Robot dispatched to table " + cmd.Destination,
		Order:       toOrderResponse(order),
		Destination: cmd.Destination,
		Timestamp:   cmd.Timestamp,
	})
}
