package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/robocafe/api/internal/cart"
	"github.com/robocafe/api/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// --- Shared response types ---

type lineResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	IsCombo  bool   `json:"isCombo"`
}

type orderResponse struct {
	ID          string         `json:"id"`
	TableNumber string         `json:"tableNumber"`
	Items       []lineResponse `json:"items"`
	TotalAmount string         `json:"totalAmount"`
	Status      string         `json:"status"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   *time.Time     `json:"updatedAt,omitempty"`
}

func toLineResponse(l cart.Line) lineResponse {
	return lineResponse{
		ID:       l.EntryID,
		Name:     l.Name,
		Price:    l.UnitPrice.String(),
		Quantity: l.Quantity,
		IsCombo:  l.IsCombo,
	}
}

func toOrderResponse(o store.Order) orderResponse {
	items := make([]lineResponse, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = toLineResponse(l)
	}
	return orderResponse{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		Items:       items,
		TotalAmount: o.Total.String(),
		Status:      o.Status,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
