package handler

import (
	"errors"
	"net/http"

	"github.com/robocafe/api/internal/catalog"
)

// CatalogHandler serves the read-only menu listing.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

type menuItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
}

type comboResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Items   []string `json:"items"`
	Price   string   `json:"price"`
	Savings string   `json:"savings"`
}

// Menu handles GET /api/menu. The optional category query restricts to one
// of main, side, drink.
func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.URL.Query().Get("category"))
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidCategory) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, it := range items {
		resp[i] = menuItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Price:       it.Price.String(),
			Description: it.Description,
			Category:    it.Category,
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": resp})
}

// Combos handles GET /api/combos.
func (h *CatalogHandler) Combos(w http.ResponseWriter, r *http.Request) {
	combos := h.catalog.ListCombos()

	resp := make([]comboResponse, len(combos))
	for i, cb := range combos {
		resp[i] = comboResponse{
			ID:      cb.ID,
			Name:    cb.Name,
			Items:   cb.Items,
			Price:   cb.Price.String(),
			Savings: cb.Savings.String(),
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"combos": resp})
}
