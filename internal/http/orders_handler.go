package http

import (
	"net/http"

	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	sf Storefront
}

func NewOrdersHandler(sf Storefront) *OrdersHandler {
	return &OrdersHandler{sf: sf}
}

type OrdersResponseDTO struct {
	Orders []domain.Order `json:"orders"`
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, OrdersResponseDTO{Orders: h.sf.Orders()})
}

// GET /api/v1/orders/{id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.sf.Order(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, "")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// GET /api/v1/orders/{id}/bill
// Plain text by default, JSON with ?format=json.
func (h *OrdersHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	order, err := h.sf.Order(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, "")
		return
	}

	bill := checkout.NewBill(order)
	if r.URL.Query().Get("format") == "json" {
		respondJSON(w, http.StatusOK, bill)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(bill.String()))
}
