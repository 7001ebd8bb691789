package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/domain"
)

type CheckoutHandler struct {
	sf      Storefront
	timeout time.Duration
}

func NewCheckoutHandler(sf Storefront, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		sf:      sf,
		timeout: timeout,
	}
}

type CheckoutResponseDTO struct {
	Order domain.Order  `json:"order"`
	Bill  checkout.Bill `json:"bill"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) PayNow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, res, err := h.sf.PayNow(ctx)
	if err != nil {
		handleError(w, err, res.Status.Message)
		return
	}

	respondJSON(w, http.StatusCreated, newActionResponse(res, CheckoutResponseDTO{
		Order: order,
		Bill:  checkout.NewBill(order),
	}))
}
