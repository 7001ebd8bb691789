package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	sf      Storefront
	timeout time.Duration
}

func NewCartHandler(sf Storefront, timeout time.Duration) *CartHandler {
	return &CartHandler{
		sf:      sf,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sf.Cart())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	delta := 1
	if req.Quantity != nil {
		delta = *req.Quantity
	}

	res, err := h.sf.AddToCart(ctx, req.ProductID, delta)
	if err != nil {
		handleError(w, err, res.Status.Message)
		return
	}
	respondJSON(w, http.StatusCreated, newActionResponse(res, h.sf.Cart()))
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	res, err := h.sf.SetCartQty(ctx, chi.URLParam(r, "product_id"), req.Quantity)
	if err != nil {
		handleError(w, err, res.Status.Message)
		return
	}
	respondJSON(w, http.StatusOK, newActionResponse(res, h.sf.Cart()))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.sf.RemoveFromCart(ctx, chi.URLParam(r, "product_id"))
	if err != nil {
		handleError(w, err, res.Status.Message)
		return
	}
	respondJSON(w, http.StatusOK, newActionResponse(res, h.sf.Cart()))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.sf.ClearCart(ctx)
	if err != nil {
		handleError(w, err, res.Status.Message)
		return
	}
	respondJSON(w, http.StatusOK, newActionResponse(res, h.sf.Cart()))
}
