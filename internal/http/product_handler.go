package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	sf      Storefront
	timeout time.Duration
}

func NewProductHandler(sf Storefront, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		sf:      sf,
		timeout: timeout,
	}
}

// formValue accepts a JSON string or number, keeping the raw text so that
// price and stock parse the same way as form input.
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}
	*v = formValue(data)
	return nil
}

type ProductRequestDTO struct {
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Price    formValue `json:"price"`
	Stock    formValue `json:"stock"`
	Image    string    `json:"image"`
}

func (d ProductRequestDTO) input(id string) catalog.ProductInput {
	return catalog.ProductInput{
		ID:       id,
		Name:     d.Name,
		Category: d.Category,
		Price:    string(d.Price),
		Stock:    string(d.Stock),
		Image:    d.Image,
	}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

// GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: h.sf.Products()})
}

// GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.sf.FindProduct(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, "")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, "")
}

// PUT /api/v1/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, chi.URLParam(r, "id"))
}

func (h *ProductHandler) upsert(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	p, res, err := h.sf.UpsertProduct(ctx, req.input(id))
	if err != nil {
		handleError(w, err, res.Status.Message)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	respondJSON(w, status, newActionResponse(res, p))
}

// DELETE /api/v1/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.sf.DeleteProduct(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, res.Status.Message)
		return
	}
	respondJSON(w, http.StatusOK, newActionResponse(res, nil))
}
