package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/storefront"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ActionResponse is returned by every mutating endpoint.
type ActionResponse struct {
	Status  storefront.Status `json:"status"`
	Changed bool              `json:"changed"`
	Version uint64            `json:"version"`
	Data    any               `json:"data,omitempty"`
}

func newActionResponse(res storefront.Result, data any) ActionResponse {
	return ActionResponse{
		Status:  res.Status,
		Changed: res.Changed,
		Version: res.Version,
		Data:    data,
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError maps storefront errors onto HTTP statuses. details carries the
// user-facing status message of a rejected action, if any.
func handleError(w http.ResponseWriter, err error, details string) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, domain.ErrValidation):
		httpStatus = http.StatusBadRequest
		code = "validation_failed"
	case errors.Is(err, domain.ErrNotFound):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		httpStatus = http.StatusConflict
		code = "insufficient_stock"
	case errors.Is(err, domain.ErrEmptyCart):
		httpStatus = http.StatusConflict
		code = "empty_cart"
	case errors.Is(err, checkout.ErrDuplicateOrderID):
		httpStatus = http.StatusConflict
		code = "duplicate_order_id"
	case errors.Is(err, storefront.ErrClosed):
		httpStatus = http.StatusServiceUnavailable
		code = "service_unavailable"
	default:
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  "internal_error",
		})
		return
	}

	respondJSON(w, httpStatus, ErrorResponse{
		Error:   err.Error(),
		Code:    code,
		Details: details,
	})
}
