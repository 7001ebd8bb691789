package http

import (
	"net/http"
	"strconv"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/storefront"
)

type StateHandler struct {
	sf Storefront
}

func NewStateHandler(sf Storefront) *StateHandler {
	return &StateHandler{sf: sf}
}

// StateResponseDTO is everything a view needs to redraw.
type StateResponseDTO struct {
	Version  uint64              `json:"version"`
	Status   storefront.Status   `json:"status"`
	Products []domain.Product    `json:"products"`
	Cart     storefront.CartView `json:"cart"`
	Orders   []domain.Order      `json:"orders"`
}

// GET /api/v1/state
// With ?since=<version> it answers 304 while nothing has changed.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	var since uint64
	hasSince := false
	if raw := r.URL.Query().Get("since"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_since", "since must be a version number")
			return
		}
		since, hasSince = v, true
	}

	snap := h.sf.Snapshot()
	if hasSince && since == snap.Version {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	respondJSON(w, http.StatusOK, StateResponseDTO{
		Version:  snap.Version,
		Status:   snap.Status,
		Products: snap.Products,
		Cart:     snap.Cart,
		Orders:   snap.Orders,
	})
}
