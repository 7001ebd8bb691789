package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires every handler under /api/v1.
func NewRouter(sf Storefront, logger *zap.Logger, timeout time.Duration) chi.Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	products := NewProductHandler(sf, timeout)
	cart := NewCartHandler(sf, timeout)
	checkout := NewCheckoutHandler(sf, timeout)
	orders := NewOrdersHandler(sf)
	reports := NewReportHandler(sf)
	state := NewStateHandler(sf)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", state.Get)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Post("/", products.Create)
			r.Get("/{id}", products.Get)
			r.Put("/{id}", products.Update)
			r.Delete("/{id}", products.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.GetCart)
			r.Delete("/", cart.ClearCart)
			r.Post("/items", cart.AddItem)
			r.Put("/items/{product_id}", cart.UpdateQuantity)
			r.Delete("/items/{product_id}", cart.RemoveItem)
		})

		r.Post("/checkout", checkout.PayNow)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.ListOrders)
			r.Get("/{id}", orders.GetOrder)
			r.Get("/{id}/bill", orders.GetBill)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/{month}", reports.Summary)
			r.Get("/{month}/export", reports.Export)
		})
	})

	return r
}
