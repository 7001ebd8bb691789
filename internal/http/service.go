package http

import (
	"context"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/report"
	"github.com/fjod/storefront/internal/storefront"
)

// Storefront is what the handlers need from *storefront.Storefront.
type Storefront interface {
	Products() []domain.Product
	FindProduct(id string) (domain.Product, error)
	UpsertProduct(ctx context.Context, in catalog.ProductInput) (domain.Product, storefront.Result, error)
	DeleteProduct(ctx context.Context, id string) (storefront.Result, error)

	Cart() storefront.CartView
	AddToCart(ctx context.Context, productID string, delta int) (storefront.Result, error)
	SetCartQty(ctx context.Context, productID string, qty int) (storefront.Result, error)
	RemoveFromCart(ctx context.Context, productID string) (storefront.Result, error)
	ClearCart(ctx context.Context) (storefront.Result, error)

	PayNow(ctx context.Context) (domain.Order, storefront.Result, error)
	Orders() []domain.Order
	Order(id string) (domain.Order, error)

	Report(ym report.YearMonth) report.Summary
	CurrentMonth() report.YearMonth

	LastStatus() storefront.Status
	Version() uint64
	Snapshot() storefront.Snapshot
}

var _ Storefront = (*storefront.Storefront)(nil)
