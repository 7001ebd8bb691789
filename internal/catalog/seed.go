package catalog

import (
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/idgen"
	"github.com/shopspring/decimal"
)

// Seed returns the products a brand-new storefront starts with.
func Seed(ids idgen.Generator) []domain.Product {
	seeds := []struct {
		name  string
		price string
		stock int
		image string
	}{
		{"T-Shirt", "19.99", 20, "https://images.pexels.com/photos/2868242/pexels-photo-2868242.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{"Dress", "39.99", 15, "https://images.pexels.com/photos/6899889/pexels-photo-6899889.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{"Pant", "29.99", 18, "https://images.pexels.com/photos/1855900/pexels-photo-1855900.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{"Clothes Set", "49.99", 12, "https://images.pexels.com/photos/7931048/pexels-photo-7931048.jpeg?auto=compress&cs=tinysrgb&w=400"},
	}

	products := make([]domain.Product, 0, len(seeds))
	for _, s := range seeds {
		products = append(products, domain.Product{
			ID:       ids.ProductID(),
			Name:     s.name,
			Category: DefaultCategory,
			Price:    decimal.RequireFromString(s.price),
			Stock:    s.stock,
			Image:    s.image,
		})
	}
	return products
}
