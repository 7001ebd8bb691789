package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Image    string          `json:"image"`
}

// Equal reports whether both products carry the same fields.
// Prices are compared by value, so 19.9 equals 19.90.
func (p Product) Equal(o Product) bool {
	return p.ID == o.ID &&
		p.Name == o.Name &&
		p.Category == o.Category &&
		p.Price.Equal(o.Price) &&
		p.Stock == o.Stock &&
		p.Image == o.Image
}
