package catalog

import (
	"strconv"
	"strings"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/idgen"
	"github.com/shopspring/decimal"
)

const DefaultCategory = "Clothes"

// ProductInput is the raw product form as submitted by the view.
type ProductInput struct {
	ID       string
	Name     string
	Category string
	Price    string
	Stock    string
	Image    string
}

// ParseInput turns form values into a product. Missing or non-numeric
// price and stock become 0, and a missing id is taken from ids.
func ParseInput(in ProductInput, ids idgen.Generator) domain.Product {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = ids.ProductID()
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}
	return domain.Product{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Category: category,
		Price:    parsePrice(in.Price),
		Stock:    parseStock(in.Stock),
		Image:    strings.TrimSpace(in.Image),
	}
}

func parsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseStock(s string) int {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		// "12.0" style input still counts as 12
		d, derr := decimal.NewFromString(s)
		if derr != nil {
			return 0
		}
		n = int(d.IntPart())
	}
	if n < 0 {
		return 0
	}
	return n
}
