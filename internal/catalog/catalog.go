package catalog

import (
	"fmt"
	"strings"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Catalog manages the products of a storefront state.
type Catalog struct {
	state *domain.State
}

func New(state *domain.State) *Catalog {
	return &Catalog{state: state}
}

// Upsert inserts p when its id is unknown, otherwise replaces the existing
// product in place. Cart lines for a replaced product are clamped to its new stock.
func (c *Catalog) Upsert(p domain.Product) (created bool, err error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Image = strings.TrimSpace(p.Image)
	if p.Name == "" || p.Image == "" {
		return false, fmt.Errorf("%w: name and image are required", domain.ErrValidation)
	}
	if p.ID == "" {
		return false, fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}
	if p.Price.IsNegative() {
		p.Price = decimal.Zero
	}
	if p.Stock < 0 {
		p.Stock = 0
	}

	i := c.state.ProductIndex(p.ID)
	if i < 0 {
		c.state.Products = append(c.state.Products, p)
		return true, nil
	}

	c.state.Products[i] = p
	c.clampLine(p)
	return false, nil
}

func (c *Catalog) clampLine(p domain.Product) {
	li := c.state.LineIndex(p.ID)
	if li < 0 || c.state.Cart[li].Qty <= p.Stock {
		return
	}
	if p.Stock == 0 {
		c.state.RemoveLines(p.ID)
		return
	}
	c.state.Cart[li].Qty = p.Stock
}

// Delete removes the product and every cart line that references it.
func (c *Catalog) Delete(id string) error {
	i := c.state.ProductIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: product %q", domain.ErrNotFound, id)
	}
	c.state.Products = append(c.state.Products[:i], c.state.Products[i+1:]...)
	c.state.RemoveLines(id)
	return nil
}

func (c *Catalog) Find(id string) (domain.Product, error) {
	p := c.state.Product(id)
	if p == nil {
		return domain.Product{}, fmt.Errorf("%w: product %q", domain.ErrNotFound, id)
	}
	return *p, nil
}

// List returns a copy of the catalog in display order.
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(c.state.Products))
	copy(out, c.state.Products)
	return out
}
