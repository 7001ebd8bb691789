package cart

import (
	"fmt"

	"github.com/fjod/storefront/internal/domain"
)

// Cart manages the cart lines of a storefront state.
type Cart struct {
	state *domain.State
}

func New(state *domain.State) *Cart {
	return &Cart{state: state}
}

// Add increases the line for productID by delta. A missing line is created
// with qty 1 whatever delta is. A change that would exceed the product's
// stock is rejected and leaves the line as it was.
func (c *Cart) Add(productID string, delta int) error {
	if delta < 1 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	p := c.state.Product(productID)
	if p == nil {
		return fmt.Errorf("%w: product %q", domain.ErrNotFound, productID)
	}
	if p.Stock <= 0 {
		return fmt.Errorf("%w: %s is out of stock", domain.ErrInsufficientStock, p.Name)
	}

	if i := c.state.LineIndex(productID); i >= 0 {
		next := c.state.Cart[i].Qty + delta
		if next > p.Stock {
			return fmt.Errorf("%w: only %d of %s available", domain.ErrInsufficientStock, p.Stock, p.Name)
		}
		c.state.Cart[i].Qty = next
		return nil
	}

	c.state.Cart = append(c.state.Cart, domain.CartLine{ProductID: productID, Qty: 1})
	return nil
}

// SetQty sets the quantity of an existing line. qty <= 0 removes the line and
// a qty above stock is clamped to stock; clamped reports the latter.
func (c *Cart) SetQty(productID string, qty int) (clamped bool, err error) {
	i := c.state.LineIndex(productID)
	if i < 0 {
		return false, fmt.Errorf("%w: %q is not in the cart", domain.ErrNotFound, productID)
	}
	if qty <= 0 {
		c.state.RemoveLines(productID)
		return false, nil
	}
	p := c.state.Product(productID)
	if p == nil {
		c.state.RemoveLines(productID)
		return false, fmt.Errorf("%w: product %q", domain.ErrNotFound, productID)
	}
	if qty > p.Stock {
		qty = p.Stock
		clamped = true
	}
	if qty == 0 {
		c.state.RemoveLines(productID)
		return clamped, nil
	}
	c.state.Cart[i].Qty = qty
	return clamped, nil
}

// Remove deletes the line for productID, reporting whether there was one.
func (c *Cart) Remove(productID string) bool {
	return c.state.RemoveLines(productID) > 0
}

func (c *Cart) Clear() {
	c.state.Cart = nil
}

// Lines returns the lines whose product still exists.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(c.state.Cart))
	for _, l := range c.state.Cart {
		if c.state.Product(l.ProductID) != nil {
			out = append(out, l)
		}
	}
	return out
}

// Snapshot resolves every valid line at the product's current name and price.
func (c *Cart) Snapshot() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(c.state.Cart))
	for _, l := range c.state.Cart {
		p := c.state.Product(l.ProductID)
		if p == nil {
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Qty:       l.Qty,
		})
	}
	return items
}

// Totals computes subtotal, tax and total without touching the state.
func (c *Cart) Totals() domain.Totals {
	return domain.TotalsOf(c.Snapshot())
}
