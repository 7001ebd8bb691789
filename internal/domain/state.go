package domain

// State holds the three collections owned by one storefront.
type State struct {
	Products []Product
	Cart     []CartLine
	Orders   []Order
}

// Clone returns a deep copy, so a mutation can be prepared off to the side
// and only swapped in once it has been persisted.
func (s *State) Clone() *State {
	c := &State{
		Products: make([]Product, len(s.Products)),
		Cart:     make([]CartLine, len(s.Cart)),
		Orders:   make([]Order, len(s.Orders)),
	}
	copy(c.Products, s.Products)
	copy(c.Cart, s.Cart)
	for i, o := range s.Orders {
		o.Items = append([]OrderItem(nil), o.Items...)
		c.Orders[i] = o
	}
	return c
}

// ProductIndex returns the catalog position of id or -1.
func (s *State) ProductIndex(id string) int {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return i
		}
	}
	return -1
}

// Product returns a pointer into the catalog, or nil when id is unknown.
func (s *State) Product(id string) *Product {
	if i := s.ProductIndex(id); i >= 0 {
		return &s.Products[i]
	}
	return nil
}

// LineIndex returns the cart position of the line for productID or -1.
func (s *State) LineIndex(productID string) int {
	for i := range s.Cart {
		if s.Cart[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// RemoveLines drops every cart line for productID and reports how many went.
func (s *State) RemoveLines(productID string) int {
	kept := s.Cart[:0]
	removed := 0
	for _, l := range s.Cart {
		if l.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	s.Cart = kept
	return removed
}

// HasOrder reports whether an order with id already exists.
func (s *State) HasOrder(id string) bool {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return true
		}
	}
	return false
}
