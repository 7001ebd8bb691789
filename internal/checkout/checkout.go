package checkout

import (
	"errors"
	"time"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/idgen"
)

// maxIDAttempts bounds how often a colliding order id is regenerated.
const maxIDAttempts = 5

var ErrDuplicateOrderID = errors.New("could not generate a unique order id")

// Engine converts a cart into an order and adjusts stock.
type Engine struct {
	ids   idgen.Generator
	clock idgen.Clock
}

func NewEngine(ids idgen.Generator, clock idgen.Clock) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{ids: ids, clock: clock}
}

// PayNow places an order for every cart line whose product still exists,
// decrements stock and clears the cart. The state is only touched once
// every check has passed, so an error leaves it as it was.
func (e *Engine) PayNow(state *domain.State) (domain.Order, error) {
	items := cart.New(state).Snapshot()
	if len(items) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	id, err := e.orderID(state)
	if err != nil {
		return domain.Order{}, err
	}

	totals := domain.TotalsOf(items)
	order := domain.Order{
		ID:        id,
		Items:     items,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		CreatedAt: e.clock(),
	}

	state.Orders = append(state.Orders, order)
	for _, it := range items {
		if p := state.Product(it.ProductID); p != nil {
			p.Stock = max(0, p.Stock-it.Qty)
		}
	}
	cart.New(state).Clear()

	return order, nil
}

func (e *Engine) orderID(state *domain.State) (string, error) {
	for range maxIDAttempts {
		id := e.ids.OrderID()
		if !state.HasOrder(id) {
			return id, nil
		}
	}
	return "", ErrDuplicateOrderID
}
