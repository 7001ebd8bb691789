package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/events"
	"github.com/fjod/storefront/internal/idgen"
	"github.com/fjod/storefront/internal/report"
	"github.com/fjod/storefront/internal/repository"
	"github.com/fjod/storefront/internal/storage"
	"go.uber.org/zap"
)

// Action names used in statuses and change notifications.
const (
	ActionUpsertProduct  = "upsert_product"
	ActionDeleteProduct  = "delete_product"
	ActionAddToCart      = "add_to_cart"
	ActionSetCartQty     = "set_cart_qty"
	ActionRemoveFromCart = "remove_from_cart"
	ActionClearCart      = "clear_cart"
	ActionPayNow         = "pay_now"
)

var ErrClosed = errors.New("storefront is closed")

// Status is the outcome of the last action, shown to the user as feedback.
type Status struct {
	Action  string    `json:"action"`
	OK      bool      `json:"ok"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Result accompanies every action. Changed is true when the state was
// replaced, Version is the change sequence number views can poll against.
type Result struct {
	Status  Status `json:"status"`
	Changed bool   `json:"changed"`
	Version uint64 `json:"version"`
}

type Options struct {
	IDs    idgen.Generator
	Clock  idgen.Clock
	Bus    *events.Bus
	Logger *zap.Logger
}

// Snapshot is a consistent read of everything a view redraws from.
type Snapshot struct {
	Version  uint64
	Status   Status
	Products []domain.Product
	Cart     CartView
	Orders   []domain.Order
}

// CartView is the cart resolved against the current catalog.
type CartView struct {
	Items  []domain.OrderItem `json:"items"`
	Totals domain.Totals      `json:"totals"`
}

// Storefront owns one state and serializes every action on it.
type Storefront struct {
	mu     sync.RWMutex
	state  *domain.State
	last   Status
	closed bool

	store    storage.Store
	repo     *repository.Repository
	checkout *checkout.Engine
	ids      idgen.Generator
	clock    idgen.Clock
	bus      *events.Bus
	logger   *zap.Logger
}

// Open loads the state from store, seeding the catalog on first run, and
// writes it back so a fresh store holds the seed products.
func Open(ctx context.Context, store storage.Store, opts Options) (*Storefront, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.IDs == nil {
		opts.IDs = idgen.New(opts.Clock)
	}
	if opts.Bus == nil {
		opts.Bus = events.NewBus()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	repo := repository.NewRepository(store)
	state, err := repo.Load(ctx, func() []domain.Product { return catalog.Seed(opts.IDs) })
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	if err := repo.Save(ctx, state); err != nil {
		return nil, err
	}

	opts.Logger.Info("storefront opened",
		zap.Int("products", len(state.Products)),
		zap.Int("cart_lines", len(state.Cart)),
		zap.Int("orders", len(state.Orders)))

	return &Storefront{
		state:    state,
		store:    store,
		repo:     repo,
		checkout: checkout.NewEngine(opts.IDs, opts.Clock),
		ids:      opts.IDs,
		clock:    opts.Clock,
		bus:      opts.Bus,
		logger:   opts.Logger,
	}, nil
}

// mutation applies one action to a scratch copy of the state. It returns the
// user-facing message and whether anything changed.
type mutation func(state *domain.State) (message string, changed bool, err error)

// mutate runs m against a clone, persists the clone and only then swaps it
// in. On any error the current state is left untouched.
func (s *Storefront) mutate(ctx context.Context, action string, m mutation) (Result, error) {
	s.mu.Lock()
	res, err := s.apply(ctx, action, m)
	s.last = res.Status
	// numbered under the lock so versions follow the order states were applied
	change := s.bus.Stamp(events.Change{
		Action:  action,
		OK:      res.Status.OK,
		Message: res.Status.Message,
		At:      res.Status.At,
	})
	s.mu.Unlock()

	s.bus.Deliver(ctx, change)
	res.Version = change.Seq

	if err != nil {
		s.logger.Info("action rejected",
			zap.String("action", action),
			zap.String("message", res.Status.Message))
	} else {
		s.logger.Debug("action applied",
			zap.String("action", action),
			zap.Bool("changed", res.Changed))
	}
	return res, err
}

func (s *Storefront) apply(ctx context.Context, action string, m mutation) (Result, error) {
	status := Status{Action: action, At: s.clock()}
	fail := func(err error) (Result, error) {
		status.Message = err.Error()
		return Result{Status: status}, err
	}

	if s.closed {
		return fail(ErrClosed)
	}

	next := s.state.Clone()
	msg, changed, err := m(next)
	if err != nil {
		return fail(err)
	}
	if changed {
		if err := s.repo.Save(ctx, next); err != nil {
			s.logger.Error("failed to persist state", zap.String("action", action), zap.Error(err))
			return fail(err)
		}
		s.state = next
	}

	status.OK = true
	status.Message = msg
	return Result{Status: status, Changed: changed}, nil
}

// UpsertProduct adds the product when its id is new or unset, otherwise
// replaces it.
func (s *Storefront) UpsertProduct(ctx context.Context, in catalog.ProductInput) (domain.Product, Result, error) {
	var saved domain.Product
	res, err := s.mutate(ctx, ActionUpsertProduct, func(state *domain.State) (string, bool, error) {
		p := catalog.ParseInput(in, s.ids)
		created, err := catalog.New(state).Upsert(p)
		if err != nil {
			return "", false, err
		}
		saved = *state.Product(p.ID)
		if created {
			return "Product added.", true, nil
		}
		return "Product updated.", true, nil
	})
	return saved, res, err
}

func (s *Storefront) DeleteProduct(ctx context.Context, id string) (Result, error) {
	return s.mutate(ctx, ActionDeleteProduct, func(state *domain.State) (string, bool, error) {
		if err := catalog.New(state).Delete(id); err != nil {
			return "", false, err
		}
		return "Product deleted.", true, nil
	})
}

func (s *Storefront) AddToCart(ctx context.Context, productID string, delta int) (Result, error) {
	return s.mutate(ctx, ActionAddToCart, func(state *domain.State) (string, bool, error) {
		if err := cart.New(state).Add(productID, delta); err != nil {
			return "", false, err
		}
		return fmt.Sprintf("Added %s to cart.", state.Product(productID).Name), true, nil
	})
}

// SetCartQty sets a line's quantity. Values above stock are clamped rather
// than rejected, zero or less removes the line.
func (s *Storefront) SetCartQty(ctx context.Context, productID string, qty int) (Result, error) {
	return s.mutate(ctx, ActionSetCartQty, func(state *domain.State) (string, bool, error) {
		clamped, err := cart.New(state).SetQty(productID, qty)
		if err != nil {
			return "", false, err
		}
		if clamped {
			p := state.Product(productID)
			return fmt.Sprintf("Only %d of %s in stock, quantity adjusted.", p.Stock, p.Name), true, nil
		}
		if state.LineIndex(productID) < 0 {
			return "Item removed from cart.", true, nil
		}
		return "Cart updated.", true, nil
	})
}

func (s *Storefront) RemoveFromCart(ctx context.Context, productID string) (Result, error) {
	return s.mutate(ctx, ActionRemoveFromCart, func(state *domain.State) (string, bool, error) {
		if !cart.New(state).Remove(productID) {
			return "Item was not in the cart.", false, nil
		}
		return "Item removed from cart.", true, nil
	})
}

func (s *Storefront) ClearCart(ctx context.Context) (Result, error) {
	return s.mutate(ctx, ActionClearCart, func(state *domain.State) (string, bool, error) {
		if len(state.Cart) == 0 {
			return "Cart is already empty.", false, nil
		}
		cart.New(state).Clear()
		return "Cart cleared.", true, nil
	})
}

// PayNow turns the cart into an order. Stock, cart and orders are written in
// one batch, so a failed save leaves all three as they were.
func (s *Storefront) PayNow(ctx context.Context) (domain.Order, Result, error) {
	var order domain.Order
	res, err := s.mutate(ctx, ActionPayNow, func(state *domain.State) (string, bool, error) {
		o, err := s.checkout.PayNow(state)
		if err != nil {
			return "", false, err
		}
		order = o
		return fmt.Sprintf("Order %s placed, total %s.", o.ID, checkout.FormatMoney(o.Total)), true, nil
	})
	return order, res, err
}

// Snapshot reads every collection, the last status and the version under a
// single lock, so they all describe the same state.
func (s *Storefront) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := cart.New(s.state).Snapshot()
	return Snapshot{
		Version:  s.bus.Version(),
		Status:   s.last,
		Products: catalog.New(s.state).List(),
		Cart:     CartView{Items: items, Totals: domain.TotalsOf(items)},
		Orders:   s.state.Clone().Orders,
	}
}

func (s *Storefront) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.New(s.state).List()
}

func (s *Storefront) FindProduct(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.New(s.state).Find(id)
}

func (s *Storefront) Cart() CartView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := cart.New(s.state)
	items := c.Snapshot()
	return CartView{Items: items, Totals: domain.TotalsOf(items)}
}

// Orders returns every order, oldest first.
func (s *Storefront) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone().Orders
}

func (s *Storefront) Order(id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.state.Orders {
		if o.ID == id {
			o.Items = append([]domain.OrderItem(nil), o.Items...)
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("%w: order %q", domain.ErrNotFound, id)
}

func (s *Storefront) Report(ym report.YearMonth) report.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return report.Summarize(s.state.Orders, ym)
}

// CurrentMonth is the month the storefront clock is in.
func (s *Storefront) CurrentMonth() report.YearMonth {
	return report.CurrentYearMonth(s.clock())
}

func (s *Storefront) LastStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Storefront) Version() uint64 {
	return s.bus.Version()
}

// Close writes the state one last time and closes the store. Later actions
// fail with ErrClosed.
func (s *Storefront) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	saveErr := s.repo.Save(ctx, s.state)
	closeErr := s.store.Close()
	if saveErr != nil {
		return saveErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close store: %w", closeErr)
	}
	s.logger.Info("storefront closed")
	return nil
}
