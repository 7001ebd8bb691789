package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/storage"
)

// Storage keys for the three collections.
const (
	KeyProducts = "shop_products"
	KeyCart     = "shop_cart"
	KeyOrders   = "shop_orders"
)

// Repository loads and saves a storefront state through a key-value store.
type Repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load reads the three collections. A missing products key yields seed(),
// missing cart and orders keys start empty.
func (r *Repository) Load(ctx context.Context, seed func() []domain.Product) (*domain.State, error) {
	state := &domain.State{}

	found, err := r.load(ctx, KeyProducts, &state.Products)
	if err != nil {
		return nil, err
	}
	if !found && seed != nil {
		state.Products = seed()
	}
	if _, err := r.load(ctx, KeyCart, &state.Cart); err != nil {
		return nil, err
	}
	if _, err := r.load(ctx, KeyOrders, &state.Orders); err != nil {
		return nil, err
	}
	return state, nil
}

func (r *Repository) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Save writes all three collections as a single batch.
func (r *Repository) Save(ctx context.Context, state *domain.State) error {
	entries := make(map[string]string, 3)
	for key, v := range map[string]any{
		KeyProducts: nonNil(state.Products),
		KeyCart:     nonNil(state.Cart),
		KeyOrders:   nonNil(state.Orders),
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		entries[key] = string(data)
	}

	if err := r.store.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
