package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is a string key-value store holding the serialized storefront collections.
// Consumers define this interface, not the backends.
type Store interface {
	// Get returns the value for key or ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string) error

	// SetMany writes all entries as one batch; backends with transactions
	// make the batch all-or-nothing
	SetMany(ctx context.Context, entries map[string]string) error

	Close() error
}
