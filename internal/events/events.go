package events

import (
	"context"
	"sync"
	"time"
)

// Change tells views that the storefront state may have changed.
type Change struct {
	Seq     uint64    `json:"seq"`
	Action  string    `json:"action"`
	OK      bool      `json:"ok"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Handler func(ctx context.Context, c Change)

// Bus fans changes out to subscribers and numbers them for polling views.
type Bus struct {
	mu       sync.RWMutex
	seq      uint64
	nextID   int
	handlers map[int]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers h and returns a func that removes it again.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish stamps c with the next sequence number and delivers it
// synchronously to every subscriber. It returns the stamped change.
func (b *Bus) Publish(ctx context.Context, c Change) Change {
	c = b.Stamp(c)
	b.Deliver(ctx, c)
	return c
}

// Stamp assigns the next sequence number without delivering. Callers that
// must number changes in the order they applied them stamp while holding
// their own lock and Deliver after releasing it.
func (b *Bus) Stamp(c Change) Change {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	c.Seq = b.seq
	return c
}

// Deliver hands an already stamped change to every subscriber.
func (b *Bus) Deliver(ctx context.Context, c Change) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, c)
	}
}

// Version is the sequence number of the last published change.
func (b *Bus) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.seq
}
