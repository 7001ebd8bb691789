package idgen

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator hands out identifiers for new products and orders.
type Generator interface {
	ProductID() string
	OrderID() string
}

// Clock returns the current time.
type Clock func() time.Time

// Default issues UUID product ids and ORD-<unix millis> order ids.
// Order ids never repeat within a process even if the clock stalls or steps back.
type Default struct {
	clock Clock

	mu   sync.Mutex
	last int64
}

func New(clock Clock) *Default {
	if clock == nil {
		clock = time.Now
	}
	return &Default{clock: clock}
}

func (g *Default) ProductID() string {
	return uuid.NewString()
}

func (g *Default) OrderID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.clock().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("ORD-%d", ms)
}

// Sequence yields p-1, p-2, ... and ORD-1, ORD-2, ...
type Sequence struct {
	mu       sync.Mutex
	products int
	orders   int
}

func (s *Sequence) ProductID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products++
	return fmt.Sprintf("p-%d", s.products)
}

func (s *Sequence) OrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders++
	return fmt.Sprintf("ORD-%d", s.orders)
}
