package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robocafe/api/internal/enum"
)

// Memory is the single source of truth for orders in a single-process
// deployment. A mutex serializes mutations so two concurrent status updates
// to the same order resolve deterministically: the transition check and the
// write happen under one lock acquisition.
type Memory struct {
	mu      sync.RWMutex
	orders  map[string]*Order
	seq     map[string]uint64 // insertion sequence, tie-breaker for equal timestamps
	nextSeq uint64

	subMu   sync.RWMutex
	subs    map[uint64]*subscriber
	nextSub uint64
}

type subscriber struct {
	filter string
	fn     func(Event)
}

func NewMemory() *Memory {
	return &Memory{
		orders: make(map[string]*Order),
		seq:    make(map[string]uint64),
		subs:   make(map[uint64]*subscriber),
	}
}

// Create appends the order to the collection. The identifier must not
// already exist.
func (s *Memory) Create(ctx context.Context, o Order) error {
	s.mu.Lock()
	if _, exists := s.orders[o.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrConflict, o.ID)
	}
	stored := o
	s.orders[o.ID] = &stored
	s.nextSeq++
	s.seq[o.ID] = s.nextSeq
	s.mu.Unlock()

	s.notify(Event{Type: enum.EventOrderCreated, Order: o})
	return nil
}

// Get returns the order with the given ID.
func (s *Memory) Get(ctx context.Context, id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *o, nil
}

// List returns orders newest-first by creation timestamp. An empty
// statusFilter returns everything.
func (s *Memory) List(ctx context.Context, statusFilter string) ([]Order, error) {
	s.mu.RLock()
	out := make([]Order, 0, len(s.orders))
	seqs := make(map[string]uint64, len(s.orders))
	for id, o := range s.orders {
		if statusFilter != "" && o.Status != statusFilter {
			continue
		}
		out = append(out, *o)
		seqs[id] = s.seq[id]
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return seqs[out[i].ID] > seqs[out[j].ID]
	})
	return out, nil
}

// UpdateStatus advances an order through the workflow and stamps UpdatedAt.
// The read-modify-write is atomic with respect to other UpdateStatus calls
// on the same order.
func (s *Memory) UpdateStatus(ctx context.Context, id, newStatus string) (Order, error) {
	s.mu.Lock()
	o, ok := s.orders[id]
	if !ok {
		s.mu.Unlock()
		return Order{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := ValidateTransition(o.Status, newStatus); err != nil {
		s.mu.Unlock()
		return Order{}, err
	}
	now := time.Now().UTC()
	o.Status = newStatus
	o.UpdatedAt = &now
	updated := *o
	s.mu.Unlock()

	s.notify(Event{Type: enum.EventOrderUpdated, Order: updated})
	return updated, nil
}

// ClearAll empties the collection. Administrative operation.
func (s *Memory) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	s.orders = make(map[string]*Order)
	s.seq = make(map[string]uint64)
	s.mu.Unlock()

	s.notify(Event{Type: enum.EventOrdersClear})
	return nil
}

// Count reports how many orders are held.
func (s *Memory) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// Subscribe registers a callback for order events. With a non-empty filter
// only events whose order carries that status are delivered; clear events
// are delivered to every subscriber. Callbacks run synchronously on the
// mutating goroutine and must not block.
func (s *Memory) Subscribe(statusFilter string, fn func(Event)) Subscription {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs[id] = &subscriber{filter: statusFilter, fn: fn}
	return &memorySubscription{store: s, id: id}
}

type memorySubscription struct {
	store *Memory
	id    uint64
	once  sync.Once
}

func (m *memorySubscription) Cancel() {
	m.once.Do(func() {
		m.store.subMu.Lock()
		delete(m.store.subs, m.id)
		m.store.subMu.Unlock()
	})
}

// notify delivers an event to matching subscribers. The data lock is not
// held here, so callbacks may call back into the store.
func (s *Memory) notify(e Event) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, sub := range s.subs {
		if sub.filter != "" && e.Type != enum.EventOrdersClear && e.Order.Status != sub.filter {
			continue
		}
		sub.fn(e)
	}
}
