package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robocafe/api/internal/cart"
	"github.com/robocafe/api/internal/enum"
	"github.com/robocafe/api/internal/logger"
	"github.com/robocafe/api/internal/robot"
	"github.com/robocafe/api/internal/store"
)

// Errors returned by the order service.
var (
	ErrEmptyCart          = errors.New("cart has no lines")
	ErrInvalidDestination = errors.New("invalid destination")
)

// OrderStore defines the store methods the service needs.
// Satisfied by *store.Memory.
type OrderStore interface {
	Create(ctx context.Context, o store.Order) error
	List(ctx context.Context, statusFilter string) ([]store.Order, error)
	UpdateStatus(ctx context.Context, id, newStatus string) (store.Order, error)
	ClearAll(ctx context.Context) error
	Count(ctx context.Context) int
}

// Mirror replicates order state to the alternate persistence path.
// Satisfied by *store.Mirror; nil when no upstream is configured.
type Mirror interface {
	PutOrder(ctx context.Context, o store.Order) error
	PublishEvent(ctx context.Context, e store.Event) error
	Purge(ctx context.Context) error
}

// Dispatcher signals the delivery robot. Satisfied by *robot.Dispatcher.
type Dispatcher interface {
	Dispatch(destination string) robot.Command
}

// OrderService handles the cart-to-order pipeline and the staff-side
// lifecycle actions.
type OrderService struct {
	store  OrderStore
	mirror Mirror
	robot  Dispatcher
	tables map[string]bool
	log    *logger.Logger

	destMu          sync.RWMutex
	lastDestination string
}

func NewOrderService(st OrderStore, mirror Mirror, disp Dispatcher, tables []string, log *logger.Logger) *OrderService {
	valid := make(map[string]bool, len(tables))
	for _, t := range tables {
		valid[t] = true
	}
	return &OrderService{
		store:  st,
		mirror: mirror,
		robot:  disp,
		tables: valid,
		log:    log,
	}
}

// Submit converts a cart into an immutable pending order. The total is
// recomputed from the line snapshots; a client-supplied total is never
// trusted. Creation is all-or-nothing: the order is either fully in the
// store or absent.
func (s *OrderService) Submit(ctx context.Context, c *cart.Cart, destination, notes string) (store.Order, error) {
	if c.Len() == 0 {
		return store.Order{}, ErrEmptyCart
	}
	if destination == "" || !s.tables[destination] {
		return store.Order{}, fmt.Errorf("%w: %q", ErrInvalidDestination, destination)
	}

	lines := c.Lines()
	total := c.Total()

	order := store.Order{
		ID:          uuid.NewString(),
		TableNumber: destination,
		Lines:       lines,
		Total:       total,
		Status:      enum.OrderStatusPending,
		Notes:       notes,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Create(ctx, order); err != nil {
		return store.Order{}, fmt.Errorf("create order: %w", err)
	}

	// The robot bridge polls for the destination of the latest submission,
	// before any staff action happens.
	s.destMu.Lock()
	s.lastDestination = destination
	s.destMu.Unlock()

	// The mirror is best-effort: the authoritative store already holds the
	// order, so a dead upstream degrades the realtime feed, not the sale.
	s.mirrorPut(ctx, order, enum.EventOrderCreated)

	s.log.Info("order_submitted", fmt.Sprintf("order %s for table %s, total %s", order.ID, destination, total))
	return order, nil
}

// UpdateStatus advances an order through the workflow.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, newStatus string) (store.Order, error) {
	updated, err := s.store.UpdateStatus(ctx, orderID, newStatus)
	if err != nil {
		return store.Order{}, err
	}

	s.mirrorPut(ctx, updated, enum.EventOrderUpdated)

	s.log.Info("order_status_updated", fmt.Sprintf("order %s is now %s", updated.ID, updated.Status))
	return updated, nil
}

// DispatchRobot marks the order delivered and sends the robot to its table.
// The two calls stay composable, but a caller observes them as one step.
// The transition goes first: its read-modify-write is atomic in the store,
// so of two concurrent dispatches only the winner emits a command. Only a
// preparing order can be dispatched.
func (s *OrderService) DispatchRobot(ctx context.Context, orderID string) (store.Order, robot.Command, error) {
	updated, err := s.UpdateStatus(ctx, orderID, enum.OrderStatusDelivered)
	if err != nil {
		return store.Order{}, robot.Command{}, err
	}

	cmd := s.robot.Dispatch(updated.TableNumber)

	s.log.Info("robot_dispatched", fmt.Sprintf("robot sent to table %s for order %s", cmd.Destination, orderID))
	return updated, cmd, nil
}

// LastDestination returns the table of the most recently submitted order,
// for the polling robot bridge. The second return is false until the first
// submission.
func (s *OrderService) LastDestination() (string, bool) {
	s.destMu.RLock()
	defer s.destMu.RUnlock()

	if s.lastDestination == "" {
		return "", false
	}
	return s.lastDestination, true
}

// ClearAll empties the order collection on both persistence paths.
func (s *OrderService) ClearAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return err
	}
	if s.mirror != nil {
		if err := s.mirror.Purge(ctx); err != nil {
			s.log.Warn("mirror_purge", "alternate store purge failed", err)
		}
	}
	return nil
}

// List returns orders newest-first, optionally filtered by status.
func (s *OrderService) List(ctx context.Context, statusFilter string) ([]store.Order, error) {
	return s.store.List(ctx, statusFilter)
}

// Count reports the number of held orders, for the health endpoint.
func (s *OrderService) Count(ctx context.Context) int {
	return s.store.Count(ctx)
}

func (s *OrderService) mirrorPut(ctx context.Context, o store.Order, eventType string) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.PutOrder(ctx, o); err != nil {
		s.log.Warn("mirror_put", fmt.Sprintf("alternate store write failed for order %s", o.ID), err)
		return
	}
	if err := s.mirror.PublishEvent(ctx, store.Event{Type: eventType, Order: o}); err != nil {
		s.log.Warn("mirror_publish", fmt.Sprintf("event publish failed for order %s", o.ID), err)
	}
}
