package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robocafe/api/internal/cart"
	"github.com/robocafe/api/internal/catalog"
	"github.com/robocafe/api/internal/enum"
	"github.com/robocafe/api/internal/logger"
	"github.com/robocafe/api/internal/robot"
	"github.com/robocafe/api/internal/service"
	"github.com/robocafe/api/internal/store"
)

var testTables = []string{"A", "B", "C"}

// failingMirror simulates a dead upstream; every call fails.
type failingMirror struct {
	puts, purges int
}

func (m *failingMirror) PutOrder(ctx context.Context, o store.Order) error {
	m.puts++
	return store.ErrUpstreamUnavailable
}

func (m *failingMirror) PublishEvent(ctx context.Context, e store.Event) error {
	return store.ErrUpstreamUnavailable
}

func (m *failingMirror) Purge(ctx context.Context) error {
	m.purges++
	return store.ErrUpstreamUnavailable
}

func newService(t *testing.T, mirror service.Mirror) (*service.OrderService, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	disp := robot.New(nil)
	svc := service.NewOrderService(st, mirror, disp, testTables, logger.New("test"))
	return svc, st
}

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New(catalog.Default())
	if _, err := c.AddLine("rice-meat", false); err != nil {
		t.Fatalf("add rice-meat: %v", err)
	}
	if _, err := c.AddLine("coke", false); err != nil {
		t.Fatalf("add coke: %v", err)
	}
	return c
}

func TestSubmit(t *testing.T) {
	svc, st := newService(t, nil)
	ctx := context.Background()

	order, err := svc.Submit(ctx, filledCart(t), "B", "no onions")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.ID == "" {
		t.Error("order ID not assigned")
	}
	if order.Status != enum.OrderStatusPending {
		t.Errorf("status: got %s, want pending", order.Status)
	}
	if got := order.Total.String(); got != "3600" {
		t.Errorf("total: got %s, want 3600", got)
	}
	if order.Notes != "no onions" {
		t.Errorf("notes: %q", order.Notes)
	}

	stored, err := st.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("stored order: %v", err)
	}
	if !stored.Total.Equal(order.Total) {
		t.Errorf("stored total %s != returned %s", stored.Total, order.Total)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	svc, _ := newService(t, nil)

	_, err := svc.Submit(context.Background(), cart.New(catalog.Default()), "B", "")
	if !errors.Is(err, service.ErrEmptyCart) {
		t.Errorf("got %v, want ErrEmptyCart", err)
	}
}

func TestSubmitInvalidDestination(t *testing.T) {
	svc, st := newService(t, nil)
	ctx := context.Background()

	for _, dest := range []string{"", "Z", "table 1"} {
		if _, err := svc.Submit(ctx, filledCart(t), dest, ""); !errors.Is(err, service.ErrInvalidDestination) {
			t.Errorf("destination %q: got %v, want ErrInvalidDestination", dest, err)
		}
	}
	if st.Count(ctx) != 0 {
		t.Errorf("orders created: %d", st.Count(ctx))
	}
}

func TestSubmitSurvivesDeadMirror(t *testing.T) {
	mirror := &failingMirror{}
	svc, st := newService(t, mirror)
	ctx := context.Background()

	order, err := svc.Submit(ctx, filledCart(t), "A", "")
	if err != nil {
		t.Fatalf("submit with dead mirror: %v", err)
	}
	if mirror.puts != 1 {
		t.Errorf("mirror puts: %d", mirror.puts)
	}
	if _, err := st.Get(ctx, order.ID); err != nil {
		t.Errorf("order not in authoritative store: %v", err)
	}
}

func TestDispatchRobot(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	order, err := svc.Submit(ctx, filledCart(t), "C", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Dispatching a pending order is refused.
	if _, _, err := svc.DispatchRobot(ctx, order.ID); !errors.Is(err, store.ErrInvalidTransition) {
		t.Errorf("dispatch pending: got %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.UpdateStatus(ctx, order.ID, enum.OrderStatusPreparing); err != nil {
		t.Fatalf("to preparing: %v", err)
	}

	updated, cmd, err := svc.DispatchRobot(ctx, order.ID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if cmd.Destination != "C" {
		t.Errorf("destination: got %s, want C", cmd.Destination)
	}
	if updated.Status != enum.OrderStatusDelivered {
		t.Errorf("status after dispatch: %s", updated.Status)
	}

	// A delivered order cannot be dispatched again.
	if _, _, err := svc.DispatchRobot(ctx, order.ID); !errors.Is(err, store.ErrInvalidTransition) {
		t.Errorf("re-dispatch: got %v, want ErrInvalidTransition", err)
	}
}

func TestSubmitRecordsLastDestination(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	if _, ok := svc.LastDestination(); ok {
		t.Error("destination reported before any submission")
	}

	if _, err := svc.Submit(ctx, filledCart(t), "B", ""); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if dest, ok := svc.LastDestination(); !ok || dest != "B" {
		t.Errorf("destination: got %q, %v, want B", dest, ok)
	}

	if _, err := svc.Submit(ctx, filledCart(t), "A", ""); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if dest, _ := svc.LastDestination(); dest != "A" {
		t.Errorf("destination after second submission: got %q, want A", dest)
	}

	// A rejected submission leaves the register untouched.
	if _, err := svc.Submit(ctx, filledCart(t), "Z", ""); !errors.Is(err, service.ErrInvalidDestination) {
		t.Fatalf("got %v, want ErrInvalidDestination", err)
	}
	if dest, _ := svc.LastDestination(); dest != "A" {
		t.Errorf("destination after rejected submission: got %q, want A", dest)
	}
}

// countingDispatcher counts emitted commands.
type countingDispatcher struct {
	mu sync.Mutex
	n  int
}

func (d *countingDispatcher) Dispatch(dest string) robot.Command {
	d.mu.Lock()
	d.n++
	d.mu.Unlock()
	return robot.Command{Destination: dest, Timestamp: time.Now().UTC()}
}

func TestConcurrentDispatchEmitsOneCommand(t *testing.T) {
	st := store.NewMemory()
	disp := &countingDispatcher{}
	svc := service.NewOrderService(st, nil, disp, testTables, logger.New("test"))
	ctx := context.Background()

	order, err := svc.Submit(ctx, filledCart(t), "B", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, order.ID, enum.OrderStatusPreparing); err != nil {
		t.Fatalf("to preparing: %v", err)
	}

	// Race the same dispatch: only the goroutine that wins the delivered
	// transition may send the robot.
	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.DispatchRobot(ctx, order.ID)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else if !errors.Is(err, store.ErrInvalidTransition) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("winners: got %d, want 1", wins)
	}

	disp.mu.Lock()
	commands := disp.n
	disp.mu.Unlock()
	if commands != 1 {
		t.Errorf("robot commands emitted: got %d, want 1", commands)
	}
}

func TestDispatchRobotUnknownOrder(t *testing.T) {
	svc, _ := newService(t, nil)
	if _, _, err := svc.DispatchRobot(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestClearAllPurgesMirror(t *testing.T) {
	mirror := &failingMirror{}
	svc, st := newService(t, mirror)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, filledCart(t), "A", ""); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// Purge failure is tolerated; the authoritative store still empties.
	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if mirror.purges != 1 {
		t.Errorf("mirror purges: %d", mirror.purges)
	}
	if st.Count(ctx) != 0 {
		t.Errorf("orders after clear: %d", st.Count(ctx))
	}
}
