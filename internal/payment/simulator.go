package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Processor charges a customer for an order total. The real system treats
// payment as an external collaborator; this package only models the
// simulated step the checkout flow performs.
type Processor interface {
	Process(ctx context.Context, amount decimal.Decimal) error
}

// Simulator always succeeds after a fixed delay, mimicking the original
// checkout's fake payment screen.
type Simulator struct {
	Delay time.Duration
}

func (s Simulator) Process(ctx context.Context, amount decimal.Decimal) error {
	if s.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
