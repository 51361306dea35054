package payment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robocafe/api/internal/payment"
	"github.com/shopspring/decimal"
)

func TestProcessNoDelay(t *testing.T) {
	s := payment.Simulator{}
	if err := s.Process(context.Background(), decimal.NewFromInt(3600)); err != nil {
		t.Errorf("zero-delay process: %v", err)
	}
}

func TestProcessCompletesAfterDelay(t *testing.T) {
	s := payment.Simulator{Delay: 10 * time.Millisecond}

	start := time.Now()
	if err := s.Process(context.Background(), decimal.NewFromInt(600)); err != nil {
		t.Fatalf("process: %v", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("returned before the delay elapsed")
	}
}

func TestProcessHonorsContextCancel(t *testing.T) {
	s := payment.Simulator{Delay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Process(ctx, decimal.NewFromInt(600))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
