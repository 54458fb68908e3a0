package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLimiter_Wait_Unlimited(t *testing.T) {
	limiter := NewLimiter(Limits{})

	for i := 0; i < 100; i++ {
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("Expected no error on call %d, got %v", i, err)
		}
	}
}

func TestLimiter_Wait_WithinBudget(t *testing.T) {
	limiter := NewLimiter(Limits{PerSecond: 5, PerMinute: 100, PerHour: 1000})

	for i := 0; i < 5; i++ {
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("Expected no error on call %d, got %v", i, err)
		}
	}
}

func TestLimiter_Wait_BlocksWhenExhausted(t *testing.T) {
	limiter := NewLimiter(Limits{PerSecond: 1})

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("Expected first call to pass, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded while budget is spent, got %v", err)
	}
}

func TestLimiter_Wait_BudgetResets(t *testing.T) {
	limiter := NewLimiter(Limits{PerSecond: 1})

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("Expected first call to pass, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("Expected second call to pass after window reset, got %v", err)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Error("Expected second call to block until the per-second window reset")
	}
}

func TestLimiter_Wait_ContextCancelled(t *testing.T) {
	limiter := NewLimiter(Limits{PerSecond: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLimiter_HourBudgetIndependent(t *testing.T) {
	limiter := NewLimiter(Limits{PerHour: 2})

	for i := 0; i < 2; i++ {
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("Expected no error on call %d, got %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected hourly budget to block the third call, got %v", err)
	}
}
