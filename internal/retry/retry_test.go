package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryer_Do_SuccessOnFirstAttempt(t *testing.T) {
	retryer := NewRetryer(3, 10*time.Millisecond, time.Second)

	called := 0
	err := retryer.Do(context.Background(), func() (bool, error) {
		called++
		return false, nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if called != 1 {
		t.Errorf("Expected function to be called 1 time, got %d", called)
	}
}

func TestRetryer_Do_SuccessOnFinalAttempt(t *testing.T) {
	retryer := NewRetryer(3, 5*time.Millisecond, time.Second)

	attempts := 0
	err := retryer.Do(context.Background(), func() (bool, error) {
		attempts++
		if attempts < 3 {
			return true, errors.New("temporary error")
		}
		return false, nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected function to be called 3 times, got %d", attempts)
	}
}

func TestRetryer_Do_BudgetExhausted(t *testing.T) {
	retryer := NewRetryer(3, 5*time.Millisecond, time.Second)

	cause := errors.New("persistent error")
	attempts := 0
	err := retryer.Do(context.Background(), func() (bool, error) {
		attempts++
		return true, cause
	})

	if attempts != 3 {
		t.Errorf("Expected exactly 3 attempts, got %d", attempts)
	}
	if !errors.Is(err, ErrBudgetExhausted) {
		t.Errorf("Expected ErrBudgetExhausted, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected the last cause to be preserved, got %v", err)
	}
}

func TestRetryer_Do_NonRetryableReturnsImmediately(t *testing.T) {
	retryer := NewRetryer(5, 5*time.Millisecond, time.Second)

	expected := errors.New("terminal error")
	attempts := 0
	err := retryer.Do(context.Background(), func() (bool, error) {
		attempts++
		return false, expected
	})

	if err != expected {
		t.Errorf("Expected %v, got %v", expected, err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestRetryer_Do_ZeroBudgetStillAttemptsOnce(t *testing.T) {
	retryer := NewRetryer(0, 5*time.Millisecond, time.Second)

	called := 0
	err := retryer.Do(context.Background(), func() (bool, error) {
		called++
		return false, nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if called != 1 {
		t.Errorf("Expected 1 attempt, got %d", called)
	}
}

func TestRetryer_Do_ContextCancelledBeforeFirstAttempt(t *testing.T) {
	retryer := NewRetryer(3, 100*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := 0
	err := retryer.Do(ctx, func() (bool, error) {
		called++
		return true, errors.New("should not be called")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if called != 0 {
		t.Errorf("Expected function not to be called, was called %d times", called)
	}
}

func TestRetryer_Do_ContextCancelledDuringBackoff(t *testing.T) {
	retryer := NewRetryer(3, 200*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	attempts := 0
	err := retryer.Do(ctx, func() (bool, error) {
		attempts++
		return true, errors.New("temporary error")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before cancellation, got %d", attempts)
	}
}

func TestRetryer_Backoff(t *testing.T) {
	retryer := NewRetryer(5, 100*time.Millisecond, 300*time.Millisecond)

	tests := []struct {
		attempt uint
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 300 * time.Millisecond}, // capped
		{3, 300 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := retryer.backoff(tt.attempt); got != tt.want {
			t.Errorf("backoff(%d): expected %v, got %v", tt.attempt, tt.want, got)
		}
	}
}
