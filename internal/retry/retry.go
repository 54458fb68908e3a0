package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finquery/finquery/internal/logger"
)

// ErrBudgetExhausted marks a failure where every attempt in the budget was
// spent. The last underlying cause is wrapped, so errors.As still reaches it.
var ErrBudgetExhausted = errors.New("max retries exceeded")

// Retryer runs an operation up to a fixed number of attempts with capped
// exponential backoff between them. MaxAttempts is the total attempt budget:
// a budget of 3 performs at most 3 calls.
type Retryer struct {
	maxAttempts uint
	baseDelay   time.Duration
	maxDelay    time.Duration
}

func NewRetryer(maxAttempts uint, baseDelay, maxDelay time.Duration) *Retryer {
	if maxAttempts == 0 {
		maxAttempts = 1
	}
	return &Retryer{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
	}
}

// Do invokes fn until it reports no retry is wanted, the context is done, or
// the attempt budget runs out. Attempts are independent; only the attempt
// counter carries over. On exhaustion the returned error wraps both
// ErrBudgetExhausted and the last cause.
func (r *Retryer) Do(ctx context.Context, fn func() (shouldRetry bool, err error)) error {
	var lastErr error

	for attempt := uint(0); attempt < r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		shouldRetry, err := fn()
		if !shouldRetry {
			return err
		}
		lastErr = err

		if attempt+1 < r.maxAttempts {
			delay := r.backoff(attempt)
			logger.Debugf("retry: attempt %d/%d failed (%v), backing off %v", attempt+1, r.maxAttempts, err, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if lastErr == nil {
		return ErrBudgetExhausted
	}
	return fmt.Errorf("%w: %w", ErrBudgetExhausted, lastErr)
}

func (r *Retryer) backoff(attempt uint) time.Duration {
	delay := r.baseDelay * (1 << attempt)
	if r.maxDelay > 0 {
		delay = min(delay, r.maxDelay)
	}
	return delay
}
