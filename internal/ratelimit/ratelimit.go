package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/finquery/finquery/internal/logger"
)

// Limits is the client-side request budget. A zero field means unlimited at
// that horizon.
type Limits struct {
	PerSecond int
	PerMinute int
	PerHour   int
}

// Limiter enforces Limits across concurrent callers with rolling windows per
// horizon. It is a local politeness budget, separate from the remote's own
// 429 signalling.
type Limiter struct {
	mu       sync.Mutex
	limits   Limits
	secCount int
	minCount int
	hrCount  int
	secReset time.Time
	minReset time.Time
	hrReset  time.Time
}

func NewLimiter(limits Limits) *Limiter {
	now := time.Now().UTC()
	return &Limiter{
		limits:   limits,
		secReset: now.Add(time.Second),
		minReset: now.Add(time.Minute),
		hrReset:  now.Add(time.Hour),
	}
}

// Wait blocks until a request slot is available or the context is done. The
// slot is consumed on return.
func (l *Limiter) Wait(ctx context.Context) error {
	waited := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if l.tryAcquire() {
			return nil
		}

		if !waited {
			logger.Debugf("ratelimit: local budget exhausted, waiting")
			waited = true
		}

		select {
		case <-time.After(100 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Limiter) tryAcquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	l.resetIfNeeded(now)

	if l.limits.PerSecond > 0 && l.secCount >= l.limits.PerSecond {
		return false
	}
	if l.limits.PerMinute > 0 && l.minCount >= l.limits.PerMinute {
		return false
	}
	if l.limits.PerHour > 0 && l.hrCount >= l.limits.PerHour {
		return false
	}

	l.secCount++
	l.minCount++
	l.hrCount++
	return true
}

func (l *Limiter) resetIfNeeded(now time.Time) {
	if now.After(l.secReset) {
		l.secCount = 0
		l.secReset = now.Add(time.Second)
	}
	if now.After(l.minReset) {
		l.minCount = 0
		l.minReset = now.Add(time.Minute)
	}
	if now.After(l.hrReset) {
		l.hrCount = 0
		l.hrReset = now.Add(time.Hour)
	}
}
