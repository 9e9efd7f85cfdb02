// Package ratelimit implements the fixed-window throttle used to slow
// down password guessing. Windows are not sliding: a burst at a
// window boundary can admit up to twice the limit across the two
// adjacent windows. That tradeoff is deliberate and kept.
package ratelimit

import (
	"context"
	"time"

	"github.com/edulane/trailguard/internal/application/ports"
)

// Limiter implements ports.RateLimiter over an injected CounterStore.
type Limiter struct {
	store ports.CounterStore
}

func NewLimiter(store ports.CounterStore) *Limiter {
	return &Limiter{store: store}
}

// Check counts one request against key's current window. The first
// call in a fresh window starts it; the call after limit within the
// same window is rejected with the time left until reset.
func (l *Limiter) Check(ctx context.Context, key string, limit int, window time.Duration) (ports.RateLimitResult, error) {
	count, resetIn, err := l.store.Incr(ctx, key, window)
	if err != nil {
		return ports.RateLimitResult{}, err
	}
	if resetIn < 0 {
		resetIn = 0
	}
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return ports.RateLimitResult{
		Allowed:   count <= int64(limit),
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}
