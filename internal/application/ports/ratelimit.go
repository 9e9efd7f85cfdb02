package ports

import (
	"context"
	"time"
)

// RateLimitResult is the outcome of a fixed-window check.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// RateLimiter throttles password guessing per key (trail + origin).
type RateLimiter interface {
	// Check counts one request against key's current window. The
	// first call in a fresh window admits with remaining = limit-1;
	// calls past limit are rejected with the time left until reset.
	Check(ctx context.Context, key string, limit int, window time.Duration) (RateLimitResult, error)
}

// CounterStore holds the per-key window counters behind RateLimiter.
// In-process map for single-instance deployments, a shared cache
// (redis) for multi-instance ones.
type CounterStore interface {
	// Incr bumps key's counter, starting a fresh window of the given
	// length when none is active, and returns the post-increment
	// count and the time left until the window resets. The duration
	// is measured on the store's own clock so callers never compare
	// it against a clock of their own.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
}
