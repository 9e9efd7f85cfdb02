package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is an in-process CounterStore for single-instance
// deployments. A background sweep reclaims expired windows so the map
// stays bounded; the sweep never blocks Incr. For multi-instance
// deployments use RedisStore.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	stop    chan struct{}
	once    sync.Once

	now func() time.Time
}

// NewMemoryStore starts the store and its sweep goroutine. Call Stop
// on shutdown.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	if sweepInterval <= 0 {
		sweepInterval = 5 * time.Minute
	}
	s := &MemoryStore{
		windows: make(map[string]*window),
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	go s.sweep(sweepInterval)
	return s
}

// Incr bumps key's counter, starting a fresh window when none is
// active. Updates are atomic per key.
func (s *MemoryStore) Incr(_ context.Context, key string, windowLen time.Duration) (int64, time.Duration, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.windows[key]
	if w == nil || now.After(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(windowLen)}
		s.windows[key] = w
		return w.count, windowLen, nil
	}
	w.count++
	return w.count, w.resetAt.Sub(now), nil
}

// Stop terminates the sweep goroutine. Idempotent.
func (s *MemoryStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for key, w := range s.windows {
				if now.After(w.resetAt) {
					delete(s.windows, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
