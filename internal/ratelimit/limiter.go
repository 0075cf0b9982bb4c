package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a sliding-window request limiter keyed by client identifier.
// It is constructed once at process start and shared by reference; state is
// in-memory only, so rate limiting is best-effort and resets on restart.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
	now    func() time.Time
}

// New creates a Limiter allowing at most max requests per key within window.
func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records a request for key and reports whether it is within the limit.
// Timestamps older than the window are pruned lazily on access. There is no
// background sweep, so the map grows with distinct client identifiers.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, ts := range l.hits[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	recent = append(recent, now)
	l.hits[key] = recent

	return len(recent) <= l.max
}

// Forget drops all state for key. Used by tests and admin resets.
func (l *Limiter) Forget(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
}
