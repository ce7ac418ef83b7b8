// Package nutrition implements the upstream nutrition database clients with
// disk caching and rate limiting.
package nutrition

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between upstream requests. Both
// public APIs meter free keys aggressively; pacing requests avoids
// burning the daily quota on 429 responses.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewLimiter creates a limiter with the given minimum spacing.
// A zero interval disables pacing.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// Wait blocks until the next request may be sent, or until the context is
// canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()
	next := l.last.Add(l.interval)
	if next.Before(now) {
		next = now
	}
	l.last = next
	l.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
