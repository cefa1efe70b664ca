// Package ratelimiter limits the frequency of operations such as external
// API calls. One limiter instance is shared by every crawl worker so the
// pacing applies provider-wide, not per goroutine.
package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// RateLimiter gates an operation. Wait blocks until the caller may proceed
// or the context is canceled.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// MinInterval enforces a minimum delay between consecutive calls across all
// goroutines sharing the instance. Each caller reserves the next slot under
// the lock, so concurrent callers queue up deterministically.
type MinInterval struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

var _ RateLimiter = (*MinInterval)(nil)

// NewMinInterval creates a limiter with the given minimum spacing between
// calls. A non-positive interval disables the gate.
func NewMinInterval(interval time.Duration) *MinInterval {
	return &MinInterval{interval: interval}
}

// Wait blocks until at least the configured interval has passed since the
// previously reserved slot, or returns the context error on cancellation.
func (m *MinInterval) Wait(ctx context.Context) error {
	if m.interval <= 0 {
		return nil
	}

	m.mu.Lock()
	now := time.Now()
	slot := m.next
	if slot.Before(now) {
		slot = now
	}
	m.next = slot.Add(m.interval)
	m.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
