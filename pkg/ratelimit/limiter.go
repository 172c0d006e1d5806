// Package ratelimit provides a fixed-window permit limiter for outbound
// generation calls.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter grants at most capacity permits per window. Acquire blocks until a
// permit is available in the current window.
type Limiter struct {
	mu          sync.Mutex
	capacity    int
	window      time.Duration
	count       int
	windowStart time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New constructs a limiter with the given capacity and window.
func New(capacity int, window time.Duration) (*Limiter, error) {
	return newLimiter(capacity, window, limiterConfig{})
}

// limiterConfig overrides time sources, primarily for tests.
type limiterConfig struct {
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// newLimiter builds a limiter with custom time sources.
func newLimiter(capacity int, window time.Duration, cfg limiterConfig) (*Limiter, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("limiter capacity must be positive, got %d", capacity)
	}
	if window <= 0 {
		return nil, fmt.Errorf("limiter window must be positive, got %s", window)
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	if cfg.sleep == nil {
		cfg.sleep = sleepContext
	}
	return &Limiter{
		capacity: capacity,
		window:   window,
		now:      cfg.now,
		sleep:    cfg.sleep,
	}, nil
}

// Capacity returns the permit budget per window.
func (l *Limiter) Capacity() int {
	return l.capacity
}

// Window returns the window duration.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Acquire blocks until a permit is reserved or the context is cancelled.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		wait, ok := l.tryAcquire()
		if ok {
			return nil
		}
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// tryAcquire performs one atomic check-and-increment. On denial it returns
// the time remaining until the window boundary.
func (l *Limiter) tryAcquire() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.count = 0
	}
	if l.count < l.capacity {
		l.count++
		return 0, true
	}
	remaining := l.windowStart.Add(l.window).Sub(now)
	if remaining <= 0 {
		remaining = time.Millisecond
	}
	return remaining, false
}

// sleepContext sleeps for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
