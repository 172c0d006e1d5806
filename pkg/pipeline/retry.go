package pipeline

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultMaxRetries is the retry budget for transient failures.
	DefaultMaxRetries = 3
	// DefaultBaseDelay seeds the exponential backoff schedule.
	DefaultBaseDelay = 2 * time.Second
)

// Policy retries an operation on transient failures with exponential
// backoff: BaseDelay doubles after every failed attempt.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration

	// OnRetry is invoked before each backoff sleep with the attempt number
	// that just failed, the computed delay, and the failure.
	OnRetry func(attempt int, delay time.Duration, err error)

	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns a policy with the default retry budget.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: DefaultMaxRetries, BaseDelay: DefaultBaseDelay}
}

// Execute runs op, retrying transient failures up to MaxRetries times.
// Non-transient errors surface immediately; an exhausted budget wraps the
// last error in ErrRetriesExhausted.
func (p Policy) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	var lastErr error
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !Transient(lastErr) {
			return lastErr
		}
		if attempt > p.MaxRetries {
			return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt, lastErr)
		}
		delay := p.delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, lastErr)
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// delay computes the backoff before retrying attempt n (1-based).
func (p Policy) delay(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	return base << (attempt - 1)
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
