package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// classifiedError is a test error with an explicit retry class.
type classifiedError struct {
	message   string
	transient bool
}

func (e *classifiedError) Error() string   { return e.message }
func (e *classifiedError) Transient() bool { return e.transient }

func transientErr(message string) error {
	return &classifiedError{message: message, transient: true}
}

func terminalErr(message string) error {
	return &classifiedError{message: message, transient: false}
}

// recordingSleep captures backoff delays without sleeping.
type recordingSleep struct {
	delays []time.Duration
}

func (s *recordingSleep) Sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

// TestExecuteReturnsAfterTransientFailuresThenSuccess retries K transient
// failures and succeeds on attempt K+1.
func TestExecuteReturnsAfterTransientFailuresThenSuccess(t *testing.T) {
	sleeper := &recordingSleep{}
	policy := Policy{MaxRetries: 3, BaseDelay: time.Second, sleep: sleeper.Sleep}

	calls := 0
	err := policy.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls <= 2 {
			return transientErr("server fault")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 invocations, got %d", calls)
	}
}

// TestExecuteExhaustsRetryBudget surfaces ErrRetriesExhausted after
// MaxRetries+1 invocations.
func TestExecuteExhaustsRetryBudget(t *testing.T) {
	sleeper := &recordingSleep{}
	policy := Policy{MaxRetries: 2, BaseDelay: time.Second, sleep: sleeper.Sleep}

	calls := 0
	failure := transientErr("still down")
	err := policy.Execute(context.Background(), func(context.Context) error {
		calls++
		return failure
	})
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
	if !errors.Is(err, failure) {
		t.Fatalf("expected wrapped last error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 invocations, got %d", calls)
	}
}

// TestExecuteBackoffDoublesPerAttempt checks the delay schedule
// base, 2*base, 4*base.
func TestExecuteBackoffDoublesPerAttempt(t *testing.T) {
	sleeper := &recordingSleep{}
	policy := Policy{MaxRetries: 3, BaseDelay: 2 * time.Second, sleep: sleeper.Sleep}

	_ = policy.Execute(context.Background(), func(context.Context) error {
		return transientErr("server fault")
	})
	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}
	if len(sleeper.delays) != len(want) {
		t.Fatalf("expected %d backoffs, got %v", len(want), sleeper.delays)
	}
	for i, delay := range sleeper.delays {
		if delay != want[i] {
			t.Fatalf("backoff %d: got %s want %s", i, delay, want[i])
		}
	}
}

// TestExecuteDoesNotRetryTerminalErrors surfaces client errors immediately.
func TestExecuteDoesNotRetryTerminalErrors(t *testing.T) {
	sleeper := &recordingSleep{}
	policy := Policy{MaxRetries: 3, BaseDelay: time.Second, sleep: sleeper.Sleep}

	calls := 0
	failure := terminalErr("invalid prompt")
	err := policy.Execute(context.Background(), func(context.Context) error {
		calls++
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 invocation, got %d", calls)
	}
	if len(sleeper.delays) != 0 {
		t.Fatalf("expected no backoffs, got %v", sleeper.delays)
	}
}

// TestExecuteReportsRetriesToCallback forwards attempt, delay, and error.
func TestExecuteReportsRetriesToCallback(t *testing.T) {
	sleeper := &recordingSleep{}
	var attempts []int
	policy := Policy{
		MaxRetries: 2,
		BaseDelay:  time.Second,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			attempts = append(attempts, attempt)
			if err == nil {
				t.Fatalf("callback received nil error")
			}
		},
		sleep: sleeper.Sleep,
	}
	_ = policy.Execute(context.Background(), func(context.Context) error {
		return transientErr("server fault")
	})
	if fmt.Sprint(attempts) != "[1 2]" {
		t.Fatalf("expected callbacks for attempts 1 and 2, got %v", attempts)
	}
}

// TestExecuteStopsOnCancelledContext aborts before invoking op again.
func TestExecuteStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := Policy{MaxRetries: 5, BaseDelay: time.Second, sleep: func(context.Context, time.Duration) error {
		cancel()
		return nil
	}}
	calls := 0
	err := policy.Execute(ctx, func(context.Context) error {
		calls++
		return transientErr("server fault")
	})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 invocation before cancellation, got %d", calls)
	}
}
