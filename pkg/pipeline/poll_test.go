package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedService replays a fixed status sequence for JobStatus.
type scriptedService struct {
	statuses []Status
	errs     []error
	queries  int
}

func (s *scriptedService) CreateJob(context.Context, WorkUnit) (Handle, error) {
	return Handle{}, errors.New("not under test")
}

func (s *scriptedService) JobStatus(_ context.Context, handle Handle) (Handle, error) {
	i := s.queries
	s.queries++
	if i < len(s.errs) && s.errs[i] != nil {
		return handle, s.errs[i]
	}
	if i >= len(s.statuses) {
		i = len(s.statuses) - 1
	}
	handle.Status = s.statuses[i]
	return handle, nil
}

// pollClock drives a poller deterministically: sleeps advance the clock.
type pollClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newPollClock() *pollClock {
	return &pollClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *pollClock) Now() time.Time { return c.now }

func (c *pollClock) Sleep(_ context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestPoller(service Service, cfg PollConfig, clock *pollClock) *Poller {
	p := NewPoller(service, Policy{MaxRetries: 0, BaseDelay: time.Second, sleep: clock.Sleep}, cfg)
	p.now = clock.Now
	p.sleep = clock.Sleep
	return p
}

// TestWaitQueriesUntilTerminal walks pending, running, succeeded in
// exactly three status queries.
func TestWaitQueriesUntilTerminal(t *testing.T) {
	service := &scriptedService{statuses: []Status{StatusPending, StatusRunning, StatusSucceeded}}
	clock := newPollClock()
	poller := newTestPoller(service, PollConfig{Interval: 2 * time.Second, Timeout: time.Minute}, clock)

	handle, err := poller.Wait(context.Background(), Handle{JobID: "job-1", Status: StatusPending})
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if handle.Status != StatusSucceeded {
		t.Fatalf("expected succeeded, got %s", handle.Status)
	}
	if service.queries != 3 {
		t.Fatalf("expected 3 status queries, got %d", service.queries)
	}
	if len(clock.sleeps) != 2 {
		t.Fatalf("expected 2 interval sleeps, got %v", clock.sleeps)
	}
}

// TestWaitTimesOutOnStuckJob marks a never-finishing job failed and
// wraps ErrPollTimeout.
func TestWaitTimesOutOnStuckJob(t *testing.T) {
	service := &scriptedService{statuses: []Status{StatusRunning}}
	clock := newPollClock()
	poller := newTestPoller(service, PollConfig{Interval: 2 * time.Second, Timeout: 10 * time.Second}, clock)

	handle, err := poller.Wait(context.Background(), Handle{JobID: "job-2", Status: StatusPending})
	if !errors.Is(err, ErrPollTimeout) {
		t.Fatalf("expected ErrPollTimeout, got %v", err)
	}
	if handle.Status != StatusFailed {
		t.Fatalf("expected failed after timeout, got %s", handle.Status)
	}
	if service.queries > 6 {
		t.Fatalf("expected polling to stop at the deadline, got %d queries", service.queries)
	}
}

// TestWaitReturnsTerminalHandleWithoutQuerying short-circuits on an
// already-terminal handle.
func TestWaitReturnsTerminalHandleWithoutQuerying(t *testing.T) {
	service := &scriptedService{statuses: []Status{StatusRunning}}
	clock := newPollClock()
	poller := newTestPoller(service, PollConfig{}, clock)

	for _, status := range []Status{StatusSucceeded, StatusFailed} {
		handle, err := poller.Wait(context.Background(), Handle{JobID: "job-3", Status: status})
		if err != nil {
			t.Fatalf("wait(%s): %v", status, err)
		}
		if handle.Status != status {
			t.Fatalf("expected %s unchanged, got %s", status, handle.Status)
		}
	}
	if service.queries != 0 {
		t.Fatalf("expected no status queries, got %d", service.queries)
	}
}

// TestWaitRetriesTransientStatusErrors recovers from a transient status
// failure without surfacing it.
func TestWaitRetriesTransientStatusErrors(t *testing.T) {
	service := &scriptedService{
		statuses: []Status{StatusPending, StatusSucceeded},
		errs:     []error{transientErr("gateway hiccup"), nil},
	}
	clock := newPollClock()
	poller := newTestPoller(service, PollConfig{Interval: 2 * time.Second, Timeout: time.Minute}, clock)
	poller.retry = Policy{MaxRetries: 2, BaseDelay: time.Second, sleep: clock.Sleep}

	handle, err := poller.Wait(context.Background(), Handle{JobID: "job-4", Status: StatusPending})
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if handle.Status != StatusSucceeded {
		t.Fatalf("expected succeeded, got %s", handle.Status)
	}
}

// TestWaitSurfacesExhaustedStatusRetries gives up when every status
// query fails.
func TestWaitSurfacesExhaustedStatusRetries(t *testing.T) {
	service := &scriptedService{
		statuses: []Status{StatusPending},
		errs:     []error{transientErr("down"), transientErr("down"), transientErr("down")},
	}
	clock := newPollClock()
	poller := newTestPoller(service, PollConfig{Interval: 2 * time.Second, Timeout: time.Minute}, clock)
	poller.retry = Policy{MaxRetries: 2, BaseDelay: time.Second, sleep: clock.Sleep}

	_, err := poller.Wait(context.Background(), Handle{JobID: "job-5", Status: StatusPending})
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
}
