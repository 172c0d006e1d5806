package pipeline

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultPollInterval is the pause between status queries.
	DefaultPollInterval = 2 * time.Second
	// DefaultPollTimeout bounds how long a single job is polled.
	DefaultPollTimeout = 5 * time.Minute
)

// Poller waits for a submitted job to reach a terminal status. Status
// queries are wrapped by the retry policy but never consume limiter
// permits.
type Poller struct {
	service  Service
	retry    Policy
	interval time.Duration
	timeout  time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// PollConfig bounds the polling loop.
type PollConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// NewPoller constructs a poller over the given service.
func NewPoller(service Service, retry Policy, cfg PollConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPollTimeout
	}
	return &Poller{
		service:  service,
		retry:    retry,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait polls the handle until it is terminal or the poll timeout elapses.
// A handle that is already terminal is returned without a status query.
func (p *Poller) Wait(ctx context.Context, handle Handle) (Handle, error) {
	if handle.Status.Terminal() {
		return handle, nil
	}
	deadline := p.now().Add(p.timeout)
	for {
		var current Handle
		err := p.retry.Execute(ctx, func(ctx context.Context) error {
			updated, statusErr := p.service.JobStatus(ctx, handle)
			if statusErr != nil {
				return statusErr
			}
			current = updated
			return nil
		})
		if err != nil {
			return handle, err
		}
		handle = current
		if handle.Status.Terminal() {
			return handle, nil
		}
		if !p.now().Add(p.interval).Before(deadline) {
			handle.Status = StatusFailed
			return handle, fmt.Errorf("%w for job %s after %s", ErrPollTimeout, handle.JobID, p.timeout)
		}
		if err := p.sleep(ctx, p.interval); err != nil {
			return handle, err
		}
	}
}
