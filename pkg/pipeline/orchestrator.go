package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"
)

// PermitLimiter throttles creation calls. Status polls and downloads are
// exempt.
type PermitLimiter interface {
	Acquire(ctx context.Context) error
}

// CapacityLimiter optionally exposes the permit budget used to size the
// orchestrator's worker pool.
type CapacityLimiter interface {
	Capacity() int
}

const fallbackWorkers = 4

// Orchestrator fans out work units through submit, poll, and save stages.
// Units only contend with each other through the shared limiter; one unit's
// failure never aborts the batch.
type Orchestrator struct {
	service  Service
	saver    Saver
	limiter  PermitLimiter
	retry    Policy
	poller   *Poller
	workers  int
	observer Observer

	now func() time.Time
}

// Options tunes the orchestrator.
type Options struct {
	Retry Policy
	Poll  PollConfig
	// Workers caps concurrent in-flight units. Zero means the limiter's
	// capacity, falling back to a small constant.
	Workers  int
	Observer Observer
}

// NewOrchestrator constructs an orchestrator over a service, saver, and
// shared limiter.
func NewOrchestrator(service Service, saver Saver, limiter PermitLimiter, opts Options) *Orchestrator {
	workers := opts.Workers
	if workers <= 0 {
		if sized, ok := limiter.(CapacityLimiter); ok {
			workers = sized.Capacity()
		}
	}
	if workers <= 0 {
		workers = fallbackWorkers
	}
	observer := opts.Observer
	if observer == nil {
		observer = NoopObserver
	}
	return &Orchestrator{
		service:  service,
		saver:    saver,
		limiter:  limiter,
		retry:    opts.Retry,
		poller:   NewPoller(service, opts.Retry, opts.Poll),
		workers:  workers,
		observer: observer,
		now:      time.Now,
	}
}

// Run executes all units and returns the complete report. Entries land at
// each unit's original index; report order never depends on completion
// order. A cancelled context marks unresolved units as canceled and still
// returns the report.
func (o *Orchestrator) Run(ctx context.Context, units []WorkUnit) Report {
	entries := make([]Entry, len(units))
	for _, unit := range units {
		o.emit(unit, UnitEvent{Type: UnitQueued})
	}

	work := make(chan WorkUnit)
	var wg sync.WaitGroup
	workers := o.workers
	if workers > len(units) {
		workers = len(units)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range work {
				entries[unit.Index] = o.runUnit(ctx, unit)
			}
		}()
	}

	for _, unit := range units {
		select {
		case work <- unit:
		case <-ctx.Done():
			entries[unit.Index] = o.canceledEntry(unit)
		}
	}
	close(work)
	wg.Wait()

	return Report{Entries: entries}
}

// runUnit drives one unit through submit, poll, and save.
func (o *Orchestrator) runUnit(ctx context.Context, unit WorkUnit) Entry {
	started := o.now()
	if ctx.Err() != nil {
		return o.canceledEntry(unit)
	}

	retry := o.retry
	retry.OnRetry = func(attempt int, delay time.Duration, err error) {
		o.emit(unit, UnitEvent{Type: UnitRetrying, Attempt: attempt, RetryDelay: delay, Error: err.Error()})
	}

	o.emit(unit, UnitEvent{Type: UnitThrottled})
	if err := o.limiter.Acquire(ctx); err != nil {
		return o.finish(unit, Entry{}, started, err)
	}

	o.emit(unit, UnitEvent{Type: UnitSubmitting})
	var handle Handle
	err := retry.Execute(ctx, func(ctx context.Context) error {
		created, createErr := o.service.CreateJob(ctx, unit)
		if createErr != nil {
			return createErr
		}
		handle = created
		return nil
	})
	if err != nil {
		return o.finish(unit, Entry{}, started, err)
	}

	if !handle.Status.Terminal() {
		o.emit(unit, UnitEvent{Type: UnitPolling, JobID: handle.JobID})
		poller := *o.poller
		poller.retry = retry
		handle, err = poller.Wait(ctx, handle)
		if err != nil {
			return o.finish(unit, Entry{JobID: handle.JobID}, started, err)
		}
	}
	if handle.Status == StatusFailed {
		failure := handle.Err
		if failure == nil {
			failure = errors.New("job failed without detail")
		}
		return o.finish(unit, Entry{JobID: handle.JobID}, started, failure)
	}

	o.emit(unit, UnitEvent{Type: UnitDownloading, JobID: handle.JobID})
	var outputs []string
	err = retry.Execute(ctx, func(ctx context.Context) error {
		saved, saveErr := o.saver.Save(ctx, handle, unit)
		if saveErr != nil {
			return saveErr
		}
		outputs = saved
		return nil
	})
	if err != nil {
		return o.finish(unit, Entry{JobID: handle.JobID}, started, err)
	}

	entry := Entry{
		Index:    unit.Index,
		Kind:     unit.Kind,
		Label:    unit.Label,
		Outcome:  OutcomeSucceeded,
		JobID:    handle.JobID,
		Outputs:  outputs,
		Duration: o.now().Sub(started),
	}
	o.emit(unit, UnitEvent{Type: UnitSucceeded, JobID: handle.JobID, Outputs: outputs})
	return entry
}

// finish classifies a unit failure as failed or canceled and emits the
// matching event.
func (o *Orchestrator) finish(unit WorkUnit, partial Entry, started time.Time, err error) Entry {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		entry := o.canceledEntry(unit)
		entry.JobID = partial.JobID
		return entry
	}
	entry := Entry{
		Index:    unit.Index,
		Kind:     unit.Kind,
		Label:    unit.Label,
		Outcome:  OutcomeFailed,
		JobID:    partial.JobID,
		Error:    err.Error(),
		Duration: o.now().Sub(started),
	}
	o.emit(unit, UnitEvent{Type: UnitFailed, JobID: partial.JobID, Error: err.Error()})
	return entry
}

// canceledEntry builds the report entry for an unresolved unit.
func (o *Orchestrator) canceledEntry(unit WorkUnit) Entry {
	o.emit(unit, UnitEvent{Type: UnitCanceled})
	return Entry{
		Index:   unit.Index,
		Kind:    unit.Kind,
		Label:   unit.Label,
		Outcome: OutcomeCanceled,
		Error:   ErrCanceled.Error(),
	}
}

// emit forwards a unit event to the observer with unit identity filled in.
func (o *Orchestrator) emit(unit WorkUnit, event UnitEvent) {
	event.Index = unit.Index
	event.Kind = unit.Kind
	event.Label = unit.Label
	event.EmittedAt = o.now()
	o.observer.OnUnitEvent(event)
}
