package pipeline

import "time"

// UnitEventType identifies a unit status update for observers.
type UnitEventType string

const (
	// UnitQueued marks a unit planned but not yet started.
	UnitQueued UnitEventType = "queued"
	// UnitThrottled marks a unit waiting for a limiter permit.
	UnitThrottled UnitEventType = "throttled"
	// UnitSubmitting marks a creation call in flight.
	UnitSubmitting UnitEventType = "submitting"
	// UnitRetrying marks a transient failure awaiting backoff.
	UnitRetrying UnitEventType = "retrying"
	// UnitPolling marks a submitted job awaiting completion.
	UnitPolling UnitEventType = "polling"
	// UnitDownloading marks result outputs being written.
	UnitDownloading UnitEventType = "downloading"
	// UnitSucceeded marks a unit whose outputs were written.
	UnitSucceeded UnitEventType = "succeeded"
	// UnitFailed marks a terminal per-unit failure.
	UnitFailed UnitEventType = "failed"
	// UnitCanceled marks a unit abandoned by an interrupt.
	UnitCanceled UnitEventType = "canceled"
)

// UnitEvent carries a single status update for a work unit.
type UnitEvent struct {
	Index      int
	Kind       string
	Label      string
	Type       UnitEventType
	JobID      string
	Attempt    int
	RetryDelay time.Duration
	Outputs    []string
	Error      string
	EmittedAt  time.Time
}

// Observer receives unit lifecycle events for UI or logging.
type Observer interface {
	OnUnitEvent(event UnitEvent)
}

// NoopObserver discards all events.
var NoopObserver Observer = noopObserver{}

type noopObserver struct{}

func (noopObserver) OnUnitEvent(UnitEvent) {}
