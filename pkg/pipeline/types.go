// Package pipeline runs batches of generation requests against a remote job
// API: rate-limited submission, retries with backoff, status polling, and
// ordered result collection.
package pipeline

import "context"

// Status is the lifecycle state of a remote job.
type Status string

const (
	// StatusPending marks a job accepted but not started.
	StatusPending Status = "pending"
	// StatusRunning marks a job in progress.
	StatusRunning Status = "running"
	// StatusSucceeded marks a job that produced a result.
	StatusSucceeded Status = "succeeded"
	// StatusFailed marks a job that terminally failed.
	StatusFailed Status = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// WorkUnit is one independent generation request. Units are immutable once
// planned; Index is the unit's slot in the batch report.
type WorkUnit struct {
	Index      int
	Kind       string
	Label      string
	OutputPath string
	Params     any
}

// Handle references a submitted job. Synchronous services return a handle
// that is already terminal.
type Handle struct {
	JobID     string
	StatusURL string
	Status    Status
	// Err carries the remote failure detail for StatusFailed handles.
	Err error
}

// Service is the remote generation API consumed by the pipeline.
type Service interface {
	// CreateJob submits the unit's request and returns a job handle.
	CreateJob(ctx context.Context, unit WorkUnit) (Handle, error)
	// JobStatus queries the current status of a submitted job.
	JobStatus(ctx context.Context, handle Handle) (Handle, error)
}

// Saver persists a succeeded job's outputs and returns the written paths.
type Saver interface {
	Save(ctx context.Context, handle Handle, unit WorkUnit) ([]string, error)
}
