package live

import (
	"time"

	"firefly/pkg/pipeline"
)

// UnitRow holds UI state for a single work unit.
type UnitRow struct {
	Index      int
	Kind       string
	Label      string
	Status     pipeline.UnitEventType
	JobID      string
	Retries    int
	RetryDelay time.Duration
	StartedAt  time.Time
	FinishedAt time.Time
	Outputs    []string
	Error      string
}

// StatusCounts aggregates row counts by status bucket.
type StatusCounts struct {
	Queued      int
	Waiting     int
	Submitting  int
	Polling     int
	Downloading int
	Done        int
	Succeeded   int
	Failed      int
	Canceled    int
}

// State captures the live UI state for a batch run.
type State struct {
	RunID     string
	Command   string
	StartedAt time.Time
	LastEvent string
	Rows      []UnitRow
	Counts    StatusCounts
}
