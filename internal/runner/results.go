package runner

import (
	"time"

	"firefly/pkg/pipeline"
)

// Results is the persisted record of one batch run.
type Results struct {
	RunID      string           `json:"run_id"`
	Command    string           `json:"command"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Summary    pipeline.Summary `json:"summary"`
	Entries    []pipeline.Entry `json:"entries"`
}

// NewResults assembles the results record from a finished report.
func NewResults(runID, command string, started, finished time.Time, report pipeline.Report) Results {
	return Results{
		RunID:      runID,
		Command:    command,
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		Summary:    report.Summarize(),
		Entries:    report.Entries,
	}
}
