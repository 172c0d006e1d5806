package pipeline

import "time"

// Outcome classifies a report entry.
type Outcome string

const (
	// OutcomeSucceeded marks a unit whose outputs were written.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeFailed marks a unit that failed submission, polling, or save.
	OutcomeFailed Outcome = "failed"
	// OutcomeCanceled marks a unit left unresolved by an interrupt.
	OutcomeCanceled Outcome = "canceled"
)

// Entry is the per-unit outcome at the unit's original index.
type Entry struct {
	Index    int           `json:"index"`
	Kind     string        `json:"kind"`
	Label    string        `json:"label"`
	Outcome  Outcome       `json:"outcome"`
	JobID    string        `json:"job_id,omitempty"`
	Outputs  []string      `json:"outputs,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Report is the ordered collection of per-unit outcomes for a batch.
// Entry i always describes the unit submitted with Index i, regardless of
// completion order.
type Report struct {
	Entries []Entry `json:"entries"`
}

// Summary aggregates entry outcomes.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Canceled  int `json:"canceled"`
}

// Summarize counts report outcomes.
func (r Report) Summarize() Summary {
	summary := Summary{Total: len(r.Entries)}
	for _, entry := range r.Entries {
		switch entry.Outcome {
		case OutcomeSucceeded:
			summary.Succeeded++
		case OutcomeFailed:
			summary.Failed++
		case OutcomeCanceled:
			summary.Canceled++
		}
	}
	return summary
}
