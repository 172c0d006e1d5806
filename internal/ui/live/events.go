package live

import (
	"firefly/internal/runner"
	"firefly/pkg/pipeline"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventUnit delivers a work unit status update.
	EventUnit
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind    EventKind
	RunID   string
	Command string
	Unit    pipeline.UnitEvent
	Results runner.Results
}
