package live

import (
	"fmt"

	"firefly/pkg/pipeline"
)

// Reduce applies a unit event to the UI state.
func Reduce(state State, event pipeline.UnitEvent) State {
	state = ensureRow(state, event)
	state = applyUnitEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event pipeline.UnitEvent) State {
	if event.Index < 0 || event.Index < len(state.Rows) {
		return state
	}
	rows := make([]UnitRow, event.Index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = UnitRow{Index: i, Status: pipeline.UnitQueued}
	}
	state.Rows = rows
	return state
}

// applyUnitEvent updates a row with the given event.
func applyUnitEvent(state State, event pipeline.UnitEvent) State {
	if event.Index < 0 || event.Index >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Index]
	if row.Kind == "" {
		row.Kind = event.Kind
	}
	if row.Label == "" {
		row.Label = event.Label
	}
	if event.JobID != "" {
		row.JobID = event.JobID
	}

	row.Status = event.Type
	switch event.Type {
	case pipeline.UnitRetrying:
		row.Retries++
		row.RetryDelay = event.RetryDelay
	case pipeline.UnitSubmitting:
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	}
	if isTerminalStatus(event.Type) {
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
		row.Outputs = event.Outputs
		row.Error = event.Error
	}
	state.Rows[event.Index] = row
	return state
}

// isTerminalStatus reports whether a status is final.
func isTerminalStatus(status pipeline.UnitEventType) bool {
	switch status {
	case pipeline.UnitSucceeded, pipeline.UnitFailed, pipeline.UnitCanceled:
		return true
	default:
		return false
	}
}

// recount recomputes status counts for the current rows.
func recount(rows []UnitRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case pipeline.UnitQueued:
			counts.Queued++
		case pipeline.UnitThrottled, pipeline.UnitRetrying:
			counts.Waiting++
		case pipeline.UnitSubmitting:
			counts.Submitting++
		case pipeline.UnitPolling:
			counts.Polling++
		case pipeline.UnitDownloading:
			counts.Downloading++
		case pipeline.UnitSucceeded:
			counts.Done++
			counts.Succeeded++
		case pipeline.UnitFailed:
			counts.Done++
			counts.Failed++
		case pipeline.UnitCanceled:
			counts.Done++
			counts.Canceled++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event pipeline.UnitEvent) string {
	switch event.Type {
	case pipeline.UnitRetrying:
		return fmt.Sprintf("#%d retrying in %s: %s", event.Index+1, formatDuration(event.RetryDelay), event.Error)
	case pipeline.UnitFailed:
		return fmt.Sprintf("#%d failed: %s", event.Index+1, event.Error)
	case pipeline.UnitCanceled:
		return fmt.Sprintf("#%d canceled", event.Index+1)
	case pipeline.UnitSucceeded:
		return fmt.Sprintf("#%d completed", event.Index+1)
	}
	return ""
}
