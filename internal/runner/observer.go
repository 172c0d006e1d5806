package runner

import (
	"fmt"
	"io"
	"strings"

	"firefly/pkg/pipeline"
)

// PlainObserver prints one progress line per unit event, for non-TTY
// runs. It is safe for concurrent use.
type PlainObserver struct {
	out io.Writer
}

// NewPlainObserver wraps a writer for concurrent event logging.
func NewPlainObserver(out io.Writer) *PlainObserver {
	return &PlainObserver{out: &lockedWriter{w: out}}
}

// OnUnitEvent prints a single progress line.
func (o *PlainObserver) OnUnitEvent(event pipeline.UnitEvent) {
	switch event.Type {
	case pipeline.UnitQueued, pipeline.UnitThrottled:
		// Quiet states. The submitting line is the first thing shown.
		return
	case pipeline.UnitRetrying:
		fmt.Fprintf(o.out, "[%d] %s: retrying in %s after attempt %d: %s\n",
			event.Index+1, truncateLabel(event.Label), event.RetryDelay, event.Attempt, event.Error)
	case pipeline.UnitSucceeded:
		fmt.Fprintf(o.out, "[%d] %s: succeeded, wrote %s\n",
			event.Index+1, truncateLabel(event.Label), strings.Join(event.Outputs, ", "))
	case pipeline.UnitFailed:
		fmt.Fprintf(o.out, "[%d] %s: failed: %s\n", event.Index+1, truncateLabel(event.Label), event.Error)
	case pipeline.UnitCanceled:
		fmt.Fprintf(o.out, "[%d] %s: canceled\n", event.Index+1, truncateLabel(event.Label))
	default:
		fmt.Fprintf(o.out, "[%d] %s: %s\n", event.Index+1, truncateLabel(event.Label), event.Type)
	}
}

const maxLabelWidth = 40

// truncateLabel bounds labels for single-line output.
func truncateLabel(label string) string {
	if len(label) <= maxLabelWidth {
		return label
	}
	return label[:maxLabelWidth-1] + "…"
}
