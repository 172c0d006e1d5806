package runner

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"firefly/pkg/pipeline"
)

// RenderReportTable writes the per-unit outcome table and summary line.
func RenderReportTable(w io.Writer, results Results) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKIND\tLABEL\tOUTCOME\tDURATION\tDETAIL")
	for _, entry := range results.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			entry.Index+1,
			entry.Kind,
			truncateLabel(entry.Label),
			entry.Outcome,
			entry.Duration.Round(time.Millisecond),
			entryDetail(entry),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	summary := results.Summary
	fmt.Fprintf(w, "\n%d total, %d succeeded, %d failed, %d canceled\n",
		summary.Total, summary.Succeeded, summary.Failed, summary.Canceled)
	return nil
}

// entryDetail shows outputs for successes and the error otherwise.
func entryDetail(entry pipeline.Entry) string {
	if entry.Outcome == pipeline.OutcomeSucceeded {
		return strings.Join(entry.Outputs, ", ")
	}
	return entry.Error
}
