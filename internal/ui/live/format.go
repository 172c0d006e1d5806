package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"firefly/pkg/pipeline"
)

// formatUnitID returns the display id for a unit row.
func formatUnitID(row UnitRow) string {
	return "#" + pad2(row.Index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatLabel truncates unit labels for display.
func formatLabel(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return ""
	}
	const limit = 60
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatStatus renders the colored status text for a row.
func formatStatus(row UnitRow, noColor bool) string {
	text := statusLabel(row)
	if noColor {
		return text
	}
	return statusStyle(row.Status).Render(text)
}

// statusLabel maps row statuses to display labels.
func statusLabel(row UnitRow) string {
	switch row.Status {
	case pipeline.UnitQueued:
		return "queued"
	case pipeline.UnitThrottled:
		return "waiting for permit"
	case pipeline.UnitSubmitting:
		return "submitting"
	case pipeline.UnitRetrying:
		if row.RetryDelay > 0 {
			return "retrying in " + formatDuration(row.RetryDelay)
		}
		return "retrying"
	case pipeline.UnitPolling:
		return "polling"
	case pipeline.UnitDownloading:
		return "downloading"
	case pipeline.UnitSucceeded:
		return "succeeded"
	case pipeline.UnitFailed:
		return "failed"
	case pipeline.UnitCanceled:
		return "canceled"
	default:
		return string(row.Status)
	}
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row UnitRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatRetries formats retry counts for display.
func formatRetries(retries int) string {
	if retries <= 0 {
		return ""
	}
	return fmtInt(retries)
}

// formatDetail shows outputs for finished rows and the error otherwise.
func formatDetail(row UnitRow) string {
	if row.Error != "" {
		return formatLabel(row.Error)
	}
	if len(row.Outputs) > 0 {
		return formatLabel(strings.Join(row.Outputs, ", "))
	}
	return row.JobID
}

// statusStyle selects a style for a given status.
func statusStyle(status pipeline.UnitEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case pipeline.UnitSucceeded:
		color = lipgloss.Color("42")
	case pipeline.UnitFailed:
		color = lipgloss.Color("196")
	case pipeline.UnitCanceled:
		color = lipgloss.Color("220")
	case pipeline.UnitThrottled, pipeline.UnitRetrying:
		color = lipgloss.Color("39")
	case pipeline.UnitSubmitting, pipeline.UnitPolling, pipeline.UnitDownloading:
		color = lipgloss.Color("33")
	case pipeline.UnitQueued:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
