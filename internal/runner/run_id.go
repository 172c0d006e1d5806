package runner

import (
	"time"

	"github.com/google/uuid"
)

// NewRunID returns a sortable run identifier: a UTC timestamp plus a
// short random suffix.
func NewRunID() string {
	return NewRunIDAt(time.Now())
}

// NewRunIDAt builds a run identifier for an explicit time.
func NewRunIDAt(now time.Time) string {
	return FormatRunID(now, uuid.NewString()[:8])
}

// FormatRunID joins a timestamp and suffix into a run identifier.
func FormatRunID(now time.Time, suffix string) string {
	return now.UTC().Format("20060102T150405Z") + "-" + suffix
}
