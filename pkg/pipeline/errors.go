package pipeline

import (
	"context"
	"errors"
	"net"
)

// ErrRetriesExhausted wraps the last transient error once the retry budget
// is spent.
var ErrRetriesExhausted = errors.New("retries exhausted")

// ErrPollTimeout marks a job whose polling deadline elapsed before a
// terminal status was observed.
var ErrPollTimeout = errors.New("polling timed out")

// ErrCanceled marks a unit left unresolved by a batch interrupt.
var ErrCanceled = errors.New("canceled")

// transienter is implemented by errors that know their own retry class.
type transienter interface {
	Transient() bool
}

// Transient reports whether an error should be retried. Server faults,
// throttling responses, and network timeouts are transient; validation and
// other client errors are not. Context cancellation is never transient.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var classified transienter
	if errors.As(err, &classified) {
		return classified.Transient()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
