package firefly

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from a generation API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Transient reports whether the request may succeed when resubmitted.
// Throttling responses and server faults are transient; client errors
// are not.
func (e *APIError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// newAPIError builds an APIError from a response body, preferring the
// structured error message when one is present.
func newAPIError(statusCode int, body []byte) *APIError {
	var parsed struct {
		Message   string `json:"message"`
		ErrorText string `json:"error"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.ErrorText != "" {
			message = parsed.ErrorText
		}
	}
	return &APIError{StatusCode: statusCode, Message: message}
}
