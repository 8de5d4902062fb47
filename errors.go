package paperwave

import (
	"errors"
	"fmt"
)

// ErrUnknownStatus is returned when an invalid task status is parsed.
var ErrUnknownStatus = errors.New("paperwave: unknown task status")

// ErrEmptyTaskID is returned when an operation is given a blank task id.
var ErrEmptyTaskID = errors.New("paperwave: empty task id")

// APIError describes a non-2xx response from the workspace API.
type APIError struct {
	// StatusCode is the HTTP status the server returned.
	StatusCode int
	// Reason is the server-provided error message, when the body carried one.
	Reason string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("paperwave: server returned %d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("paperwave: server returned %d", e.StatusCode)
}
