package upstream

import (
	"errors"
	"fmt"
)

// APIError is a structured rejection from a reachable backend. Its message is
// surfaced to the user verbatim where available.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend rejected request (status %d)", e.StatusCode)
}

// ErrUnreachable wraps transport-level failures (DNS, timeout, refused
// connection). Callers must not interpret it as success or failure of a
// possibly-in-flight server-side effect.
var ErrUnreachable = errors.New("booking backend unreachable")

// IsBackendRejection reports whether err is a structured backend rejection
func IsBackendRejection(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsUnreachable reports whether err is a transport failure
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
