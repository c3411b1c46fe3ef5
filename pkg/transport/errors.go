package transport

import (
	"errors"
	"fmt"
)

// ErrTimeout is wrapped by TransportError when the request deadline elapsed.
var ErrTimeout = errors.New("request timed out")

// TransportError reports a network-level failure.
type TransportError struct {
	// Detail is the textual description of the failure.
	Detail string

	// StatusCode is an HTTP-like status code when one is available, else 0.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %s (code %d)", e.Detail, e.StatusCode)
	}
	return "transport error: " + e.Detail
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a recognised non-success status from the host.
type ProtocolError struct {
	// StatusCode is the status code the host returned.
	StatusCode int

	// Message is the status message.
	Message string

	// Body is the response body, possibly truncated.
	Body string
}

// Error implements error.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("host returned status %d: %s", e.StatusCode, e.Message)
}
