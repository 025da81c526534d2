package sseclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidRetry is wrapped by the errors returned when a message
// carries a "retry" field whose value is not a valid non-negative
// base-10 integer.
var ErrInvalidRetry = errors.New("invalid retry value")

// ConnectionError is the type that wraps all the connection errors that
// occur. It is returned when a stream cannot be established or
// re-established: request failures, rejected responses and exhausted
// reconnection attempts. Failures that happen mid-stream after a
// successful connect are not surfaced through it; those are handled by
// the reader's reconnection loop.
type ConnectionError struct {
	// The request for which the connection failed.
	Req *http.Request
	// The reason the operation failed.
	Err error
	// The reason why the request failed.
	Reason string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("request failed: %s: %v", e.Reason, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Temporary returns whether the underlying error is temporary.
func (e *ConnectionError) Temporary() bool {
	var t interface{ Temporary() bool }
	if errors.As(e.Err, &t) {
		return t.Temporary()
	}
	return false
}

// Timeout returns whether the underlying error is caused by a timeout.
func (e *ConnectionError) Timeout() bool {
	var t interface{ Timeout() bool }
	if errors.As(e.Err, &t) {
		return t.Timeout()
	}
	return false
}
