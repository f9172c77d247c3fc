package resource

import (
	"errors"
	"fmt"
)

// ErrAlreadyMounted is returned when Observe is called twice on one view.
var ErrAlreadyMounted = errors.New("view already mounted")

// ErrUnexpectedShape is reported in strict mode when a payload carries no list.
var ErrUnexpectedShape = errors.New("unexpected response shape: expected a list or a results envelope")

// ProtocolError means the server answered with a non-2xx status.
type ProtocolError struct {
	StatusCode int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// TransportError means the request or the body read did not complete, or the
// body was not valid JSON. Its message is the underlying error's.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
