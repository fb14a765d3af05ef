package hospitalapi

import "fmt"

// The gateway maps every failure into one of three error kinds, which
// propagate to the portals unchanged: TransportError for network failures
// and 5xx responses, ValidationError for 4xx responses and malformed
// payloads, NotFoundError for 404s.

type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type ValidationError struct {
	Op      string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

type NotFoundError struct {
	Op      string
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
