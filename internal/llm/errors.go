package llm

import (
	"fmt"

	"github.com/liftwise/coach/internal/errors"
)

var (
	// ErrInvalidEndpoint means the configured backend URL could not be used.
	ErrInvalidEndpoint = errors.NewSentinel("invalid backend endpoint")
	// ErrInvalidEnvelope means the response body did not match the backend's
	// documented envelope shape.
	ErrInvalidEnvelope = errors.NewSentinel("invalid response envelope")
	// ErrNoContent means the envelope decoded fine but carried no text.
	ErrNoContent = errors.NewSentinel("no content in response")
)

// BackendError is a non-2xx response from a reasoning backend. The body is
// kept verbatim so callers can log what the provider actually said.
type BackendError struct {
	Status int
	Body   string
}

func (e *BackendError) Error() string {
	body := e.Body
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, body)
}

// ParseError means the backend answered but the payload could not be decoded
// into the expected type. Fragment holds the start of the offending payload
// and FieldPath the first field that failed to decode, when known.
type ParseError struct {
	Detail    string
	Fragment  string
	FieldPath string
	Err       error
}

func (e *ParseError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("parsing response: %s at field %q (payload starts %q)", e.Detail, e.FieldPath, e.Fragment)
	}
	return fmt.Sprintf("parsing response: %s (payload starts %q)", e.Detail, e.Fragment)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
