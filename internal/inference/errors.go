package inference

import (
	"errors"
	"fmt"
)

// ErrMissingInput is the only failure surfaced to the caller as a hard error:
// no image was supplied, so analysis is never attempted.
var ErrMissingInput = errors.New("no image supplied")

// FailureKind classifies why a classification attempt produced no usable
// result. Every kind except the caller-contract violation above is absorbed
// by the orchestrator and converted into a synthetic result.
type FailureKind int

const (
	// FailureUnreachable - the service could not be reached at all
	// (network error, DNS, timeout, cancellation).
	FailureUnreachable FailureKind = iota
	// FailureServiceError - the service answered with an error status or an
	// explicit error body.
	FailureServiceError
	// FailureMalformedResponse - 200 answer whose body does not parse into
	// the expected shape. Treated exactly like a service error.
	FailureMalformedResponse
)

func (k FailureKind) String() string {
	switch k {
	case FailureUnreachable:
		return "unreachable"
	case FailureServiceError:
		return "service_error"
	case FailureMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// FailureError wraps the underlying cause of a failed classification attempt
// with its kind, for logging and retry decisions.
type FailureError struct {
	Kind FailureKind
	Err  error
}

func (e *FailureError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("classification failed (%s)", e.Kind)
	}
	return fmt.Sprintf("classification failed (%s): %v", e.Kind, e.Err)
}

func (e *FailureError) Unwrap() error { return e.Err }

// failureKind extracts the kind from err, defaulting to unreachable for
// errors that did not come out of the client.
func failureKind(err error) FailureKind {
	var fe *FailureError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return FailureUnreachable
}
