// internal/infrastructure/backend/errors.go
package backend

import (
	"errors"
	"fmt"
)

// Kind classifies a failed interaction with the commerce backend
type Kind int

const (
	// KindUnknown is the zero value; never produced by the client itself.
	KindUnknown Kind = iota
	// KindAuthExpired means the backend answered 401/403; the session is gone.
	KindAuthExpired
	// KindValidation means a client-side precondition failed and no network
	// call was made.
	KindValidation
	// KindBackend means the backend answered non-2xx with a message body.
	KindBackend
	// KindNetwork means the request never completed (connection failure).
	KindNetwork
	// KindTimeout means the request exceeded the configured request ceiling.
	KindTimeout
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindAuthExpired:
		return "auth_expired"
	case KindValidation:
		return "validation"
	case KindBackend:
		return "backend"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the result type every backend interaction failure is converted to,
// so callers handle failures by kind instead of string matching.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, when one was received
	Message string // user-facing message, verbatim from the backend when present
	Err     error  // underlying cause, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error", e.Kind)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError builds a Validation-kind error for failed preconditions
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// KindOf extracts the Kind from err, or KindUnknown for foreign errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
