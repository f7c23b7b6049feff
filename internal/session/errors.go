package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Expected, typed outcomes the transport layer maps to protocol responses.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// deliberately indistinguishable to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrForbidden indicates an attempt to read another user's history.
	ErrForbidden = errors.New("access denied")
)

// InternalError wraps an unexpected fault with a correlation identifier. The
// caller sees only the identifier; the cause stays in the logs.
type InternalError struct {
	CorrelationID string
	cause         error
}

func newInternalError(cause error) *InternalError {
	return &InternalError{CorrelationID: uuid.NewString(), cause: cause}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error (correlation_id=%s): %v", e.CorrelationID, e.cause)
}

func (e *InternalError) Unwrap() error {
	return e.cause
}
