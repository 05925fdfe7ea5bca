package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFlightNotFound means the flight id references nothing. Not retryable.
	ErrFlightNotFound = errors.New("flight not found")

	// ErrNoCapacity means remaining seats was zero at the moment of the locked
	// check. A legitimate business outcome, not retryable.
	ErrNoCapacity = errors.New("no available seats")

	// ErrTransient marks infrastructure failures via errors.Is. The whole
	// reserve call may be retried: no partial state survives a rollback.
	ErrTransient = errors.New("transient store failure")

	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")

	ErrTokenMissing = errors.New("token is missing")
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// TransientError wraps the store-level cause of an aborted unit of work.
type TransientError struct {
	Cause error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient store failure: %v", e.Cause)
}

func (e *TransientError) Unwrap() error { return e.Cause }

func (e *TransientError) Is(target error) bool { return target == ErrTransient }
