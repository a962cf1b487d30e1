package bot

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned when the caller's role does not allow the
// operation.
var ErrPermissionDenied = errors.New("permission denied")

// ErrTargetNotFound is returned when the addressed user has never contacted
// the system.
var ErrTargetNotFound = errors.New("target profile not found")

// ErrMalformedCommand is returned when a command carries neither a reply nor
// a syntactically valid addressing token, or when a verb or callback token
// is not recognized.
var ErrMalformedCommand = errors.New("malformed command")

// ErrUnknownCaller is returned when the caller has no profile, i.e. has not
// gone through first-contact bootstrap yet.
var ErrUnknownCaller = errors.New("caller has no profile")

// ValidationError reports a user-correctable argument problem, rendered by
// the transport as a usage hint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StoreError wraps a backing-store failure. The caller is told to retry the
// whole command; the wrapped detail is for the operator log only.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
