package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned when an operation needs an active session.
	ErrNoSession = errors.New("no active session")
	// ErrSessionCompleted is returned when answering past the last question.
	ErrSessionCompleted = errors.New("session already completed")
	// ErrSubmitInFlight is returned when a submit is attempted while a
	// previous one has not resolved yet.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrStaleResponse marks a gateway response that arrived after the
	// session it belonged to was reset or replaced.
	ErrStaleResponse = errors.New("response belongs to a discarded session")
)

// ValidationError is a locally detected input problem. It never reaches the
// remote gateway; the engine converts it straight into feedback text.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// LookupFailure wraps a failed subject lookup. The server-provided message
// is surfaced verbatim to the user.
type LookupFailure struct {
	Message string
}

func (e *LookupFailure) Error() string { return e.Message }

// SubmissionFailure wraps a failed answer submit. It is always retryable:
// the session is left on the same question with the draft intact.
type SubmissionFailure struct {
	Err error
}

func (e *SubmissionFailure) Error() string {
	return fmt.Sprintf("submit failed: %v", e.Err)
}

func (e *SubmissionFailure) Unwrap() error { return e.Err }

// IsValidation reports whether err is a locally handled validation error.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
