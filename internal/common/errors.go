// Package common defines shared constants and sentinel errors used across
// timekeeper layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")

	// Service-level errors.
	ErrorValidation = errors.New("validation error")
	ErrorInternal   = errors.New("internal error")
)

// Error pairs a sentinel kind with a message that is safe to return to
// API callers.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NotFound returns an error of kind ErrorNotFound with the given message.
func NotFound(msg string) error {
	return &Error{Kind: ErrorNotFound, Message: msg}
}

// Conflict returns an error of kind ErrorConflict with the given message.
func Conflict(msg string) error {
	return &Error{Kind: ErrorConflict, Message: msg}
}

// Message extracts the caller-safe message from err, falling back to def.
func Message(err error, def string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return def
}
