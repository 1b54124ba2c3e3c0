package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in business logic terms, not HTTP terms.
type Code string

const (
	CodeNotFound Code = "not_found"
	CodeInternal Code = "internal_error"

	// CodeNetwork marks transient transport failures. Never auto-retried;
	// only a user-triggered refresh goes back to the network.
	CodeNetwork Code = "network_error"

	// CodeAuthRejected is the 401-equivalent. Any authenticated call that
	// comes back with this code forces a logout.
	CodeAuthRejected Code = "auth_rejected"

	// CodeValidation covers bad credentials at login. Surfaced to the
	// caller for field-level feedback; no state mutation.
	CodeValidation Code = "validation_failed"

	// CodeVerificationFetch marks a failed employer verification status
	// fetch. The consuming gate stays in its waiting state.
	CodeVerificationFetch Code = "verification_fetch_failed"
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across session, store, and gate layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
