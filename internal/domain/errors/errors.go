package errors

import (
	"errors"
	"fmt"
)

// Kind classifies account errors so handlers can map them to HTTP status and
// operators can tell compensated failures from unresolved drift.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound: a referenced id does not exist.
	KindNotFound
	// KindConflict: duplicate email for the entity kind.
	KindConflict
	// KindValidation: malformed input, rejected before any side effect.
	KindValidation
	// KindProvider: opaque identity-provider failure, propagated uninterpreted.
	KindProvider
	// KindOrchestration: a create/delete workflow failed after a
	// consistency-risky side effect; compensation was attempted and the
	// stores are believed consistent.
	KindOrchestration
	// KindInconsistency: compensation itself failed. Neither store is known
	// to be coherent; manual intervention implied. Most severe.
	KindInconsistency
)

// Error carries a categorical kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// NotFound returns a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a KindConflict error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Validation returns a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Provider wraps an identity-provider error without interpreting it.
func Provider(cause error) *Error {
	return &Error{Kind: KindProvider, Message: "identity provider error", cause: cause}
}

// Orchestration returns a KindOrchestration error hiding the given cause.
// The cause stays available for logging via Unwrap but is never part of the
// message surfaced to callers.
func Orchestration(message string, cause error) *Error {
	return &Error{Kind: KindOrchestration, Message: message, cause: cause}
}

// Inconsistency returns a KindInconsistency error hiding the given cause.
func Inconsistency(message string, cause error) *Error {
	return &Error{Kind: KindInconsistency, Message: message, cause: cause}
}

// KindOf extracts the kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
