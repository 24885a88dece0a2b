// internal/app/system/apperr/apperr.go

// Package apperr defines the failure taxonomy shared by stores, policies,
// and handlers: Unauthenticated, Forbidden, NotFound, BadRequest, Conflict,
// and Internal. Every failure carries a human-readable message and is
// surfaced to the caller at the point of detection; webjson maps kinds to
// HTTP status codes in one place.
package apperr

import "errors"

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindBadRequest
	KindConflict
)

// Error is a kinded error with a message meant for the API caller.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional underlying cause, not shown to callers
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthenticated means credentials are missing or invalid.
func Unauthenticated(msg string) error { return &Error{Kind: KindUnauthenticated, Msg: msg} }

// Forbidden means the principal is known but lacks access.
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Msg: msg} }

// NotFound means the entity does not exist.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }

// BadRequest covers invalid payloads, invalid state transitions, and
// duplicate unique fields.
func BadRequest(msg string) error { return &Error{Kind: KindBadRequest, Msg: msg} }

// Conflict covers redundant transitions (re-finalizing) and lost
// optimistic-concurrency races.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Msg: msg} }

// Internal wraps an unexpected failure. The cause is logged server-side;
// callers only see msg.
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the caller-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal server error"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }
