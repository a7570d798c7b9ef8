// Package serrors attaches a semantic kind to errors so every layer can tell
// a client mistake from a document that cannot be filled or a provider outage
// without knowing where the error came from. The HTTP handlers map kinds to
// status codes and the fill worker maps them to cancel, snooze or retry.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a sentinel naming an error category. Only NewKind creates one.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind returns a comparable sentinel called name.
func NewKind(name string) Kind { return kind{s: name} }

//nolint: gochecknoglobals
var (
	// ErrNotFound: the fill, template or blob does not exist.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized: missing or invalid bearer token.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden: authenticated but not allowed.
	ErrForbidden = NewKind("FORBIDDEN")
	// ErrBadRequest: the request itself is wrong, e.g. a missing PDF.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrConflict: the resource is not in the state the operation needs,
	// e.g. downloading the output of a pending fill.
	ErrConflict = NewKind("CONFLICT")
	ErrInternal = NewKind("INTERNAL")
	// ErrTimeout: a deadline passed while waiting on a provider.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrUnavailable: a provider failed in a way worth retrying later.
	ErrUnavailable = NewKind("UNAVAILABLE")
	// ErrRateLimited: the model provider asked us to slow down.
	ErrRateLimited = NewKind("RATE_LIMITED")
	// ErrUnprocessable: the inputs are well formed but cannot produce a
	// document, e.g. the template lacks a placeholder or the model answer has
	// no usable content.
	ErrUnprocessable = NewKind("UNPROCESSABLE")
)

// Error carries a kind, an optional cause and an optional message.
//
// errors.Is and errors.As match the kind as well as anything in the cause
// chain. Error() renders "msg: cause", "msg", "cause" or the kind name,
// whichever parts are set.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With returns an error of kind k with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap is With plus a cause.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly returns an error that is just the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	switch {
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}

	return (e.kind != nil && errors.Is(e.kind, target)) ||
		(e.err != nil && errors.Is(e.err, target))
}

func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}

	return (e.kind != nil && errors.As(e.kind, target)) ||
		(e.err != nil && errors.As(e.err, target))
}

// Kind returns the kind, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message without the cause.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped error, or nil.
func (e *Error) Cause() error { return e.err }

// KindOf returns the outermost kind in err's chain, or ErrInternal when there
// is none.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return ErrInternal
}

// MessageOf returns the message of the outermost *Error in err's chain that
// has one.
func MessageOf(err error) string {
	for err != nil {
		var se *Error
		if !errors.As(err, &se) {
			return ""
		}
		if se.msg != "" {
			return se.msg
		}
		err = se.err
	}

	return ""
}

// Permanent reports whether running the same operation again cannot succeed.
func Permanent(err error) bool {
	switch KindOf(err) {
	case ErrBadRequest, ErrNotFound, ErrUnprocessable, ErrUnauthorized, ErrForbidden:
		return true
	default:
		return false
	}
}
