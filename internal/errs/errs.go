// Package errs classifies failures of external collaborators so callers can
// decide whether to surface them or degrade locally.
package errs

import (
	"errors"
	"fmt"
)

// Kinds of failure. Compare with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrParseFailure        = errors.New("parse failure")
	ErrMisconfigured       = errors.New("misconfigured")
	ErrInvalidInput        = errors.New("invalid input")
)

// Error carries the failure kind together with the source and operation that
// produced it.
type Error struct {
	Kind       error
	Source     string
	Op         string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Op != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Op)
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func NotFound(source, op string) *Error {
	return &Error{Kind: ErrNotFound, Source: source, Op: op}
}

func Upstream(source, op string, status int, cause error) *Error {
	return &Error{Kind: ErrUpstreamUnavailable, Source: source, Op: op, StatusCode: status, Cause: cause}
}

func Parse(source, op string, cause error) *Error {
	return &Error{Kind: ErrParseFailure, Source: source, Op: op, Cause: cause}
}

func Misconfigured(source, op string, cause error) *Error {
	return &Error{Kind: ErrMisconfigured, Source: source, Op: op, Cause: cause}
}

func Invalid(source, op string, cause error) *Error {
	return &Error{Kind: ErrInvalidInput, Source: source, Op: op, Cause: cause}
}

// KindOf returns the failure kind of err or nil when err is not classified.
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrUpstreamUnavailable, ErrParseFailure, ErrMisconfigured, ErrInvalidInput} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
