// Package errs defines the error taxonomy shared by every symnmf package.
//
// Each failure carries a Kind (one of the sentinel errors below) so callers
// can branch with errors.Is while the CLI still collapses everything into a
// single user-facing line.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage is returned for a wrong argument count or shape.
	ErrUsage = errors.New("usage error")

	// ErrInvalidArgument is returned for non-integer or out-of-range k / iteration caps.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIO is returned when a dataset is missing, unreadable or malformed.
	ErrIO = errors.New("io error")

	// ErrNumerical is returned for zero-degree normalization, empty clusters,
	// degenerate silhouette input and non-finite intermediate values.
	ErrNumerical = errors.New("numerical error")
)

// Error is a classified failure.
//
// Kind is one of the package sentinels, Op names the failing operation and
// Err (optional) is the underlying cause, reachable via errors.Unwrap.
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	s := e.Kind.Error()
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool { return target == e.Kind }

func newf(kind error, op string, cause error, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Op: op, Msg: msg, Err: cause}
}

// Usage returns an ErrUsage-kind error.
func Usage(op, format string, args ...any) error {
	return newf(ErrUsage, op, nil, format, args...)
}

// Invalid returns an ErrInvalidArgument-kind error.
func Invalid(op, format string, args ...any) error {
	return newf(ErrInvalidArgument, op, nil, format, args...)
}

// Numerical returns an ErrNumerical-kind error.
func Numerical(op, format string, args ...any) error {
	return newf(ErrNumerical, op, nil, format, args...)
}

// IO wraps cause as an ErrIO-kind error. cause may be nil.
func IO(op string, cause error, format string, args ...any) error {
	return newf(ErrIO, op, cause, format, args...)
}

// Wrap classifies cause as a kind error without adding a message.
func Wrap(kind error, op string, cause error) error {
	return newf(kind, op, cause, "")
}

// KindOf returns the sentinel kind of err, or nil if err is unclassified.
func KindOf(err error) error {
	for _, k := range []error{ErrUsage, ErrInvalidArgument, ErrIO, ErrNumerical} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
