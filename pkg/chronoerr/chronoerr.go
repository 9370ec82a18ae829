// Package chronoerr defines the error taxonomy shared by every chronology
// package.
//
// The core never recovers from or retries an error: each one is either a
// caller contract violation or a genuine numeric boundary. Callers that need
// to react to a particular category use Is:
//
//	if chronoerr.Is(err, chronoerr.OutOfRange) {
//	    // reject the user's input
//	}
package chronoerr

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind classifies an Error.
type Kind int

const (
	// InvalidArgument: a required input was missing or malformed at a boundary call.
	InvalidArgument Kind = iota + 1
	// OutOfRange: a field value outside [lower, upper] for the field's current context.
	OutOfRange
	// Unsupported: a non-zero write/add to a field the chronology or period type does not model.
	Unsupported
	// Overflow: a computation whose true result does not fit in 64 (or 32) bits.
	Overflow
	// IllegalState: a precise-only result requested from an imprecise value.
	IllegalState
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case OutOfRange:
		return "field value out of range"
	case Unsupported:
		return "unsupported operation"
	case Overflow:
		return "arithmetic overflow"
	case IllegalState:
		return "illegal state"
	default:
		return "unknown error kind " + strconv.Itoa(int(k))
	}
}

// Error is the single error type returned by the chronology packages.
// Field, Value, Lower and Upper are only meaningful for OutOfRange errors
// (Field is also set on Unsupported errors when a field is involved).
type Error struct {
	Kind  Kind
	Field string
	Value int64
	Lower int64
	Upper int64
	Msg   string
}

func (e *Error) Error() string {
	switch {
	case e.Kind == OutOfRange && e.Msg == "":
		return fmt.Sprintf("%s: value %d for %s must be in the range [%d,%d]",
			e.Kind, e.Value, e.Field, e.Lower, e.Upper)
	case e.Kind == OutOfRange:
		return fmt.Sprintf("%s: value %d for %s: %s", e.Kind, e.Value, e.Field, e.Msg)
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Msg)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	default:
		return e.Kind.String()
	}
}

// Is reports whether err (or anything it wraps) is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or 0 when err is not a chronology error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// Invalid returns an InvalidArgument error.
func Invalid(format string, args ...interface{}) error {
	return &Error{Kind: InvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// Range returns an OutOfRange error carrying the field name and legal bounds.
func Range(field string, value, lower, upper int64) error {
	return &Error{Kind: OutOfRange, Field: field, Value: value, Lower: lower, Upper: upper}
}

// RangeMsg returns an OutOfRange error whose bounds are not expressible as
// a single interval (e.g. a value skipped by the calendar).
func RangeMsg(field string, value int64, msg string) error {
	return &Error{Kind: OutOfRange, Field: field, Value: value, Msg: msg}
}

// UnsupportedField returns an Unsupported error naming the field.
func UnsupportedField(field string) error {
	return &Error{Kind: Unsupported, Field: field, Msg: "field is not supported"}
}

// UnsupportedOp returns an Unsupported error with a free-form message.
func UnsupportedOp(format string, args ...interface{}) error {
	return &Error{Kind: Unsupported, Msg: fmt.Sprintf(format, args...)}
}

// Overflowed returns an Overflow error.
func Overflowed(format string, args ...interface{}) error {
	return &Error{Kind: Overflow, Msg: fmt.Sprintf(format, args...)}
}

// Illegal returns an IllegalState error.
func Illegal(format string, args ...interface{}) error {
	return &Error{Kind: IllegalState, Msg: fmt.Sprintf(format, args...)}
}
