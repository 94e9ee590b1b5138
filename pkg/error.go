package pkg

// Sentinel errors for process-level failures outside the dotenv engine.
// These errors can be tested using errors.Is for reliable error checking.

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrCreateDir is returned when a runtime directory cannot be created.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrCreateDir = MakeErrorf("failed to create directory")

// ErrNoSource is returned when a command that requires input was given none.
var ErrNoSource = MakeErrorf("no source files")

// MakeError constructs an Error from the given errors, flattening any
// nested Error values.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case Error:
			e = append(e, err...)
		default:
			e = append(e, err)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from outermost to innermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.Backward(e) {
		if i < len(e)-1 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to the receiver and returns the result.
// The receiver's errors remain the outermost context of the message.
func (e Error) Wrap(err ...error) Error {
	return append(MakeError(err...), e...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether every error of target is contained in the receiver.
// Error is a slice and therefore not comparable, so errors.Is relies on this
// method to match sentinels after they have been wrapped.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 {
		return false
	}

	for _, err := range t {
		if !slices.Contains(e, err) {
			return false
		}
	}

	return true
}
