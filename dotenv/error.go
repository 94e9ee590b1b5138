package dotenv

import (
	"log/slog"
	"slices"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package wrap one of these; test with [errors.Is]
// and recover the offending variable names with [Error.Names].
var (
	ErrFileNotReadable          = NewError("file not readable")
	ErrReadInput                = NewError("failed to read input")
	ErrUnterminatedQuote        = NewError("unterminated quote")
	ErrNestedVariableNotFound   = NewError("nested variable not found")
	ErrMissingRequiredVariables = NewError("missing required variables")
	ErrStoreWrite               = NewError("failed to write variable")
	ErrDecode                   = NewError("decode failed")
	ErrAssertion                = NewError("assertion failed")
	ErrInvalidFormat            = NewError("invalid format")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind  *Error      // Sentinel this error derives from (for errors.Is)
	msg   string      // Sentinel message
	names []string    // Variable names or expressions the error is about
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// Error implements the error interface.
//
// The message is built from the fields that are set:
//
//	"<msg>: <names>: <err>"
//
// where names are joined with ", " and empty parts are omitted.
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if len(e.names) > 0 {
		part = append(part, strings.Join(e.names, ", "))
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error derives from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t != nil && e.kind == t.kind
}

// Names returns the variable names (or expressions) the error refers to,
// in the order they were reported.
func (e *Error) Names() []string { return slices.Clone(e.names) }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if len(e.names) > 0 {
		attrs = append(attrs, slog.Any("names", e.names))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// For returns a copy of the error naming the given variables.
func (e *Error) For(names ...string) *Error {
	c := e.clone()
	c.names = append(c.names, names...)

	return c
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = append(c.attrs, attrs...)

	return c
}

func (e *Error) clone() *Error {
	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		names: slices.Clone(e.names),
		err:   e.err,
		attrs: slices.Clone(e.attrs),
	}
}
