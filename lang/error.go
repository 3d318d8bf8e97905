package lang

//go:generate go tool stringer --linecomment --type errKind --output errkind_string.go

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// errKind partitions errors into the kinds a program can fail with.
// The first two arise before execution; the rest abort the unit that
// raised them at runtime.
type errKind int

const (
	errLex        errKind = iota // lex error
	errParse                     // parse error
	errName                      // name error
	errType                      // type error
	errIndex                     // index error
	errArity                     // arity error
	errArithmetic                // arithmetic error
)

// Predefined errors (sentinel values). Use errors.Is against these to
// match by kind: every error of a kind matches its sentinel regardless
// of position, attributes, or wrapped cause.
var (
	ErrLex        = newError(errLex)
	ErrParse      = newError(errParse)
	ErrName       = newError(errName)
	ErrType       = newError(errType)
	ErrIndex      = newError(errIndex)
	ErrArity      = newError(errArity)
	ErrArithmetic = newError(errArithmetic)
)

// Error is a positioned engine error with optional structured logging
// attributes. It implements error, slog.LogValuer, and kind matching
// via errors.Is.
type Error struct {
	kind  errKind
	err   error       // Wrapped cause (for errors.Unwrap)
	pos   Pos         // Source position, zero when unknown
	attrs []slog.Attr // Attributes for structured logging
}

func newError(kind errKind) *Error {
	return &Error{kind: kind}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<kind> at <pos>: <err>" // position and cause both set
	//   2. "<kind> at <pos>"        // cause is nil
	//   3. "<kind>: <err>"          // position unknown
	//   4. "<kind>"                 // bare sentinel
	var buf strings.Builder

	buf.WriteString(e.kind.String())

	if !e.pos.IsZero() {
		buf.WriteString(" at ")
		buf.WriteString(e.pos.String())
	}

	if e.err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.err.Error())
	}

	return buf.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches any Error of the same kind, so that derived errors compare
// equal to their sentinel.
func (e *Error) Is(target error) bool {
	var te *Error
	if !errors.As(target, &te) {
		return false
	}

	return e.kind == te.kind
}

// Pos returns the source position the error was raised at. It is the
// zero Pos when the position is unknown.
func (e *Error) Pos() Pos { return e.pos }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if !e.pos.IsZero() {
		attrs = append(attrs, slog.String("pos", e.pos.String()))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error of the same kind wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:  e.kind,
		err:   err,
		pos:   e.pos,
		attrs: e.attrs, // Share attrs
	}
}

// At creates a new Error of the same kind positioned at pos.
func (e *Error) At(pos Pos) *Error {
	return &Error{
		kind:  e.kind,
		err:   e.err,
		pos:   pos,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		kind:  e.kind,
		err:   e.err,
		pos:   e.pos,
		attrs: newAttrs,
	}
}

// Annotate renders err with a caret-annotated snippet of the source
// line it points at. Errors without a position, and errors that are not
// engine errors, render as err.Error() alone.
func Annotate(err error, source string) string {
	var ee *Error
	if !errors.As(err, &ee) || ee.pos.IsZero() {
		return err.Error()
	}

	lines := strings.Split(source, "\n")
	if ee.pos.Line < 1 || ee.pos.Line > len(lines) {
		return err.Error()
	}

	line := lines[ee.pos.Line-1]
	num := strconv.Itoa(ee.pos.Line)

	var buf strings.Builder

	buf.WriteString(err.Error())
	buf.WriteString(":\n  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(line)
	buf.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(num)+5)
	if ee.pos.Col > 0 {
		padding += strings.Repeat(" ", ee.pos.Col-1)
	}

	buf.WriteString(padding + "^")

	return buf.String()
}
