// Package sqldate encodes and decodes the fixed-width textual date and time
// literals exchanged with MySQL-compatible SQL servers.
//
// Four shapes are supported, distinguished on input by length alone:
//
//	YYYY                 Year
//	HH:MM:SS             Time
//	YYYY-MM-DD           Date
//	YYYY-MM-DD HH:MM:SS  DateTime
//
// A [Codec] parses these literals into immutable [Value]s and formats Values
// back into single-quoted SQL literals, resolving calendar fields in a caller
// supplied time zone through a shared [calendar.Cache].
package sqldate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLiteral wraps errors for text that is not a valid date or time
	// literal.
	ErrInvalidLiteral = errors.New("invalid SQL date literal")

	// ErrScan wraps scanning errors.
	ErrScan = errors.New("scan")
)

// LiteralError records the literal that failed to parse and why.
type LiteralError struct {
	// Literal is the text passed to Parse.
	Literal string

	// Err is the underlying cause.
	Err error
}

// Error returns the error message.
func (e *LiteralError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrInvalidLiteral, e.Literal, e.Err)
}

// Unwrap returns ErrInvalidLiteral and the underlying cause, so that both
// satisfy [errors.Is].
func (e *LiteralError) Unwrap() []error {
	return []error{ErrInvalidLiteral, e.Err}
}

func invalidLiteral(src string, err error) error {
	return &LiteralError{Literal: src, Err: err}
}
