package csvio

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below.
var (
	ErrMalformed         = errors.New("malformed file")
	ErrInvalidValue      = errors.New("invalid value")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// MalformedCSVError reports a file that could not be read as a table.
type MalformedCSVError struct {
	Line   int // 1-based line in the file, 0 when unknown
	Reason string
	Err    error
}

func (e *MalformedCSVError) Error() string {
	msg := "malformed CSV"
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedCSVError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}

// InvalidNumberError reports a cell mapped to a numeric field that does not
// hold a number.
type InvalidNumberError struct {
	Row    int // 1-based among imported rows; skipped blank rows are not counted
	Line   int // 1-based line in the source file, 0 when unknown
	Header string
	Value  string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("%s, column %q: invalid number %q", location(e.Row, e.Line), e.Header, e.Value)
}

func (e *InvalidNumberError) Unwrap() error { return ErrInvalidValue }

// InvalidDateError reports a cell mapped to the due date that is not a
// recognisable calendar date.
type InvalidDateError struct {
	Row    int
	Line   int
	Header string
	Value  string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("%s, column %q: invalid date %q", location(e.Row, e.Line), e.Header, e.Value)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidValue }

// location names the file line of a bad cell when known, else its row.
func location(row, line int) string {
	if line > 0 {
		return fmt.Sprintf("line %d", line)
	}
	return fmt.Sprintf("row %d", row)
}
