package result

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the export has no usable data rows: either
// the file is empty or it contains only a header line.
var ErrEmptyInput = errors.New("empty file: input has no data rows")

// DecodeError wraps a failure to read or decode the input byte stream as text.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("encoding error: cannot decode input as text: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MalformedRowError reports a cell that failed strict-mode validation. It is
// never produced in default mode, which silently coerces malformed cells.
type MalformedRowError struct {
	Line   int // 1-based line number in the input, header included
	Field  string
	Value  string
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row: line %d: field %q: %s (value %q)", e.Line, e.Field, e.Reason, e.Value)
}

// InconsistentStudentError reports a repeated row whose student metadata
// disagrees with the first-seen row for the same register number. Only
// PivotStrict produces it; the default aggregator trusts the first occurrence.
type InconsistentStudentError struct {
	RegisterNo int
	Field      string
	First      string
	Got        string
}

func (e *InconsistentStudentError) Error() string {
	return fmt.Sprintf("inconsistent student data: register no %d: field %q changed from %q to %q",
		e.RegisterNo, e.Field, e.First, e.Got)
}
