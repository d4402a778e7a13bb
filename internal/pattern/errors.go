package pattern

import (
	"fmt"
)

// UnsupportedFieldError is returned when a pattern prints a field that
// the value does not carry, for example an hour for a date.
type UnsupportedFieldError struct {
	Field string
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("unsupported field: %s", e.Field)
}

// ParseError reports the position in the text where parsing stopped.
type ParseError struct {
	Text   string
	Index  int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("text '%s' could not be parsed at index %d: %s", e.Text, e.Index, e.Reason)
}

// CompileError is returned for a malformed pattern.
type CompileError struct {
	Pattern string
	Reason  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid pattern [%s]: %s", e.Pattern, e.Reason)
}

// parseFailure carries the progress made before a token failed.
type parseFailure struct {
	index  int
	reason string
}

func (e *parseFailure) Error() string {
	return e.reason
}

func failAt(index int, format string, args ...interface{}) error {
	return &parseFailure{index: index, reason: fmt.Sprintf(format, args...)}
}

// shift moves the failure index of err by offset.
func shift(err error, offset int) error {
	if f, ok := err.(*parseFailure); ok {
		return &parseFailure{index: f.index + offset, reason: f.reason}
	}
	return &parseFailure{index: offset, reason: err.Error()}
}
