package converter

import (
	"errors"
	"fmt"
)

const invalidInputKey = "invalidInput"

var (
	ErrInvalidValueKind = errors.New("invalid value kind. allowed kinds are 'date', 'time' and 'datetime'")
	ErrInvalidInput     = errors.New("invalid input")
)

// ValidationError reports input that no pattern could parse.
type ValidationError struct {
	Scope string `json:"scope"`
	Key   string `json:"key"`
	Input string `json:"input"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %q", e.Scope, e.Key, e.Input)
}

// MessageKey is the message bundle key of the error, for example
// "converter.localDate.invalidInput".
func (e *ValidationError) MessageKey() string {
	return e.Scope + "." + e.Key
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

type ValidationErrors []*ValidationError

func (e *ValidationErrors) Add(err *ValidationError) {
	if e == nil {
		return
	}
	*e = append(*e, err)
}
