// Package pattern compiles date-time patterns made of field letters,
// quoted literals and optional sections into formatters that print and
// parse temporal fields.
package pattern

import (
	"errors"

	"github.com/goccy/temporalconv/internal/locale"
)

// Formatter prints Fields and parses text with a compiled pattern.
// A Formatter is immutable and safe for concurrent use.
type Formatter struct {
	name   string
	locale *locale.Locale
	root   *token
}

func (f *Formatter) String() string {
	return f.name
}

func (f *Formatter) Locale() *locale.Locale {
	return f.locale
}

// Parse reads the whole of text. Trailing text that the pattern does not
// consume is an error.
func (f *Formatter) Parse(text string) (*Parsed, error) {
	runes := []rune(text)
	var p Parsed
	n, err := f.root.Parse(runes, &p)
	if err != nil {
		var failure *parseFailure
		if errors.As(err, &failure) {
			return nil, &ParseError{Text: text, Index: failure.index, Reason: failure.reason}
		}
		return nil, &ParseError{Text: text, Reason: err.Error()}
	}
	if n != len(runes) {
		return nil, &ParseError{Text: text, Index: n, Reason: "unparsed text found"}
	}
	return &p, nil
}

// ParseFields parses text and resolves the captured values.
func (f *Formatter) ParseFields(text string) (Fields, error) {
	p, err := f.Parse(text)
	if err != nil {
		return Fields{}, err
	}
	fields, err := p.Resolve()
	if err != nil {
		return Fields{}, &ParseError{Text: text, Reason: err.Error()}
	}
	return fields, nil
}

func (f *Formatter) Format(fields Fields) (string, error) {
	formatted, err := f.root.Format(&fields)
	if err != nil {
		return "", err
	}
	return string(formatted), nil
}
