// Package normalize collapses separators in user input and in format
// patterns so that both sides can be compared on single spaces.
package normalize

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// DefaultSeparatorPattern matches a 'T' between two digits or any run of
// comma, slash, colon, whitespace, period or hyphen.
const DefaultSeparatorPattern = `(?<=[0-9])T(?=[0-9])|[,/:\s\.-]+`

var (
	defaultSeparators = MustSeparators(DefaultSeparatorPattern)

	// a run of separators or quoted literals inside a format pattern
	patternSeparatorRe = regexp2.MustCompile(`([-,\.\s/:-]|('.*?'))+`, regexp2.None)

	// everything except year and month letters together with the spaces before it
	yearMonthStripRe = regexp2.MustCompile(` *[^ yM]`, regexp2.None)

	// the boundary between a year run and a month run written without a separator
	yearMonthBoundaryRe = regexp2.MustCompile(`(?<=y)(?=M)|(?<=M)(?=y)`, regexp2.None)
)

// Separators rewrites the separators of raw input into single spaces.
type Separators struct {
	expr string
	re   *regexp2.Regexp
}

func NewSeparators(expr string) (*Separators, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("invalid separator pattern %q: %w", expr, err)
	}
	return &Separators{expr: expr, re: re}, nil
}

func MustSeparators(expr string) *Separators {
	s, err := NewSeparators(expr)
	if err != nil {
		panic(err)
	}
	return s
}

func DefaultSeparators() *Separators {
	return defaultSeparators
}

func (s *Separators) String() string {
	return s.expr
}

// Normalize replaces every separator match in raw with a single space and
// trims the result.
func (s *Separators) Normalize(raw string) string {
	replaced, err := s.re.Replace(raw, " ", -1, -1)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(replaced)
}

// Pattern rewrites the separators and quoted literals of a format pattern
// into single spaces so that it matches input normalized by Separators.
func Pattern(skeleton string) string {
	return replaceAll(patternSeparatorRe, skeleton, " ")
}

// YearMonthPattern reduces a date pattern to its year and month letters
// and puts a single space between the year and the month.
func YearMonthPattern(skeleton string) string {
	stripped := replaceAll(yearMonthStripRe, Pattern(skeleton), "")
	return replaceAll(yearMonthBoundaryRe, stripped, " ")
}

func replaceAll(re *regexp2.Regexp, s, replacement string) string {
	replaced, err := re.Replace(s, replacement, -1, -1)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(replaced)
}
