// Package catalog builds the ordered list of input patterns a converter
// tries, either from an override value or from the locale defaults.
package catalog

import (
	"strings"

	"github.com/goccy/temporalconv/internal/locale"
	"github.com/goccy/temporalconv/internal/normalize"
	"github.com/goccy/temporalconv/types"
)

// PatternList is an insertion ordered set of patterns.
type PatternList struct {
	patterns []string
	index    map[string]struct{}
}

func NewPatternList(patterns ...string) *PatternList {
	l := &PatternList{index: map[string]struct{}{}}
	for _, p := range patterns {
		l.Add(p)
	}
	return l
}

// Add appends p unless it is already present.
func (l *PatternList) Add(p string) bool {
	if _, exists := l.index[p]; exists {
		return false
	}
	l.index[p] = struct{}{}
	l.patterns = append(l.patterns, p)
	return true
}

func (l *PatternList) Len() int {
	return len(l.patterns)
}

func (l *PatternList) Patterns() []string {
	ret := make([]string, len(l.patterns))
	copy(ret, l.patterns)
	return ret
}

type Options struct {
	// TwoDigitYear adds "yy" to the default year patterns.
	TwoDigitYear bool
}

// SplitOverride splits an override value on commas, dropping the spaces
// after each comma and any trailing empty entries.
func SplitOverride(value string) []string {
	parts := strings.Split(value, ",")
	for i := 1; i < len(parts); i++ {
		parts[i] = strings.TrimLeft(parts[i], " ")
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// Build returns the override patterns when override is not blank and
// the built-in patterns of category for loc otherwise.
func Build(category types.Category, loc *locale.Locale, override string, opts Options) *PatternList {
	if strings.TrimSpace(override) != "" {
		return NewPatternList(SplitOverride(override)...)
	}
	return Defaults(category, loc, opts)
}

// Defaults derives the built-in input patterns of category. Categories
// that only accept their canonical form have no patterns.
func Defaults(category types.Category, loc *locale.Locale, opts Options) *PatternList {
	l := NewPatternList()
	switch category {
	case types.CategoryLocalDate:
		for _, style := range types.Styles() {
			l.Add(normalize.Pattern(loc.DatePattern(style)))
		}
	case types.CategoryLocalTime:
		for _, style := range types.Styles() {
			l.Add(normalize.Pattern(loc.TimePattern(style)))
		}
	case types.CategoryLocalDateTime:
		for _, dateStyle := range types.Styles() {
			for _, timeStyle := range types.Styles() {
				l.Add(normalize.Pattern(loc.DateTimePattern(dateStyle, timeStyle)))
			}
		}
	case types.CategoryYearMonth:
		for _, style := range types.Styles() {
			l.Add(normalize.YearMonthPattern(loc.DatePattern(style)))
		}
	case types.CategoryMonth:
		l.Add("MMMM")
		l.Add("MMM")
		l.Add("M")
	case types.CategoryYear:
		l.Add("yyyy")
		if opts.TwoDigitYear {
			l.Add("yy")
		}
	}
	return l
}
