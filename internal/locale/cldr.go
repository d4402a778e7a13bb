package locale

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales"

	"github.com/goccy/temporalconv/types"
)

// go-playground/locales compiles the CLDR patterns into formatting code,
// so the pattern skeletons are read back from what the formatters print
// for reference instants whose fields all hold distinct values.
var (
	referenceZone = time.FixedZone("ZZZ", 0)
	referenceAM   = time.Date(2039, time.February, 5, 9, 7, 6, 0, referenceZone)
	referencePM   = time.Date(2039, time.February, 5, 21, 7, 6, 0, referenceZone)

	dateDigits = map[string]string{
		"2039": "yyyy",
		"39":   "yy",
		"2":    "M",
		"02":   "MM",
		"5":    "d",
		"05":   "dd",
	}
)

type skeletons struct {
	dates [4]string
	times [4]string

	// amPm is only set for locales that use a twelve hour clock.
	amPm []string
}

// field is a piece of formatted text and the pattern letters that print it.
type field struct {
	text    string
	letters string
}

type skeletonReader struct {
	digits   map[string]string
	names    []field
	required string
}

// deriveSkeletons reads the date and time skeletons of every style out of
// trans. Styles that cannot be read are left empty and the first failure
// is returned.
func deriveSkeletons(trans locales.Translator) (*skeletons, error) {
	s := &skeletons{}
	var firstErr error
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	dates := &skeletonReader{
		digits: dateDigits,
		names: []field{
			{text: guardName(func() string { return trans.MonthWide(referenceAM.Month()) }), letters: "MMMM"},
			{text: guardName(func() string { return trans.MonthAbbreviated(referenceAM.Month()) }), letters: "MMM"},
			{text: guardName(func() string { return trans.WeekdayWide(referenceAM.Weekday()) }), letters: "EEEE"},
			{text: guardName(func() string { return trans.WeekdayAbbreviated(referenceAM.Weekday()) }), letters: "EEE"},
		},
		required: "yMd",
	}
	for i, format := range []func(time.Time) string{
		trans.FmtDateFull,
		trans.FmtDateLong,
		trans.FmtDateMedium,
		trans.FmtDateShort,
	} {
		skeleton, err := readStyle(dates, format)
		if err != nil {
			fail(fmt.Errorf("%s: %s date: %w", trans.Locale(), types.Styles()[i], err))
			continue
		}
		s.dates[i] = skeleton
	}

	am, err := guard(func() string { return trans.FmtTimeShort(referenceAM) })
	if err != nil {
		fail(fmt.Errorf("%s: short time: %w", trans.Locale(), err))
		return s, firstErr
	}
	pm, err := guard(func() string { return trans.FmtTimeShort(referencePM) })
	if err != nil {
		fail(fmt.Errorf("%s: short time: %w", trans.Locale(), err))
		return s, firstErr
	}
	hour := "H"
	names := []field{{text: referenceZone.String(), letters: "z"}}
	if !strings.Contains(pm, "21") {
		hour = "h"
		amMarker, pmMarker := periodMarkers(am, pm)
		if amMarker == "" || pmMarker == "" {
			fail(fmt.Errorf("%s: cannot find the period markers in %q and %q", trans.Locale(), am, pm))
			return s, firstErr
		}
		s.amPm = []string{amMarker, pmMarker}
		names = append(names, field{text: amMarker, letters: "a"})
	}
	times := &skeletonReader{
		digits: map[string]string{
			"9":  hour,
			"09": hour + hour,
			"7":  "m",
			"07": "mm",
			"6":  "s",
			"06": "ss",
		},
		names:    names,
		required: hour + "m",
	}
	for i, format := range []func(time.Time) string{
		trans.FmtTimeFull,
		trans.FmtTimeLong,
		trans.FmtTimeMedium,
		trans.FmtTimeShort,
	} {
		skeleton, err := readStyle(times, format)
		if err != nil {
			fail(fmt.Errorf("%s: %s time: %w", trans.Locale(), types.Styles()[i], err))
			continue
		}
		s.times[i] = skeleton
	}
	return s, firstErr
}

// fillGaps gives every style that could not be read the skeleton of the
// closest more verbose style, or the closest less verbose one.
func (s *skeletons) fillGaps() {
	fill := func(list *[4]string) {
		for i := range list {
			if list[i] != "" {
				continue
			}
			for j := i - 1; j >= 0 && list[i] == ""; j-- {
				list[i] = list[j]
			}
			for j := i + 1; j < len(list) && list[i] == ""; j++ {
				list[i] = list[j]
			}
		}
	}
	fill(&s.dates)
	fill(&s.times)
}

func readStyle(r *skeletonReader, format func(time.Time) string) (string, error) {
	text, err := guard(func() string { return format(referenceAM) })
	if err != nil {
		return "", err
	}
	return r.read(text)
}

func (r *skeletonReader) read(text string) (string, error) {
	var (
		b       strings.Builder
		literal strings.Builder
		seen    = map[byte]struct{}{}
	)
	emit := func(letters string) {
		b.WriteString(quote(literal.String()))
		literal.Reset()
		b.WriteString(letters)
		seen[letters[0]] = struct{}{}
	}
	for i := 0; i < len(text); {
		if isDigit(text[i]) {
			end := i
			for end < len(text) && isDigit(text[end]) {
				end++
			}
			letters, found := r.digits[text[i:end]]
			if !found {
				return "", fmt.Errorf("unexpected number %q in %q", text[i:end], text)
			}
			emit(letters)
			i = end
			continue
		}
		if f, found := r.longestName(text[i:]); found {
			emit(f.letters)
			i += len(f.text)
			continue
		}
		c, size := utf8.DecodeRuneInString(text[i:])
		literal.WriteRune(c)
		i += size
	}
	b.WriteString(quote(literal.String()))
	for i := 0; i < len(r.required); i++ {
		if _, exists := seen[r.required[i]]; !exists {
			return "", fmt.Errorf("no %c field in %q", r.required[i], text)
		}
	}
	return b.String(), nil
}

func (r *skeletonReader) longestName(text string) (field, bool) {
	var (
		best  field
		found bool
	)
	for _, f := range r.names {
		if f.text == "" || !strings.HasPrefix(text, f.text) {
			continue
		}
		if !found || len(f.text) > len(best.text) {
			best = f
			found = true
		}
	}
	return best, found
}

// quote escapes literal text for a pattern. Letters and the reserved
// characters are wrapped in single quotes.
func quote(literal string) string {
	var b strings.Builder
	quoted := false
	for _, c := range literal {
		if c == '\'' {
			b.WriteString("''")
			continue
		}
		needsQuote := unicode.IsLetter(c) || strings.ContainsRune("[]{}#", c)
		if needsQuote != quoted {
			b.WriteByte('\'')
			quoted = needsQuote
		}
		b.WriteRune(c)
	}
	if quoted {
		b.WriteByte('\'')
	}
	return b.String()
}

// periodMarkers cuts the morning and afternoon markers out of the same
// time printed before and after noon.
func periodMarkers(am, pm string) (string, string) {
	a, p := []rune(am), []rune(pm)
	prefix := 0
	for prefix < len(a) && prefix < len(p) && a[prefix] == p[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(p)-prefix && a[len(a)-1-suffix] == p[len(p)-1-suffix] {
		suffix++
	}
	for prefix > 0 && isMarkerRune(a[prefix-1]) {
		prefix--
	}
	for suffix > 0 && isMarkerRune(a[len(a)-suffix]) {
		suffix--
	}
	return string(a[prefix : len(a)-suffix]), string(p[prefix : len(p)-suffix])
}

func isMarkerRune(c rune) bool {
	return unicode.IsLetter(c) || c == '.'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// guard calls f and turns a panic into an error. Some translators index
// name tables that CLDR leaves empty for them.
func guard(f func() string) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return f(), nil
}

func guardName(f func() string) string {
	s, err := guard(f)
	if err != nil {
		return ""
	}
	return s
}
