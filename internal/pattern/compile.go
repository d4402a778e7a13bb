package pattern

import (
	"fmt"

	"github.com/goccy/temporalconv/internal/locale"
)

const maxDigits = 19

const reducedYearBase = 2000

type compiler struct {
	pattern string
	runes   []rune
	pos     int
	loc     *locale.Locale
}

// Compile builds a case-insensitive formatter for pattern. Text fields
// use the names of loc.
func Compile(pattern string, loc *locale.Locale) (*Formatter, error) {
	if loc == nil {
		loc = locale.Root()
	}
	c := &compiler{pattern: pattern, runes: []rune(pattern), loc: loc}
	tokens, err := c.sequence(0)
	if err != nil {
		return nil, err
	}
	return &Formatter{
		name:   pattern,
		locale: loc,
		root:   composeTokens(pattern, tokens),
	}, nil
}

func (c *compiler) errorf(format string, args ...interface{}) error {
	return &CompileError{Pattern: c.pattern, Reason: fmt.Sprintf(format, args...)}
}

func (c *compiler) sequence(depth int) ([]*token, error) {
	var tokens []*token
	for c.pos < len(c.runes) {
		r := c.runes[c.pos]
		switch {
		case isPatternLetter(r):
			start := c.pos
			for c.pos < len(c.runes) && c.runes[c.pos] == r {
				c.pos++
			}
			t, err := c.field(r, c.pos-start)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, t)
		case r == '\'':
			literal, err := c.quoted()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, literalToken(literal))
		case r == '[':
			c.pos++
			inner, err := c.sequence(depth + 1)
			if err != nil {
				return nil, err
			}
			if c.pos < len(c.runes) {
				c.pos++
			}
			tokens = append(tokens, optionalToken(composeTokens(c.pattern, inner)))
		case r == ']':
			if depth == 0 {
				return nil, c.errorf("pattern contains ] without previous [")
			}
			return tokens, nil
		case r == '{' || r == '}' || r == '#':
			return nil, c.errorf("pattern includes reserved character '%c'", r)
		default:
			c.pos++
			tokens = append(tokens, literalToken(string(r)))
		}
	}
	return tokens, nil
}

// quoted reads a quoted literal where two single quotes stand for one.
func (c *compiler) quoted() (string, error) {
	start := c.pos
	c.pos++
	if c.pos < len(c.runes) && c.runes[c.pos] == '\'' {
		c.pos++
		return "'", nil
	}
	var literal []rune
	for c.pos < len(c.runes) {
		r := c.runes[c.pos]
		if r == '\'' {
			if c.pos+1 < len(c.runes) && c.runes[c.pos+1] == '\'' {
				literal = append(literal, '\'')
				c.pos += 2
				continue
			}
			c.pos++
			return string(literal), nil
		}
		literal = append(literal, r)
		c.pos++
	}
	return "", c.errorf("pattern ends with an incomplete string literal at %d", start)
}

func isPatternLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func textWidth(count int) (locale.Width, bool) {
	switch count {
	case 1, 2, 3:
		return locale.Short, true
	case 4:
		return locale.Full, true
	case 5:
		return locale.Narrow, true
	}
	return 0, false
}

func (c *compiler) field(letter rune, count int) (*token, error) {
	tooMany := func() (*token, error) {
		return nil, c.errorf("too many pattern letters: %c", letter)
	}
	switch letter {
	case 'G':
		width, ok := textWidth(count)
		if !ok {
			return tooMany()
		}
		return textToken(FieldEra, c.loc.Eras(width), 0, eraOf), nil
	case 'u', 'y':
		field, get := FieldYear, yearOf
		min := int64(-999999999)
		if letter == 'y' {
			field, get, min = FieldYearOfEra, yearOfEraOf, 1
		}
		if count == 2 {
			return reducedYearToken(field, reducedYearBase, get), nil
		}
		sign := signNormal
		if count >= 4 {
			sign = signExceedsPad
		}
		if count > maxDigits {
			return tooMany()
		}
		return numberToken(&numberRule{
			field: field, minWidth: count, maxWidth: maxDigits, sign: sign,
			min: min, max: 999999999, get: get,
		}), nil
	case 'M', 'L':
		switch count {
		case 1, 2:
			return c.number(FieldMonth, count, 1, 12, monthOf, nil)
		}
		width, ok := textWidth(count)
		if !ok {
			return tooMany()
		}
		return textToken(FieldMonth, c.loc.Months(width), 1, monthOf), nil
	case 'd':
		return c.number(FieldDayOfMonth, count, 1, 31, dayOf, nil)
	case 'D':
		switch count {
		case 1:
			return numberToken(&numberRule{field: FieldDayOfYear, minWidth: 1, maxWidth: 3, min: 1, max: 366, get: dayOfYearOf}), nil
		case 2:
			return numberToken(&numberRule{field: FieldDayOfYear, minWidth: 2, maxWidth: 3, min: 1, max: 366, get: dayOfYearOf}), nil
		case 3:
			return numberToken(&numberRule{field: FieldDayOfYear, minWidth: 3, maxWidth: 3, min: 1, max: 366, get: dayOfYearOf}), nil
		}
		return tooMany()
	case 'E':
		width, ok := textWidth(count)
		if !ok {
			return tooMany()
		}
		return textToken(FieldDayOfWeek, c.loc.Weekdays(width), 0, weekdayOf), nil
	case 'a':
		if count != 1 {
			return tooMany()
		}
		return textToken(FieldAmPm, c.loc.AmPm(), 0, amPmOf), nil
	case 'H':
		return c.number(FieldHourOfDay, count, 0, 23, hourOfDayOf, nil)
	case 'k':
		return c.number(FieldHourOfDay, count, 1, 24, clockHourOfDayOf, func(v int64) int64 { return v % 24 })
	case 'K':
		return c.number(FieldHourOfAmPm, count, 0, 11, hourOfAmPm, nil)
	case 'h':
		return c.number(FieldHourOfAmPm, count, 1, 12, clockHourOf, func(v int64) int64 { return v % 12 })
	case 'm':
		return c.number(FieldMinute, count, 0, 59, minuteOf, nil)
	case 's':
		return c.number(FieldSecond, count, 0, 59, secondOf, nil)
	case 'S':
		if count > 9 {
			return tooMany()
		}
		return fixedFractionToken(count), nil
	case 'n':
		if count > maxDigits {
			return tooMany()
		}
		return numberToken(&numberRule{field: FieldNano, minWidth: count, maxWidth: maxDigits, min: 0, max: 999999999, get: nanoOf}), nil
	case 'V':
		if count != 2 {
			return nil, c.errorf("pattern letter count must be 2: %c", letter)
		}
		return zoneIDToken(false), nil
	case 'z':
		switch {
		case count <= 3:
			return zoneNameToken(false), nil
		case count == 4:
			return zoneNameToken(true), nil
		}
		return tooMany()
	case 'O':
		switch count {
		case 1:
			return localizedOffsetToken(false), nil
		case 4:
			return localizedOffsetToken(true), nil
		}
		return nil, c.errorf("pattern letter count must be 1 or 4: %c", letter)
	case 'X':
		if count > 5 {
			return tooMany()
		}
		return offsetToken(offsetPatterns[offsetLetterIndex(count)], "Z"), nil
	case 'x':
		if count > 5 {
			return tooMany()
		}
		layout := offsetPatterns[offsetLetterIndex(count)]
		return offsetToken(layout, zeroOffsetText(layout)), nil
	case 'Z':
		switch {
		case count <= 3:
			return offsetToken("+HHMM", "+0000"), nil
		case count == 4:
			return localizedOffsetToken(true), nil
		case count == 5:
			return offsetToken("+HH:MM:ss", "Z"), nil
		}
		return tooMany()
	}
	return nil, c.errorf("unsupported pattern letter: %c", letter)
}

// number builds a numeric token of one (variable width) or two (fixed
// width) letters.
func (c *compiler) number(field Field, count int, min, max int64, get func(*Fields) (int64, error), store func(int64) int64) (*token, error) {
	switch count {
	case 1:
		return numberToken(&numberRule{field: field, minWidth: 1, maxWidth: maxDigits, min: min, max: max, get: get, store: store}), nil
	case 2:
		return numberToken(&numberRule{field: field, minWidth: 2, maxWidth: 2, min: min, max: max, get: get, store: store}), nil
	}
	return nil, c.errorf("too many pattern letters for %s", field)
}

// offsetLetterIndex maps the count of X or x to an offset layout.
func offsetLetterIndex(count int) int {
	return [...]int{1, 3, 4, 5, 6}[count-1]
}

func zeroOffsetText(layout string) string {
	var b []rune
	for _, r := range layout {
		switch r {
		case 'H', 'M', 'S', 'm', 's':
			b = append(b, '0')
		default:
			b = append(b, r)
		}
	}
	// optional parts are not printed for a zero offset
	switch layout {
	case "+HHmm", "+HH:mm":
		return "+00"
	case "+HHMMss":
		return "+0000"
	case "+HH:MM:ss":
		return "+00:00"
	}
	return string(b)
}
