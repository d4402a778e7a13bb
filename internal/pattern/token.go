package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseFunction consumes a prefix of text, stores what it read in p and
// returns the number of runes consumed.
type ParseFunction func(text []rune, p *Parsed) (int, error)

// FormatFunction renders the part of f a token is responsible for.
type FormatFunction func(f *Fields) ([]rune, error)

type token struct {
	Parse  ParseFunction
	Format FormatFunction

	// fixedWidth is the exact number of digits of a fixed width numeric
	// token and zero for everything else.
	fixedWidth int

	// number is set for variable width numeric tokens.
	number *numberRule
}

type signStyle int

const (
	signNone signStyle = iota
	signNormal
	signExceedsPad
)

type numberRule struct {
	field    Field
	minWidth int
	maxWidth int
	sign     signStyle
	min      int64
	max      int64

	// reserve is the count of trailing digits left to the fixed width
	// tokens that directly follow this one.
	reserve int

	get   func(f *Fields) (int64, error)
	store func(v int64) int64
}

func composeTokens(name string, tokens []*token) *token {
	for i, t := range tokens {
		if t.number == nil {
			continue
		}
		reserve := 0
		for _, next := range tokens[i+1:] {
			if next.fixedWidth == 0 {
				break
			}
			reserve += next.fixedWidth
		}
		t.number.reserve = reserve
	}
	return &token{
		Parse:  composeParseFunctions(name, tokens),
		Format: composeFormatFunctions(tokens),
	}
}

func composeParseFunctions(name string, tokens []*token) ParseFunction {
	return func(text []rune, p *Parsed) (int, error) {
		progress := 0
		for _, t := range tokens {
			step, err := t.Parse(text[progress:], p)
			if err != nil {
				return 0, shift(err, progress)
			}
			progress += step
		}
		return progress, nil
	}
}

func composeFormatFunctions(tokens []*token) FormatFunction {
	return func(f *Fields) ([]rune, error) {
		var ret []rune
		for _, t := range tokens {
			formatted, err := t.Format(f)
			if err != nil {
				return nil, err
			}
			ret = append(ret, formatted...)
		}
		return ret, nil
	}
}

// optionalToken parses inner when possible and otherwise consumes nothing.
// It prints nothing when inner needs a field the value lacks.
func optionalToken(inner *token) *token {
	return &token{
		Parse: func(text []rune, p *Parsed) (int, error) {
			saved := *p
			n, err := inner.Parse(text, p)
			if err != nil {
				*p = saved
				return 0, nil
			}
			return n, nil
		},
		Format: func(f *Fields) ([]rune, error) {
			formatted, err := inner.Format(f)
			if err != nil {
				var unsupported *UnsupportedFieldError
				if errors.As(err, &unsupported) {
					return nil, nil
				}
				return nil, err
			}
			return formatted, nil
		},
	}
}

func literalToken(static string) *token {
	runes := []rune(static)
	return &token{
		Parse: func(text []rune, p *Parsed) (int, error) {
			if !hasPrefixFold(text, static) {
				return 0, failAt(0, "[%s] not found", static)
			}
			return len(runes), nil
		},
		Format: func(*Fields) ([]rune, error) {
			return runes, nil
		},
	}
}

func numberToken(rule *numberRule) *token {
	t := &token{
		Parse: func(text []rune, p *Parsed) (int, error) {
			pos := 0
			negative, positive := false, false
			if rule.sign != signNone && len(text) > 0 {
				switch text[0] {
				case '-':
					negative = true
					pos = 1
				case '+':
					if rule.sign == signExceedsPad {
						positive = true
						pos = 1
					}
				}
			}
			progress, v, err := parseDigitsRespectingWidth(text[pos:], rule.minWidth, rule.maxWidth, rule.reserve)
			if err != nil {
				return 0, failAt(pos, "could not parse %s: %s", rule.field, err)
			}
			// a sign is required exactly when the digits exceed the padding width
			if rule.sign == signExceedsPad && !negative {
				if positive && progress <= rule.minWidth {
					return 0, failAt(0, "%s part must not carry a plus sign within %d digits", rule.field, rule.minWidth)
				}
				if !positive && progress > rule.minWidth {
					return 0, failAt(0, "%s part with more than %d digits needs a sign", rule.field, rule.minWidth)
				}
			}
			if negative {
				v = -v
			}
			if v > rule.max {
				return 0, failAt(0, "%s part [%d] is greater than maximum value [%d]", rule.field, v, rule.max)
			}
			if v < rule.min {
				return 0, failAt(0, "%s part [%d] is less than minimum value [%d]", rule.field, v, rule.min)
			}
			if rule.store != nil {
				v = rule.store(v)
			}
			if err := p.put(rule.field, v); err != nil {
				return 0, failAt(0, "%s", err)
			}
			return pos + progress, nil
		},
		Format: func(f *Fields) ([]rune, error) {
			v, err := rule.get(f)
			if err != nil {
				return nil, err
			}
			abs := v
			if abs < 0 {
				abs = -abs
			}
			digits := strconv.FormatInt(abs, 10)
			if len(digits) > rule.maxWidth {
				return nil, fmt.Errorf("field %s cannot be printed as the value %d exceeds the maximum print width of %d", rule.field, v, rule.maxWidth)
			}
			exceeds := len(digits) > rule.minWidth
			if pad := rule.minWidth - len(digits); pad > 0 {
				digits = strings.Repeat("0", pad) + digits
			}
			switch {
			case v < 0 && rule.sign == signNone:
				return nil, fmt.Errorf("field %s cannot be printed as the value %d cannot be negative", rule.field, v)
			case v < 0:
				digits = "-" + digits
			case rule.sign == signExceedsPad && exceeds:
				digits = "+" + digits
			}
			return []rune(digits), nil
		},
	}
	if rule.minWidth == rule.maxWidth && rule.sign == signNone {
		t.fixedWidth = rule.minWidth
	} else {
		t.number = rule
	}
	return t
}

// reducedYearToken reads two digits as a year in [base, base+99].
func reducedYearToken(field Field, base int, get func(f *Fields) (int64, error)) *token {
	return &token{
		Parse: func(text []rune, p *Parsed) (int, error) {
			progress, v, err := parseDigitsRespectingWidth(text, 2, 2, 0)
			if err != nil {
				return 0, failAt(0, "could not parse %s: %s", field, err)
			}
			year := int64(base - base%100) + v
			if year < int64(base) {
				year += 100
			}
			if err := p.put(field, year); err != nil {
				return 0, failAt(0, "%s", err)
			}
			return progress, nil
		},
		Format: func(f *Fields) ([]rune, error) {
			v, err := get(f)
			if err != nil {
				return nil, err
			}
			return []rune(fmt.Sprintf("%02d", (v%100+100)%100)), nil
		},
		fixedWidth: 2,
	}
}

// textToken matches one of names, which map to the values offset,
// offset+1 and so on. The longest name wins.
func textToken(field Field, names []string, offset int64, get func(f *Fields) (int64, error)) *token {
	return &token{
		Parse: func(text []rune, p *Parsed) (int, error) {
			best, bestValue := -1, int64(0)
			for i, name := range names {
				if n := matchName(text, name); n > best {
					best, bestValue = n, int64(i)+offset
				}
			}
			if best <= 0 {
				return 0, failAt(0, "unexpected %s text", field)
			}
			if err := p.put(field, bestValue); err != nil {
				return 0, failAt(0, "%s", err)
			}
			return best, nil
		},
		Format: func(f *Fields) ([]rune, error) {
			v, err := get(f)
			if err != nil {
				return nil, err
			}
			idx := v - offset
			if idx < 0 || idx >= int64(len(names)) {
				return nil, fmt.Errorf("%s value %d has no text", field, v)
			}
			return []rune(names[idx]), nil
		},
	}
}

// fixedFractionToken reads exactly width digits of the second fraction.
func fixedFractionToken(width int) *token {
	scale := pow10(9 - width)
	return &token{
		Parse: func(text []rune, p *Parsed) (int, error) {
			progress, v, err := parseDigitsRespectingWidth(text, width, width, 0)
			if err != nil {
				return 0, failAt(0, "could not parse %s: %s", FieldNano, err)
			}
			if err := p.put(FieldNano, v*scale); err != nil {
				return 0, failAt(0, "%s", err)
			}
			return progress, nil
		},
		Format: func(f *Fields) ([]rune, error) {
			if !f.Has(HasTime) {
				return nil, &UnsupportedFieldError{Field: FieldNano.String()}
			}
			return []rune(fmt.Sprintf("%09d", f.Nanosecond)[:width]), nil
		},
		fixedWidth: width,
	}
}

// decimalFractionToken reads an optional decimal point followed by up to
// nine digits. It prints the shortest form, or groups of three digits
// when groups is set, and nothing for a zero fraction.
func decimalFractionToken(groups bool) *token {
	return &token{
		Parse: func(text []rune, p *Parsed) (int, error) {
			if len(text) == 0 || text[0] != '.' {
				return 0, nil
			}
			progress, v, err := parseDigitsRespectingWidth(text[1:], 1, 9, 0)
			if err != nil {
				return 0, failAt(1, "could not parse %s: %s", FieldNano, err)
			}
			if err := p.put(FieldNano, v*pow10(9-progress)); err != nil {
				return 0, failAt(0, "%s", err)
			}
			return progress + 1, nil
		},
		Format: func(f *Fields) ([]rune, error) {
			if !f.Has(HasTime) {
				return nil, &UnsupportedFieldError{Field: FieldNano.String()}
			}
			if f.Nanosecond == 0 {
				return nil, nil
			}
			digits := fmt.Sprintf("%09d", f.Nanosecond)
			if groups {
				switch {
				case f.Nanosecond%1000000 == 0:
					digits = digits[:3]
				case f.Nanosecond%1000 == 0:
					digits = digits[:6]
				}
			} else {
				digits = strings.TrimRight(digits, "0")
			}
			return []rune("." + digits), nil
		},
	}
}

// parseDigitsRespectingWidth reads between minWidth and maxWidth digits,
// leaving reserve digits of a longer run to the tokens that follow.
func parseDigitsRespectingWidth(text []rune, minWidth, maxWidth, reserve int) (int, int64, error) {
	if len(text) == 0 {
		return 0, 0, fmt.Errorf("empty text")
	}
	available := 0
	for available < len(text) && text[available] >= '0' && text[available] <= '9' {
		available++
	}
	if available == 0 {
		return 0, 0, fmt.Errorf("leading character is not a digit")
	}
	take := available
	if limit := maxWidth + reserve; take > limit {
		take = limit
	}
	take -= reserve
	if take < minWidth {
		return 0, 0, fmt.Errorf("expected at least %d digits but found %d", minWidth, take)
	}
	result, err := strconv.ParseInt(string(text[:take]), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return take, result, nil
}

// matchName returns the runes of text matched by name, also accepting the
// name without a trailing period, or -1.
func matchName(text []rune, name string) int {
	if name == "" {
		return -1
	}
	if hasPrefixFold(text, name) {
		return len([]rune(name))
	}
	if trimmed := strings.TrimSuffix(name, "."); trimmed != name && trimmed != "" && hasPrefixFold(text, trimmed) {
		return len([]rune(trimmed))
	}
	return -1
}

func hasPrefixFold(text []rune, s string) bool {
	runes := []rune(s)
	if len(text) < len(runes) {
		return false
	}
	return strings.EqualFold(string(text[:len(runes)]), s)
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

func yearOf(f *Fields) (int64, error) {
	if !f.Has(HasYear) {
		return 0, &UnsupportedFieldError{Field: FieldYear.String()}
	}
	return int64(f.Year), nil
}

func yearOfEraOf(f *Fields) (int64, error) {
	if !f.Has(HasYear) {
		return 0, &UnsupportedFieldError{Field: FieldYearOfEra.String()}
	}
	if f.Year > 0 {
		return int64(f.Year), nil
	}
	return int64(1 - f.Year), nil
}

func eraOf(f *Fields) (int64, error) {
	if !f.Has(HasYear) {
		return 0, &UnsupportedFieldError{Field: FieldEra.String()}
	}
	if f.Year > 0 {
		return 1, nil
	}
	return 0, nil
}

func monthOf(f *Fields) (int64, error) {
	if !f.Has(HasMonth) {
		return 0, &UnsupportedFieldError{Field: FieldMonth.String()}
	}
	return int64(f.Month), nil
}

func dayOf(f *Fields) (int64, error) {
	if !f.Has(HasDay) {
		return 0, &UnsupportedFieldError{Field: FieldDayOfMonth.String()}
	}
	return int64(f.Day), nil
}

func dateOf(f *Fields, field Field) (time.Time, error) {
	if !f.Has(HasDate) {
		return time.Time{}, &UnsupportedFieldError{Field: field.String()}
	}
	return time.Date(f.Year, time.Month(f.Month), f.Day, 0, 0, 0, 0, time.UTC), nil
}

func dayOfYearOf(f *Fields) (int64, error) {
	t, err := dateOf(f, FieldDayOfYear)
	if err != nil {
		return 0, err
	}
	return int64(t.YearDay()), nil
}

func weekdayOf(f *Fields) (int64, error) {
	t, err := dateOf(f, FieldDayOfWeek)
	if err != nil {
		return 0, err
	}
	return int64(t.Weekday()), nil
}

func timeFieldOf(field Field, get func(f *Fields) int) func(f *Fields) (int64, error) {
	return func(f *Fields) (int64, error) {
		if !f.Has(HasTime) {
			return 0, &UnsupportedFieldError{Field: field.String()}
		}
		return int64(get(f)), nil
	}
}

var (
	hourOfDayOf = timeFieldOf(FieldHourOfDay, func(f *Fields) int { return f.Hour })
	minuteOf    = timeFieldOf(FieldMinute, func(f *Fields) int { return f.Minute })
	secondOf    = timeFieldOf(FieldSecond, func(f *Fields) int { return f.Second })
	nanoOf      = timeFieldOf(FieldNano, func(f *Fields) int { return f.Nanosecond })
	amPmOf      = timeFieldOf(FieldAmPm, func(f *Fields) int { return f.Hour / 12 })
	hourOfAmPm  = timeFieldOf(FieldHourOfAmPm, func(f *Fields) int { return f.Hour % 12 })
	clockHourOf = timeFieldOf(FieldHourOfAmPm, func(f *Fields) int {
		if h := f.Hour % 12; h != 0 {
			return h
		}
		return 12
	})
	clockHourOfDayOf = timeFieldOf(FieldHourOfDay, func(f *Fields) int {
		if f.Hour == 0 {
			return 24
		}
		return f.Hour
	})
)
