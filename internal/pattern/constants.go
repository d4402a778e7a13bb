package pattern

import (
	"sort"
	"strings"
	"time"

	"github.com/goccy/temporalconv/internal/locale"
)

var constants = map[string]func() []*token{
	"BASIC_ISO_DATE": func() []*token {
		return []*token{
			fixedNumber(FieldYear, 4, 0, 9999, yearOf),
			fixedNumber(FieldMonth, 2, 1, 12, monthOf),
			fixedNumber(FieldDayOfMonth, 2, 1, 31, dayOf),
			optional(offsetToken("+HHMMss", "Z")),
		}
	},
	"ISO_LOCAL_DATE": isoLocalDate,
	"ISO_OFFSET_DATE": func() []*token {
		return append(isoLocalDate(), isoOffset())
	},
	"ISO_DATE": func() []*token {
		return append(isoLocalDate(), optional(isoOffset()))
	},
	"ISO_LOCAL_TIME": isoLocalTime,
	"ISO_OFFSET_TIME": func() []*token {
		return append(isoLocalTime(), isoOffset())
	},
	"ISO_TIME": func() []*token {
		return append(isoLocalTime(), optional(isoOffset()))
	},
	"ISO_LOCAL_DATE_TIME": isoLocalDateTime,
	"ISO_OFFSET_DATE_TIME": isoOffsetDateTime,
	"ISO_ZONED_DATE_TIME": func() []*token {
		return append(isoOffsetDateTime(), optional(literalToken("["), zoneIDToken(true), literalToken("]")))
	},
	"ISO_DATE_TIME": func() []*token {
		return append(isoLocalDateTime(), optional(
			isoOffset(),
			optional(literalToken("["), zoneIDToken(true), literalToken("]")),
		))
	},
	"ISO_ORDINAL_DATE": func() []*token {
		return []*token{
			isoYear(),
			literalToken("-"),
			fixedNumber(FieldDayOfYear, 3, 1, 366, dayOfYearOf),
			optional(isoOffset()),
		}
	},
	"ISO_INSTANT": func() []*token {
		inner := composeTokens("ISO_INSTANT", append(isoLocalDate(),
			literalToken("T"),
			fixedNumber(FieldHourOfDay, 2, 0, 23, hourOfDayOf),
			literalToken(":"),
			fixedNumber(FieldMinute, 2, 0, 59, minuteOf),
			literalToken(":"),
			fixedNumber(FieldSecond, 2, 0, 59, secondOf),
			decimalFractionToken(true),
			isoOffset(),
		))
		return []*token{instantToken(inner)}
	},
	"RFC_1123_DATE_TIME": func() []*token {
		root := locale.Root()
		return []*token{
			optional(textToken(FieldDayOfWeek, root.Weekdays(locale.Short), 0, weekdayOf), literalToken(", ")),
			numberToken(&numberRule{field: FieldDayOfMonth, minWidth: 1, maxWidth: 2, min: 1, max: 31, get: dayOf}),
			literalToken(" "),
			textToken(FieldMonth, root.Months(locale.Short), 1, monthOf),
			literalToken(" "),
			fixedNumber(FieldYear, 4, 0, 9999, yearOf),
			literalToken(" "),
			fixedNumber(FieldHourOfDay, 2, 0, 23, hourOfDayOf),
			literalToken(":"),
			fixedNumber(FieldMinute, 2, 0, 59, minuteOf),
			optional(literalToken(":"), fixedNumber(FieldSecond, 2, 0, 59, secondOf)),
			literalToken(" "),
			offsetToken("+HHMM", "GMT"),
		}
	},
}

var constantFormatters = map[string]*Formatter{}

func init() {
	for name, build := range constants {
		constantFormatters[name] = &Formatter{
			name:   name,
			locale: locale.Root(),
			root:   composeTokens(name, build()),
		}
	}
}

// Constant returns the predefined formatter called name, ignoring case.
func Constant(name string) (*Formatter, bool) {
	f, ok := constantFormatters[strings.ToUpper(strings.TrimSpace(name))]
	return f, ok
}

// ConstantNames returns the names accepted by Constant in sorted order.
func ConstantNames() []string {
	names := make([]string, 0, len(constantFormatters))
	for name := range constantFormatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func optional(tokens ...*token) *token {
	return optionalToken(composeTokens("optional", tokens))
}

func fixedNumber(field Field, width int, min, max int64, get func(*Fields) (int64, error)) *token {
	return numberToken(&numberRule{field: field, minWidth: width, maxWidth: width, min: min, max: max, get: get})
}

func isoYear() *token {
	return numberToken(&numberRule{
		field: FieldYear, minWidth: 4, maxWidth: 10, sign: signExceedsPad,
		min: -999999999, max: 999999999, get: yearOf,
	})
}

func isoOffset() *token {
	return offsetToken("+HH:MM:ss", "Z")
}

func isoLocalDate() []*token {
	return []*token{
		isoYear(),
		literalToken("-"),
		fixedNumber(FieldMonth, 2, 1, 12, monthOf),
		literalToken("-"),
		fixedNumber(FieldDayOfMonth, 2, 1, 31, dayOf),
	}
}

func isoLocalTime() []*token {
	return []*token{
		fixedNumber(FieldHourOfDay, 2, 0, 23, hourOfDayOf),
		literalToken(":"),
		fixedNumber(FieldMinute, 2, 0, 59, minuteOf),
		optional(
			literalToken(":"),
			fixedNumber(FieldSecond, 2, 0, 59, secondOf),
			decimalFractionToken(false),
		),
	}
}

func isoLocalDateTime() []*token {
	tokens := isoLocalDate()
	tokens = append(tokens, literalToken("T"))
	return append(tokens, isoLocalTime()...)
}

func isoOffsetDateTime() []*token {
	return append(isoLocalDateTime(), isoOffset())
}

// instantToken prints the UTC rendition of a date-time with an offset.
func instantToken(inner *token) *token {
	return &token{
		Parse: inner.Parse,
		Format: func(f *Fields) ([]rune, error) {
			if !f.Has(HasDate | HasTime) {
				return nil, &UnsupportedFieldError{Field: "InstantSeconds"}
			}
			var loc *time.Location
			switch {
			case f.Has(HasOffset):
				loc = time.FixedZone("", f.Offset)
			case f.Has(HasZone):
				l, err := time.LoadLocation(f.Zone)
				if err != nil {
					return nil, err
				}
				loc = l
			default:
				return nil, &UnsupportedFieldError{Field: "InstantSeconds"}
			}
			t := time.Date(f.Year, time.Month(f.Month), f.Day, f.Hour, f.Minute, f.Second, f.Nanosecond, loc).UTC()
			utc := Fields{
				Set:        HasDate | HasTime | HasOffset,
				Year:       t.Year(),
				Month:      int(t.Month()),
				Day:        t.Day(),
				Hour:       t.Hour(),
				Minute:     t.Minute(),
				Second:     t.Second(),
				Nanosecond: t.Nanosecond(),
			}
			return inner.Format(&utc)
		},
	}
}
