package converter

import (
	"fmt"
	"time"

	"github.com/goccy/temporalconv/internal/catalog"
	"github.com/goccy/temporalconv/internal/locale"
	"github.com/goccy/temporalconv/internal/pattern"
	"github.com/goccy/temporalconv/types"
)

// descriptor holds what differs between the categories. Converter and
// Formatter are written once against it.
type descriptor[T types.Value] struct {
	category types.Category

	// canonical parses the input when the pattern list is empty.
	canonical *pattern.Formatter

	// normalize reports whether input separators are collapsed before
	// parsing. Categories that only accept the canonical form keep them.
	normalize bool

	// needsYear fills a missing year with the current one.
	needsYear bool

	build  func(f pattern.Fields) (T, error)
	fields func(v T) pattern.Fields

	defaultFormat func(loc *locale.Locale, opts catalog.Options) string
	defaultKind   types.ValueKind

	// fixedKind ignores the configured value kind.
	fixedKind bool
}

// resolve completes parsed fields and builds the value.
func (d *descriptor[T]) resolve(f pattern.Fields, now func() time.Time) (T, error) {
	var zero T
	if d.needsYear && !f.Has(pattern.HasYear) {
		f.DefaultYear(now().Year())
	}
	if err := f.Validate(); err != nil {
		return zero, err
	}
	return d.build(f)
}

func (d *descriptor[T]) parse(f *pattern.Formatter, text string, now func() time.Time) (T, error) {
	fields, err := f.ParseFields(text)
	if err != nil {
		var zero T
		return zero, err
	}
	return d.resolve(fields, now)
}

func mustConstant(name string) *pattern.Formatter {
	f, ok := pattern.Constant(name)
	if !ok {
		panic(fmt.Sprintf("converter: unknown constant %s", name))
	}
	return f
}

func mustCompile(p string) *pattern.Formatter {
	f, err := pattern.Compile(p, locale.Root())
	if err != nil {
		panic(err)
	}
	return f
}

func staticFormat(p string) func(*locale.Locale, catalog.Options) string {
	return func(*locale.Locale, catalog.Options) string { return p }
}

// firstDefaultPattern makes the default output parseable by the default input patterns.
func firstDefaultPattern(category types.Category) func(*locale.Locale, catalog.Options) string {
	return func(loc *locale.Locale, opts catalog.Options) string {
		patterns := catalog.Defaults(category, loc, opts).Patterns()
		if len(patterns) == 0 {
			return ""
		}
		return patterns[0]
	}
}

type missingFieldError struct {
	category types.Category
	want     string
}

func (e *missingFieldError) Error() string {
	return fmt.Sprintf("unable to obtain %s from the parsed %s", e.want, e.category)
}

func require(f pattern.Fields, category types.Category, set pattern.Set, want string) error {
	if !f.Has(set) {
		return &missingFieldError{category: category, want: want}
	}
	return nil
}

func localDateOf(f pattern.Fields) types.LocalDate {
	return types.LocalDate{Year: f.Year, Month: time.Month(f.Month), Day: f.Day}
}

func localTimeOf(f pattern.Fields) types.LocalTime {
	return types.LocalTime{Hour: f.Hour, Minute: f.Minute, Second: f.Second, Nanosecond: f.Nanosecond}
}

func localDateTimeOf(f pattern.Fields) types.LocalDateTime {
	return types.LocalDateTime{Date: localDateOf(f), Time: localTimeOf(f)}
}

func dateFields(v types.LocalDate) pattern.Fields {
	return pattern.Fields{
		Set:   pattern.HasDate,
		Year:  v.Year,
		Month: int(v.Month),
		Day:   v.Day,
	}
}

func timeFields(v types.LocalTime) pattern.Fields {
	return pattern.Fields{
		Set:        pattern.HasTime,
		Hour:       v.Hour,
		Minute:     v.Minute,
		Second:     v.Second,
		Nanosecond: v.Nanosecond,
	}
}

func dateTimeFields(v types.LocalDateTime) pattern.Fields {
	f := dateFields(v.Date)
	t := timeFields(v.Time)
	f.Set |= t.Set
	f.Hour, f.Minute, f.Second, f.Nanosecond = t.Hour, t.Minute, t.Second, t.Nanosecond
	return f
}

// locationOf prefers a parsed offset over a parsed region.
func locationOf(f pattern.Fields, category types.Category) (*time.Location, error) {
	switch {
	case f.Has(pattern.HasOffset):
		return time.FixedZone("", f.Offset), nil
	case f.Has(pattern.HasZone):
		loc, err := time.LoadLocation(f.Zone)
		if err != nil {
			return nil, fmt.Errorf("unknown zone id [%s]: %w", f.Zone, err)
		}
		return loc, nil
	}
	return nil, &missingFieldError{category: category, want: "an offset or a zone"}
}

func wallClock(f pattern.Fields, loc *time.Location) time.Time {
	return time.Date(f.Year, time.Month(f.Month), f.Day, f.Hour, f.Minute, f.Second, f.Nanosecond, loc)
}

var instantDescriptor = &descriptor[types.Instant]{
	category:  types.CategoryInstant,
	canonical: mustConstant("ISO_INSTANT"),
	needsYear: true,
	build: func(f pattern.Fields) (types.Instant, error) {
		if err := require(f, types.CategoryInstant, pattern.HasDate|pattern.HasTime, "a date-time"); err != nil {
			return types.Instant{}, err
		}
		loc, err := locationOf(f, types.CategoryInstant)
		if err != nil {
			return types.Instant{}, err
		}
		return types.InstantOf(wallClock(f, loc)), nil
	},
	fields: func(v types.Instant) pattern.Fields {
		f := dateTimeFields(types.LocalDateTimeOf(v.Time()))
		f.Set |= pattern.HasOffset
		return f
	},
	defaultFormat: staticFormat("yyyy-MM-dd'T'HH:mm:ss.SSSX"),
	defaultKind:   types.DateTimeKind,
}

var localDateDescriptor = &descriptor[types.LocalDate]{
	category:  types.CategoryLocalDate,
	canonical: mustConstant("ISO_LOCAL_DATE"),
	normalize: true,
	needsYear: true,
	build: func(f pattern.Fields) (types.LocalDate, error) {
		if err := require(f, types.CategoryLocalDate, pattern.HasDate, "a date"); err != nil {
			return types.LocalDate{}, err
		}
		return localDateOf(f), nil
	},
	fields:        dateFields,
	defaultFormat: staticFormat(string(types.Medium)),
	defaultKind:   types.DateKind,
}

var localTimeDescriptor = &descriptor[types.LocalTime]{
	category:  types.CategoryLocalTime,
	canonical: mustConstant("ISO_LOCAL_TIME"),
	normalize: true,
	build: func(f pattern.Fields) (types.LocalTime, error) {
		if err := require(f, types.CategoryLocalTime, pattern.HasTime, "a time"); err != nil {
			return types.LocalTime{}, err
		}
		return localTimeOf(f), nil
	},
	fields:        timeFields,
	defaultFormat: staticFormat(string(types.Medium)),
	defaultKind:   types.TimeKind,
}

var localDateTimeDescriptor = &descriptor[types.LocalDateTime]{
	category:  types.CategoryLocalDateTime,
	canonical: mustConstant("ISO_LOCAL_DATE_TIME"),
	normalize: true,
	needsYear: true,
	build: func(f pattern.Fields) (types.LocalDateTime, error) {
		if err := require(f, types.CategoryLocalDateTime, pattern.HasDate|pattern.HasTime, "a date-time"); err != nil {
			return types.LocalDateTime{}, err
		}
		return localDateTimeOf(f), nil
	},
	fields:        dateTimeFields,
	defaultFormat: staticFormat(string(types.Short)),
	defaultKind:   types.DateTimeKind,
}

var offsetTimeDescriptor = &descriptor[types.OffsetTime]{
	category:  types.CategoryOffsetTime,
	canonical: mustConstant("ISO_OFFSET_TIME"),
	build: func(f pattern.Fields) (types.OffsetTime, error) {
		if err := require(f, types.CategoryOffsetTime, pattern.HasTime|pattern.HasOffset, "a time with an offset"); err != nil {
			return types.OffsetTime{}, err
		}
		return types.OffsetTime{Time: localTimeOf(f), Offset: f.Offset}, nil
	},
	fields: func(v types.OffsetTime) pattern.Fields {
		f := timeFields(v.Time)
		f.Set |= pattern.HasOffset
		f.Offset = v.Offset
		return f
	},
	defaultFormat: staticFormat("ISO_OFFSET_TIME"),
	defaultKind:   types.TimeKind,
	fixedKind:     true,
}

var offsetDateTimeDescriptor = &descriptor[types.OffsetDateTime]{
	category:  types.CategoryOffsetDateTime,
	canonical: mustConstant("ISO_OFFSET_DATE_TIME"),
	needsYear: true,
	build: func(f pattern.Fields) (types.OffsetDateTime, error) {
		if err := require(f, types.CategoryOffsetDateTime, pattern.HasDate|pattern.HasTime, "a date-time"); err != nil {
			return types.OffsetDateTime{}, err
		}
		loc, err := locationOf(f, types.CategoryOffsetDateTime)
		if err != nil {
			return types.OffsetDateTime{}, err
		}
		return types.OffsetDateTimeOf(wallClock(f, loc)), nil
	},
	fields: func(v types.OffsetDateTime) pattern.Fields {
		f := dateTimeFields(v.DateTime)
		f.Set |= pattern.HasOffset
		f.Offset = v.Offset
		return f
	},
	defaultFormat: staticFormat("ISO_OFFSET_DATE_TIME"),
	defaultKind:   types.DateTimeKind,
}

var zonedDateTimeDescriptor = &descriptor[types.ZonedDateTime]{
	category:  types.CategoryZonedDateTime,
	canonical: mustConstant("ISO_ZONED_DATE_TIME"),
	needsYear: true,
	build:     zonedDateTimeOf,
	fields: func(v types.ZonedDateTime) pattern.Fields {
		f := dateTimeFields(v.DateTime)
		f.Set |= pattern.HasOffset
		f.Offset = v.Offset
		if v.Zone != "" {
			f.Set |= pattern.HasZone
			f.Zone = v.Zone
		}
		return f
	},
	defaultFormat: staticFormat("ISO_ZONED_DATE_TIME"),
	defaultKind:   types.DateTimeKind,
}

// zonedDateTimeOf keeps the parsed wall clock in the parsed region. The
// parsed offset is used only when it is valid for that wall clock.
func zonedDateTimeOf(f pattern.Fields) (types.ZonedDateTime, error) {
	if err := require(f, types.CategoryZonedDateTime, pattern.HasDate|pattern.HasTime, "a date-time"); err != nil {
		return types.ZonedDateTime{}, err
	}
	if !f.Has(pattern.HasZone) {
		loc, err := locationOf(f, types.CategoryZonedDateTime)
		if err != nil {
			return types.ZonedDateTime{}, err
		}
		return types.ZonedDateTimeOf(wallClock(f, loc)), nil
	}
	loc, err := time.LoadLocation(f.Zone)
	if err != nil {
		return types.ZonedDateTime{}, fmt.Errorf("unknown zone id [%s]: %w", f.Zone, err)
	}
	t := wallClock(f, loc)
	if f.Has(pattern.HasOffset) {
		preferred := wallClock(f, time.FixedZone("", f.Offset)).In(loc)
		if _, offset := preferred.Zone(); offset == f.Offset {
			t = preferred
		}
	}
	return types.ZonedDateTimeOf(t), nil
}

var yearDescriptor = &descriptor[types.Year]{
	category:  types.CategoryYear,
	canonical: mustCompile("u"),
	normalize: true,
	build: func(f pattern.Fields) (types.Year, error) {
		if err := require(f, types.CategoryYear, pattern.HasYear, "a year"); err != nil {
			return 0, err
		}
		return types.Year(f.Year), nil
	},
	fields: func(v types.Year) pattern.Fields {
		return pattern.Fields{Set: pattern.HasYear, Year: int(v)}
	},
	defaultFormat: firstDefaultPattern(types.CategoryYear),
	defaultKind:   types.DateKind,
}

var monthDescriptor = &descriptor[types.Month]{
	category:  types.CategoryMonth,
	canonical: mustCompile("MMMM"),
	normalize: true,
	build: func(f pattern.Fields) (types.Month, error) {
		if err := require(f, types.CategoryMonth, pattern.HasMonth, "a month"); err != nil {
			return 0, err
		}
		return types.Month(f.Month), nil
	},
	fields: func(v types.Month) pattern.Fields {
		return pattern.Fields{Set: pattern.HasMonth, Month: int(v)}
	},
	defaultFormat: firstDefaultPattern(types.CategoryMonth),
	defaultKind:   types.DateKind,
}

var yearMonthDescriptor = &descriptor[types.YearMonth]{
	category:  types.CategoryYearMonth,
	canonical: mustCompile("u-MM"),
	normalize: true,
	needsYear: true,
	build: func(f pattern.Fields) (types.YearMonth, error) {
		if err := require(f, types.CategoryYearMonth, pattern.HasYear|pattern.HasMonth, "a year and a month"); err != nil {
			return types.YearMonth{}, err
		}
		return types.YearMonth{Year: f.Year, Month: time.Month(f.Month)}, nil
	},
	fields: func(v types.YearMonth) pattern.Fields {
		return pattern.Fields{Set: pattern.HasYear | pattern.HasMonth, Year: v.Year, Month: int(v.Month)}
	},
	defaultFormat: firstDefaultPattern(types.CategoryYearMonth),
	defaultKind:   types.DateKind,
}
