package converter

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/goccy/temporalconv/internal/pattern"
	"github.com/goccy/temporalconv/types"
)

type formatTest[T types.Value] struct {
	name        string
	locale      language.Tag
	config      map[string]string
	opts        []FormatOption
	input       T
	expected    string
	unsupported bool
}

func runFormatTests[T types.Value](t *testing.T, newFormatter func(Config, ...FormatOption) *Formatter[T], tests []formatTest[T]) {
	t.Helper()
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			f := newFormatter(testConfig(test.locale, test.config), test.opts...)
			got, err := f.Format(test.input)
			if test.unsupported {
				var unsupported *pattern.UnsupportedFieldError
				if !errors.As(err, &unsupported) {
					t.Fatalf("expected UnsupportedFieldError but got %q, %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != test.expected {
				t.Fatalf("expected %q but got %q", test.expected, got)
			}
		})
	}
}

func TestInstantFormatter(t *testing.T) {
	input := types.InstantOf(time.Date(2017, time.March, 11, 14, 34, 0, 0, time.UTC))
	runFormatTests(t, NewInstantFormatter, []formatTest[types.Instant]{
		{name: "default", locale: us, input: input, expected: "2017-03-11T14:34:00.000Z"},
		{name: "iso instant", locale: us, opts: []FormatOption{WithPattern("ISO_INSTANT")}, input: input, expected: "2017-03-11T14:34:00Z"},
		{name: "pattern", locale: us, opts: []FormatOption{WithPattern("d MMM yyyy HH:mm")}, input: input, expected: "11 Mar 2017 14:34"},
	})
}

func TestLocalDateFormatter(t *testing.T) {
	input := types.LocalDate{Year: 2017, Month: time.April, Day: 27}
	runFormatTests(t, NewLocalDateFormatter, []formatTest[types.LocalDate]{
		{name: "default", locale: us, input: input, expected: "Apr 27, 2017"},
		{name: "default jp", locale: japan, input: input, expected: "2017/04/27"},
		{name: "datetime kind", locale: us, opts: []FormatOption{WithValueKind("datetime")}, input: input, unsupported: true},
		{name: "constant with time", locale: us, opts: []FormatOption{WithPattern("ISO_DATE_TIME")}, input: input, unsupported: true},
		{name: "lower case constant", locale: us, opts: []FormatOption{WithPattern("iso_date")}, input: input, expected: "2017-04-27"},
		{name: "basic iso", locale: us, opts: []FormatOption{WithPattern("BASIC_ISO_DATE")}, input: input, expected: "20170427"},
		{name: "ordinal", locale: us, opts: []FormatOption{WithPattern("ISO_ORDINAL_DATE")}, input: input, expected: "2017-117"},
		{name: "full style", locale: us, opts: []FormatOption{WithPattern("FULL")}, input: input, expected: "Thursday, April 27, 2017"},
		{name: "pattern", locale: us, opts: []FormatOption{WithPattern("yyyy/MM/dd")}, input: input, expected: "2017/04/27"},
		{name: "pattern ignores kind", locale: us, opts: []FormatOption{WithPattern("yyyy/MM/dd"), WithValueKind("datetime")}, input: input, expected: "2017/04/27"},
		{name: "configured pattern", locale: us, config: map[string]string{FormatPatternKey(types.CategoryLocalDate): "d.M.yyyy"}, input: input, expected: "27.4.2017"},
		{name: "configured kind", locale: us, config: map[string]string{FormatTypeKey(types.CategoryLocalDate): "time"}, input: input, unsupported: true},
	})
}

func TestLocalTimeFormatter(t *testing.T) {
	input := types.LocalTime{Hour: 14, Minute: 34, Second: 9}
	runFormatTests(t, NewLocalTimeFormatter, []formatTest[types.LocalTime]{
		{name: "default", locale: us, input: input, expected: "2:34:09 PM"},
		{name: "short", locale: uk, opts: []FormatOption{WithPattern("short")}, input: input, expected: "14:34"},
		{name: "zone name", locale: us, opts: []FormatOption{WithPattern("long")}, input: input, unsupported: true},
		{name: "iso", locale: us, opts: []FormatOption{WithPattern("ISO_LOCAL_TIME")}, input: input, expected: "14:34:09"},
	})
}

func TestLocalDateTimeFormatter(t *testing.T) {
	input := localDateTime(2017, time.March, 11, 14, 34, 0, 0)
	runFormatTests(t, NewLocalDateTimeFormatter, []formatTest[types.LocalDateTime]{
		{name: "default", locale: us, input: input, expected: "3/11/17 2:34 PM"},
		{name: "medium", locale: us, opts: []FormatOption{WithPattern("medium"), WithValueKind("datetime")}, input: input, expected: "Mar 11, 2017 2:34:00 PM"},
		{name: "long needs a zone", locale: us, opts: []FormatOption{WithPattern("Long"), WithValueKind("datetime")}, input: input, unsupported: true},
		{name: "full needs a zone", locale: us, opts: []FormatOption{WithPattern("FULL"), WithValueKind("datetime")}, input: input, unsupported: true},
		{name: "iso date", locale: us, opts: []FormatOption{WithPattern("ISO_DATE")}, input: input, expected: "2017-03-11"},
		{name: "iso time", locale: us, opts: []FormatOption{WithPattern("ISO_TIME")}, input: input, expected: "14:34:00"},
		{name: "iso local date time", locale: us, opts: []FormatOption{WithPattern("ISO_LOCAL_DATE_TIME")}, input: input, expected: "2017-03-11T14:34:00"},
		{name: "date kind", locale: us, opts: []FormatOption{WithPattern("short"), WithValueKind("date")}, input: input, expected: "3/11/17"},
		{name: "quoted literal", locale: us, opts: []FormatOption{WithPattern("yyyy-MM-dd'T'HH:mm 'o''clock'")}, input: input, expected: "2017-03-11T14:34 o'clock"},
	})
}

func TestOffsetTimeFormatter(t *testing.T) {
	input := types.OffsetTime{Time: types.LocalTime{Hour: 14, Minute: 34, Second: 29, Nanosecond: 78}, Offset: -7 * 3600}
	runFormatTests(t, NewOffsetTimeFormatter, []formatTest[types.OffsetTime]{
		{name: "default", locale: us, input: input, expected: "14:34:29.000000078-07:00"},
		{name: "kind is ignored", locale: us, opts: []FormatOption{WithValueKind("datetime")}, input: input, expected: "14:34:29.000000078-07:00"},
		{name: "constant with date", locale: us, opts: []FormatOption{WithPattern("ISO_DATE_TIME")}, input: input, unsupported: true},
		{name: "iso time", locale: us, opts: []FormatOption{WithPattern("ISO_TIME")}, input: input, expected: "14:34:29.000000078-07:00"},
		{name: "pattern", locale: us, opts: []FormatOption{WithPattern("HH:mm xx")}, input: input, expected: "14:34 -0700"},
		{name: "date pattern", locale: us, opts: []FormatOption{WithPattern("yyyy-MM-dd")}, input: input, unsupported: true},
	})
}

func TestOffsetDateTimeFormatter(t *testing.T) {
	input := types.OffsetDateTime{DateTime: localDateTime(2017, time.March, 11, 14, 34, 0, 0), Offset: -9 * 3600}
	runFormatTests(t, NewOffsetDateTimeFormatter, []formatTest[types.OffsetDateTime]{
		{name: "default", locale: us, input: input, expected: "2017-03-11T14:34:00-09:00"},
		{name: "iso time", locale: us, opts: []FormatOption{WithPattern("ISO_TIME")}, input: input, expected: "14:34:00-09:00"},
		{name: "rfc 1123", locale: us, opts: []FormatOption{WithPattern("RFC_1123_DATE_TIME")}, input: input, expected: "Sat, 11 Mar 2017 14:34:00 -0900"},
		{name: "medium", locale: us, opts: []FormatOption{WithPattern("medium")}, input: input, expected: "Mar 11, 2017 2:34:00 PM"},
	})
}

func TestZonedDateTimeFormatter(t *testing.T) {
	input := types.ZonedDateTimeOf(time.Date(2017, time.March, 11, 14, 34, 0, 0, mustLoadLocation(t, "Asia/Tokyo")))
	runFormatTests(t, NewZonedDateTimeFormatter, []formatTest[types.ZonedDateTime]{
		{name: "default", locale: japan, input: input, expected: "2017-03-11T14:34:00+09:00[Asia/Tokyo]"},
		{name: "iso date", locale: us, opts: []FormatOption{WithPattern("ISO_DATE")}, input: input, expected: "2017-03-11+09:00"},
		{name: "zone id", locale: us, opts: []FormatOption{WithPattern("yyyy-MM-dd HH:mm VV")}, input: input, expected: "2017-03-11 14:34 Asia/Tokyo"},
		{name: "zone name", locale: us, opts: []FormatOption{WithPattern("HH:mm z")}, input: input, expected: "14:34 JST"},
		{name: "localized offset", locale: us, opts: []FormatOption{WithPattern("HH:mm O")}, input: input, expected: "14:34 GMT+9"},
	})
}

func TestYearFormatter(t *testing.T) {
	runFormatTests(t, NewYearFormatter, []formatTest[types.Year]{
		{name: "default", locale: us, input: 2017, expected: "2017"},
		{name: "two digits", locale: us, opts: []FormatOption{WithPattern("yy")}, input: 2017, expected: "17"},
		{name: "month pattern", locale: us, opts: []FormatOption{WithPattern("MM")}, input: 2017, unsupported: true},
	})
}

func TestMonthFormatter(t *testing.T) {
	input := types.Month(time.May)
	runFormatTests(t, NewMonthFormatter, []formatTest[types.Month]{
		{name: "default", locale: us, input: input, expected: "May"},
		{name: "default jp", locale: japan, input: input, expected: "5月"},
		{name: "number", locale: us, opts: []FormatOption{WithPattern("MM")}, input: input, expected: "05"},
		{name: "date pattern", locale: us, opts: []FormatOption{WithPattern("yyyy-MM-dd")}, input: input, unsupported: true},
	})
}

func TestYearMonthFormatter(t *testing.T) {
	input := types.YearMonth{Year: 2014, Month: time.July}
	runFormatTests(t, NewYearMonthFormatter, []formatTest[types.YearMonth]{
		{name: "default", locale: us, input: input, expected: "July 2014"},
		{name: "default jp", locale: japan, input: input, expected: "2014 7"},
		{name: "pattern", locale: us, opts: []FormatOption{WithPattern("MM/yyyy")}, input: input, expected: "07/2014"},
	})
}

func TestDefaultFormatRoundTrip(t *testing.T) {
	for _, tag := range []language.Tag{us, uk, japan} {
		cfg := testConfig(tag, nil)
		for _, category := range []types.Category{
			types.CategoryLocalDate,
			types.CategoryLocalTime,
			types.CategoryLocalDateTime,
			types.CategoryYear,
			types.CategoryMonth,
			types.CategoryYearMonth,
			types.CategoryOffsetDateTime,
			types.CategoryZonedDateTime,
			types.CategoryOffsetTime,
		} {
			value, err := ParseCanonical(category, canonicalSamples[category])
			if err != nil {
				t.Fatal(err)
			}
			f, err := NewFormatter(category, cfg)
			if err != nil {
				t.Fatal(err)
			}
			formatted, err := f.FormatValue(value)
			if err != nil {
				t.Fatalf("%s %s: %v", tag, category, err)
			}
			c, err := NewConverter(category, cfg)
			if err != nil {
				t.Fatal(err)
			}
			var errs ValidationErrors
			got, ok, err := c.ConvertValue(formatted, &errs)
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				t.Fatalf("%s %s: failed to convert %q back", tag, category, formatted)
			}
			if got.String() != value.String() {
				t.Fatalf("%s %s: expected %s but got %s", tag, category, value, got)
			}
		}
	}
}

var canonicalSamples = map[types.Category]string{
	types.CategoryLocalDate:      "2017-04-27",
	types.CategoryLocalTime:      "14:34",
	types.CategoryLocalDateTime:  "2017-03-11T14:34",
	types.CategoryYear:           "2017",
	types.CategoryMonth:          "May",
	types.CategoryYearMonth:      "2014-07",
	types.CategoryOffsetDateTime: "2017-03-11T14:34:00-09:00",
	types.CategoryZonedDateTime:  "2017-03-11T14:34:00+09:00[Asia/Tokyo]",
	types.CategoryOffsetTime:     "14:34:29-07:00",
}

func TestInvalidValueKind(t *testing.T) {
	f := NewLocalDateFormatter(testConfig(us, nil), WithPattern("medium"), WithValueKind("week"))
	if err := f.Init(); !errors.Is(err, ErrInvalidValueKind) {
		t.Fatalf("expected ErrInvalidValueKind but got %v", err)
	}
	if _, err := f.Format(types.LocalDate{Year: 2017, Month: time.April, Day: 27}); !errors.Is(err, ErrInvalidValueKind) {
		t.Fatalf("expected ErrInvalidValueKind but got %v", err)
	}
	cfg := testConfig(us, map[string]string{FormatTypeKey(types.CategoryLocalDate): "week"})
	if err := NewLocalDateFormatter(cfg).Init(); !errors.Is(err, ErrInvalidValueKind) {
		t.Fatalf("expected ErrInvalidValueKind from the configured kind but got %v", err)
	}
}

func TestInvalidFormatPattern(t *testing.T) {
	f := NewLocalDateFormatter(testConfig(us, nil), WithPattern("yyyy-MM-dd]"))
	var compileErr *pattern.CompileError
	if err := f.Init(); !errors.As(err, &compileErr) {
		t.Fatalf("expected CompileError but got %v", err)
	}
}

func TestFormatValueTypeMismatch(t *testing.T) {
	f, err := NewFormatter(types.CategoryLocalDate, testConfig(us, nil))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.FormatValue(types.Year(2017)); err == nil {
		t.Fatal("expected an error for a value of another category")
	}
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatal(err)
	}
	return loc
}
