package pattern

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/goccy/temporalconv/internal/locale"
)

var (
	us = locale.For(language.AmericanEnglish)
	jp = locale.For(language.Japanese)
	uk = locale.For(language.BritishEnglish)
)

func TestParseDigitsRespectingWidth(t *testing.T) {
	for _, test := range []struct {
		name             string
		text             []rune
		minWidth         int
		maxWidth         int
		reserve          int
		expectedProgress int
		expectedResult   int64
		expectedErr      string
	}{
		{
			name:             "single digit; non-digit character terminates",
			text:             []rune{'2', ' '},
			minWidth:         1,
			maxWidth:         19,
			expectedProgress: 1,
			expectedResult:   2,
		},
		{
			name:             "fixed width stops after two digits",
			text:             []rune{'0', '3', '2', '7'},
			minWidth:         2,
			maxWidth:         2,
			expectedProgress: 2,
			expectedResult:   3,
		},
		{
			name:             "reserved digits are left for the following fields",
			text:             []rune("20170327"),
			minWidth:         4,
			maxWidth:         19,
			reserve:          4,
			expectedProgress: 4,
			expectedResult:   2017,
		},
		{
			name:        "not enough digits",
			text:        []rune{'7', ' '},
			minWidth:    2,
			maxWidth:    2,
			expectedErr: "expected at least 2 digits but found 1",
		},
		{
			name:        "leading character is not a digit",
			text:        []rune{'a'},
			minWidth:    1,
			maxWidth:    2,
			expectedErr: "leading character is not a digit",
		},
		{
			name:        "empty",
			text:        []rune{},
			minWidth:    1,
			maxWidth:    2,
			expectedErr: "empty text",
		},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			progress, result, err := parseDigitsRespectingWidth(test.text, test.minWidth, test.maxWidth, test.reserve)
			if test.expectedErr != "" {
				if err == nil {
					t.Fatalf("expected error %q", test.expectedErr)
				}
				if err.Error() != test.expectedErr {
					t.Fatalf("expected error %q but got %q", test.expectedErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if progress != test.expectedProgress {
				t.Fatalf("expected progress %d but got %d", test.expectedProgress, progress)
			}
			if result != test.expectedResult {
				t.Fatalf("expected result %d but got %d", test.expectedResult, result)
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	for _, pattern := range []string{
		"yyyy]",
		"'unterminated",
		"{yyyy}",
		"VVV",
		"aa",
		"ddd",
		"HHH",
		"SSSSSSSSSS",
		"qqq",
	} {
		_, err := Compile(pattern, us)
		if err == nil {
			t.Fatalf("expected compile error for %q", pattern)
		}
		var compileErr *CompileError
		if !errors.As(err, &compileErr) {
			t.Fatalf("unexpected error type %T for %q", err, pattern)
		}
	}
}

func TestParseFields(t *testing.T) {
	for _, test := range []struct {
		name     string
		pattern  string
		locale   *locale.Locale
		text     string
		expected Fields
	}{
		{
			name:     "abbreviated month ignoring case",
			pattern:  "MMM d yyyy",
			locale:   us,
			text:     "MAR 27 2017",
			expected: Fields{Set: HasDate, Year: 2017, Month: 3, Day: 27},
		},
		{
			name:     "short date and time with am/pm marker",
			pattern:  "M d yy h mm a",
			locale:   us,
			text:     "1 30 17 1 47 pm",
			expected: Fields{Set: HasDate | HasTime, Year: 2017, Month: 1, Day: 30, Hour: 13, Minute: 47},
		},
		{
			name:     "twelve o'clock in the morning",
			pattern:  "h mm a",
			locale:   us,
			text:     "12 05 AM",
			expected: Fields{Set: HasTime, Hour: 0, Minute: 5},
		},
		{
			name:     "full weekday",
			pattern:  "EEEE d MMMM yyyy",
			locale:   uk,
			text:     "thursday 4 May 2017",
			expected: Fields{Set: HasDate | HasWeekday, Year: 2017, Month: 5, Day: 4, Weekday: 4},
		},
		{
			name:     "adjacent numbers",
			pattern:  "yyyyMMdd",
			locale:   us,
			text:     "20170327",
			expected: Fields{Set: HasDate, Year: 2017, Month: 3, Day: 27},
		},
		{
			name:     "japanese am/pm marker",
			pattern:  "a h mm",
			locale:   jp,
			text:     "午後 1 47",
			expected: Fields{Set: HasTime, Hour: 13, Minute: 47},
		},
		{
			name:     "fraction",
			pattern:  "HH mm ss SSS",
			locale:   us,
			text:     "02 47 24 789",
			expected: Fields{Set: HasTime, Hour: 2, Minute: 47, Second: 24, Nanosecond: 789000000},
		},
		{
			name:     "zone name",
			pattern:  "H mm ss z",
			locale:   jp,
			text:     "2 47 58 jst",
			expected: Fields{Set: HasTime | HasZone, Hour: 2, Minute: 47, Second: 58, Zone: "Asia/Tokyo"},
		},
		{
			name:     "zone id",
			pattern:  "yyyy-MM-dd HH:mm VV",
			locale:   us,
			text:     "2014-05-22 11:39 Asia/Tokyo",
			expected: Fields{Set: HasDate | HasTime | HasZone, Year: 2014, Month: 5, Day: 22, Hour: 11, Minute: 39, Zone: "Asia/Tokyo"},
		},
		{
			name:     "optional section is skipped",
			pattern:  "[yyyy ]M d H",
			locale:   us,
			text:     "1 30 19",
			expected: Fields{Set: HasMonth | HasDay | HasTime, Month: 1, Day: 30, Hour: 19},
		},
		{
			name:     "optional offsets",
			pattern:  "H:m:s [XXX][X]",
			locale:   us,
			text:     "2:47:58 +09",
			expected: Fields{Set: HasTime | HasOffset, Hour: 2, Minute: 47, Second: 58, Offset: 9 * 3600},
		},
		{
			name:     "quoted literal",
			pattern:  "HH:mm:ss 'o''clock'",
			locale:   uk,
			text:     "13:47:29 o'clock",
			expected: Fields{Set: HasTime, Hour: 13, Minute: 47, Second: 29},
		},
		{
			name:     "localized offset",
			pattern:  "HH:mm O",
			locale:   us,
			text:     "13:47 GMT-5",
			expected: Fields{Set: HasTime | HasOffset, Hour: 13, Minute: 47, Offset: -5 * 3600},
		},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			f, err := Compile(test.pattern, test.locale)
			if err != nil {
				t.Fatal(err)
			}
			got, err := f.ParseFields(test.text)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFailure(t *testing.T) {
	for _, test := range []struct {
		name    string
		pattern string
		text    string
	}{
		{name: "month out of range", pattern: "yyyy M d", text: "2017 13 1"},
		{name: "trailing text", pattern: "yyyy M", text: "2017 3 27"},
		{name: "two digit year for yyyy", pattern: "yyyy", text: "14"},
		{name: "unsigned year wider than yyyy", pattern: "yyyy", text: "12345"},
		{name: "plus sign on a four digit year", pattern: "yyyy", text: "+2014"},
		{name: "unsigned year wider than yyyy in a date", pattern: "MMM d yyyy", text: "Jan 2 20144"},
		{name: "wrong literal", pattern: "yyyy/M", text: "2017-3"},
		{name: "hour of am/pm without marker", pattern: "h mm", text: "2 47"},
		{name: "am/pm conflicts with hour", pattern: "H a", text: "13 am"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			f, err := Compile(test.pattern, us)
			if err != nil {
				t.Fatal(err)
			}
			_, err = f.ParseFields(test.text)
			if err == nil {
				t.Fatal("expected parse error")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("unexpected error type %T", err)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	date := Fields{Set: HasDate, Year: 2017, Month: 4, Day: 27}
	dateTime := Fields{Set: HasDate | HasTime, Year: 2017, Month: 4, Day: 27, Hour: 14, Minute: 5, Second: 9, Nanosecond: 120000000}
	zoned := dateTime
	zoned.Set |= HasOffset | HasZone
	zoned.Offset = 9 * 3600
	zoned.Zone = "Asia/Tokyo"
	for _, test := range []struct {
		name     string
		pattern  string
		locale   *locale.Locale
		fields   Fields
		expected string
	}{
		{name: "medium date", pattern: "MMM d, yyyy", locale: us, fields: date, expected: "Apr 27, 2017"},
		{name: "full date", pattern: "EEEE, MMMM d, yyyy", locale: us, fields: date, expected: "Thursday, April 27, 2017"},
		{name: "two digit year", pattern: "M/d/yy", locale: us, fields: date, expected: "4/27/17"},
		{name: "japanese date", pattern: "yyyy'年'M'月'd'日'", locale: jp, fields: date, expected: "2017年4月27日"},
		{name: "clock hour", pattern: "h:mm a", locale: us, fields: dateTime, expected: "2:05 PM"},
		{name: "fraction", pattern: "HH:mm:ss.SSS", locale: us, fields: dateTime, expected: "14:05:09.120"},
		{name: "day of year", pattern: "D", locale: us, fields: date, expected: "117"},
		{name: "era", pattern: "G yyyy", locale: us, fields: date, expected: "AD 2017"},
		{name: "offset", pattern: "X XX XXX", locale: us, fields: zoned, expected: "+09 +0900 +09:00"},
		{name: "zone", pattern: "VV z zzzz", locale: us, fields: zoned, expected: "Asia/Tokyo JST Japan Standard Time"},
		{name: "optional section with missing field", pattern: "yyyy[ HH:mm]", locale: us, fields: date, expected: "2017"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			f, err := Compile(test.pattern, test.locale)
			if err != nil {
				t.Fatal(err)
			}
			got, err := f.Format(test.fields)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.expected {
				t.Fatalf("expected %q but got %q", test.expected, got)
			}
		})
	}
}

func TestFormatUnsupportedField(t *testing.T) {
	f, err := Compile("yyyy-MM-dd HH:mm", us)
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Format(Fields{Set: HasDate, Year: 2017, Month: 4, Day: 27})
	var unsupported *UnsupportedFieldError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected unsupported field error but got %v", err)
	}
	if unsupported.Field != "HourOfDay" {
		t.Fatalf("unexpected field %s", unsupported.Field)
	}
}

func TestConstant(t *testing.T) {
	zoned := Fields{
		Set:  HasDate | HasTime | HasOffset | HasZone,
		Year: 2017, Month: 3, Day: 28, Hour: 2, Minute: 47, Second: 24, Nanosecond: 789000000,
		Offset: -4 * 3600,
		Zone:   "America/Montreal",
	}
	offsetOnly := zoned
	offsetOnly.Set &^= HasZone
	offsetOnly.Zone = ""
	for _, test := range []struct {
		name     string
		constant string
		fields   Fields
		expected string
	}{
		{name: "zoned", constant: "ISO_ZONED_DATE_TIME", fields: zoned, expected: "2017-03-28T02:47:24.789-04:00[America/Montreal]"},
		{name: "zoned without region", constant: "iso_zoned_date_time", fields: offsetOnly, expected: "2017-03-28T02:47:24.789-04:00"},
		{name: "local date", constant: "ISO_DATE", fields: Fields{Set: HasDate, Year: 2017, Month: 4, Day: 27}, expected: "2017-04-27"},
		{name: "instant", constant: "ISO_INSTANT", fields: zoned, expected: "2017-03-28T06:47:24.789Z"},
		{name: "basic", constant: "BASIC_ISO_DATE", fields: offsetOnly, expected: "20170328-0400"},
		{name: "rfc", constant: "RFC_1123_DATE_TIME", fields: offsetOnly, expected: "Tue, 28 Mar 2017 02:47:24 -0400"},
		{name: "local time keeps seconds", constant: "ISO_LOCAL_TIME", fields: Fields{Set: HasTime, Hour: 2, Minute: 47}, expected: "02:47:00"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			f, ok := Constant(test.constant)
			if !ok {
				t.Fatalf("failed to find %s", test.constant)
			}
			got, err := f.Format(test.fields)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.expected {
				t.Fatalf("expected %q but got %q", test.expected, got)
			}
		})
	}
}

func TestConstantParse(t *testing.T) {
	f, _ := Constant("ISO_ZONED_DATE_TIME")
	got, err := f.ParseFields("2017-03-28T02:47:24.789+09:00[America/Montreal]")
	if err != nil {
		t.Fatal(err)
	}
	expected := Fields{
		Set:  HasDate | HasTime | HasOffset | HasZone,
		Year: 2017, Month: 3, Day: 28, Hour: 2, Minute: 47, Second: 24, Nanosecond: 789000000,
		Offset: 9 * 3600,
		Zone:   "America/Montreal",
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, ok := Constant("ISO_WEEK"); ok {
		t.Fatal("unexpected constant")
	}
}
