package locale

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/goccy/temporalconv/types"
)

func TestFor(t *testing.T) {
	for _, test := range []struct {
		tag      language.Tag
		expected string
	}{
		{tag: language.AmericanEnglish, expected: "en-US"},
		{tag: language.English, expected: "en-US"},
		{tag: language.BritishEnglish, expected: "en-GB"},
		{tag: language.Japanese, expected: "ja-JP"},
		{tag: language.MustParse("ja-JP"), expected: "ja-JP"},
		{tag: language.German, expected: "de-DE"},
		{tag: language.MustParse("de-AT"), expected: "de-AT"},
		{tag: language.French, expected: "fr-FR"},
		{tag: language.Spanish, expected: "es-ES"},
		{tag: language.MustParse("es-ES"), expected: "es-ES"},
		{tag: language.Italian, expected: "it-IT"},
		{tag: language.MustParse("zh-TW"), expected: "zh-Hant-TW"},
		{tag: language.Und, expected: "und"},
		{tag: language.Swahili, expected: "und"},
	} {
		if got := For(test.tag).String(); got != test.expected {
			t.Fatalf("For(%s): expected %s but got %s", test.tag, test.expected, got)
		}
	}
}

func TestSupported(t *testing.T) {
	if got := len(Supported()); got != len(translators) {
		t.Fatalf("expected every translator to be supported but got %d of %d", got, len(translators))
	}
	for _, tag := range Supported() {
		loc := For(tag)
		if loc.Tag() != tag {
			t.Fatalf("For(%s) resolved to %s", tag, loc)
		}
		for _, style := range types.Styles() {
			if loc.DatePattern(style) == "" || loc.TimePattern(style) == "" {
				t.Fatalf("%s: missing %s skeleton", tag, style)
			}
		}
	}
}

func TestSkeletons(t *testing.T) {
	for _, test := range []struct {
		tag   string
		dates []string
		times []string
	}{
		{
			tag:   "en-US",
			dates: []string{"EEEE, MMMM d, yyyy", "MMMM d, yyyy", "MMM d, yyyy", "M/d/yy"},
			times: []string{"h:mm:ss a z", "h:mm:ss a z", "h:mm:ss a", "h:mm a"},
		},
		{
			tag:   "en-GB",
			dates: []string{"EEEE, d MMMM yyyy", "d MMMM yyyy", "d MMM yyyy", "dd/MM/yyyy"},
			times: []string{"HH:mm:ss z", "HH:mm:ss z", "HH:mm:ss", "HH:mm"},
		},
		{
			tag:   "ja-JP",
			dates: []string{"yyyy'年'M'月'd'日'EEEE", "yyyy'年'M'月'd'日'", "yyyy/MM/dd", "yyyy/MM/dd"},
			times: []string{"H'時'mm'分'ss'秒' z", "H:mm:ss z", "H:mm:ss", "H:mm"},
		},
		{
			tag:   "es-ES",
			dates: []string{"EEEE, d 'de' MMMM 'de' yyyy", "d 'de' MMMM 'de' yyyy", "d MMM yyyy", "d/M/yy"},
			times: []string{"H:mm:ss (z)", "H:mm:ss z", "H:mm:ss", "H:mm"},
		},
		{
			tag:   "it-IT",
			dates: []string{"EEEE d MMMM yyyy", "d MMMM yyyy", "d MMM yyyy", "dd/MM/yy"},
			times: []string{"HH:mm:ss z", "HH:mm:ss z", "HH:mm:ss", "HH:mm"},
		},
		{
			tag:   "ko-KR",
			dates: []string{"yyyy'년' M'월' d'일' EEEE", "yyyy'년' M'월' d'일'", "yyyy. M. d.", "yy. M. d."},
			times: []string{"a h'시' m'분' s'초' z", "a h'시' m'분' s'초' z", "a h:mm:ss", "a h:mm"},
		},
	} {
		test := test
		t.Run(test.tag, func(t *testing.T) {
			loc := For(language.MustParse(test.tag))
			if loc.String() != test.tag {
				t.Fatalf("expected %s but got %s", test.tag, loc)
			}
			var dates, times []string
			for _, style := range types.Styles() {
				dates = append(dates, loc.DatePattern(style))
				times = append(times, loc.TimePattern(style))
			}
			if diff := cmp.Diff(test.dates, dates); diff != "" {
				t.Errorf("dates (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.times, times); diff != "" {
				t.Errorf("times (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRootSkeletons(t *testing.T) {
	r := Root()
	if r.Tag() != language.Und {
		t.Fatalf("unexpected root tag %s", r)
	}
	if got := r.DatePattern(types.Short); got != "yyyy-MM-dd" {
		t.Fatalf("unexpected short pattern %q", got)
	}
	// the CLDR root data has no abbreviated month names to print the medium style with
	if got := r.DatePattern(types.Medium); got != r.DatePattern(types.Long) {
		t.Fatalf("medium pattern %q should borrow the long pattern %q", got, r.DatePattern(types.Long))
	}
	if got := r.TimePattern(types.Medium); got != "HH:mm:ss" {
		t.Fatalf("unexpected medium time pattern %q", got)
	}
	if got := r.Months(Full)[1]; got != "February" {
		t.Fatalf("unexpected month name %q", got)
	}
}

func TestDateTimePattern(t *testing.T) {
	us := For(language.AmericanEnglish)
	if got := us.DateTimePattern(types.Short, types.Medium); got != "M/d/yy h:mm:ss a" {
		t.Fatalf("unexpected pattern %q", got)
	}
	jp := For(language.Japanese)
	if got := jp.DatePattern(types.Long); got != "yyyy'年'M'月'd'日'" {
		t.Fatalf("unexpected pattern %q", got)
	}
	if got := jp.TimePattern(types.Style("unknown")); got != jp.TimePattern(types.Medium) {
		t.Fatalf("unknown style should fall back to medium: %q", got)
	}
}

func TestNames(t *testing.T) {
	us := For(language.AmericanEnglish)
	months := us.Months(Short)
	if diff := cmp.Diff([]string{"Jan", "Feb", "Mar"}, months[:3]); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := us.Months(Full)[6]; got != "July" {
		t.Fatalf("unexpected month name %q", got)
	}
	if got := us.Weekdays(Full)[4]; got != "Thursday" {
		t.Fatalf("unexpected weekday name %q", got)
	}
	if got := For(language.Spanish).Months(Full)[3]; got != "abril" {
		t.Fatalf("unexpected month name %q", got)
	}
	if got := For(language.Italian).Months(Full)[3]; got != "aprile" {
		t.Fatalf("unexpected month name %q", got)
	}
	if diff := cmp.Diff([]string{"AM", "PM"}, us.AmPm()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"午前", "午後"}, For(language.Japanese).AmPm()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"π.μ.", "μ.μ."}, For(language.Greek).AmPm()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"BC", "AD"}, us.Eras(Short)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestQuote(t *testing.T) {
	for _, test := range []struct {
		literal  string
		expected string
	}{
		{literal: "/", expected: "/"},
		{literal: " de ", expected: " 'de' "},
		{literal: "年", expected: "'年'"},
		{literal: "o'clock", expected: "'o''clock'"},
		{literal: " (", expected: " ("},
		{literal: "[", expected: "'['"},
	} {
		if got := quote(test.literal); got != test.expected {
			t.Errorf("quote(%q): expected %q but got %q", test.literal, test.expected, got)
		}
	}
}

func TestPeriodMarkers(t *testing.T) {
	for _, test := range []struct {
		am, pm   string
		expected []string
	}{
		{am: "9:07 am", pm: "9:07 pm", expected: []string{"am", "pm"}},
		{am: "9:07 a.m.", pm: "9:07 p.m.", expected: []string{"a.m.", "p.m."}},
		{am: "上午9:07", pm: "下午9:07", expected: []string{"上午", "下午"}},
		{am: "오전 9:07", pm: "오후 9:07", expected: []string{"오전", "오후"}},
	} {
		am, pm := periodMarkers(test.am, test.pm)
		if diff := cmp.Diff(test.expected, []string{am, pm}); diff != "" {
			t.Errorf("periodMarkers(%q, %q) (-want +got):\n%s", test.am, test.pm, diff)
		}
	}
}
