// Package locale provides the localized pattern skeletons and text names
// used to derive default input patterns and to format localized styles.
package locale

import (
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/bg_BG"
	"github.com/go-playground/locales/ca_ES"
	"github.com/go-playground/locales/cs_CZ"
	"github.com/go-playground/locales/da_DK"
	"github.com/go-playground/locales/de_AT"
	"github.com/go-playground/locales/de_CH"
	"github.com/go-playground/locales/de_DE"
	"github.com/go-playground/locales/el_GR"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_CA"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_IE"
	"github.com/go-playground/locales/en_IN"
	"github.com/go-playground/locales/en_NZ"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es_AR"
	"github.com/go-playground/locales/es_ES"
	"github.com/go-playground/locales/es_MX"
	"github.com/go-playground/locales/et_EE"
	"github.com/go-playground/locales/fr_BE"
	"github.com/go-playground/locales/fr_CA"
	"github.com/go-playground/locales/fr_CH"
	"github.com/go-playground/locales/fr_FR"
	"github.com/go-playground/locales/he_IL"
	"github.com/go-playground/locales/hi_IN"
	"github.com/go-playground/locales/hr_HR"
	"github.com/go-playground/locales/hu_HU"
	"github.com/go-playground/locales/id_ID"
	"github.com/go-playground/locales/it_CH"
	"github.com/go-playground/locales/it_IT"
	"github.com/go-playground/locales/ja_JP"
	"github.com/go-playground/locales/ko_KR"
	"github.com/go-playground/locales/lt_LT"
	"github.com/go-playground/locales/lv_LV"
	"github.com/go-playground/locales/nb_NO"
	"github.com/go-playground/locales/nl_BE"
	"github.com/go-playground/locales/nl_NL"
	"github.com/go-playground/locales/pl_PL"
	"github.com/go-playground/locales/pt_BR"
	"github.com/go-playground/locales/pt_PT"
	"github.com/go-playground/locales/ro_RO"
	"github.com/go-playground/locales/root"
	"github.com/go-playground/locales/ru_RU"
	"github.com/go-playground/locales/sk_SK"
	"github.com/go-playground/locales/sl_SI"
	"github.com/go-playground/locales/sv_SE"
	"github.com/go-playground/locales/tr_TR"
	"github.com/go-playground/locales/uk_UA"
	"github.com/go-playground/locales/vi_VN"
	"github.com/go-playground/locales/zh_Hans_CN"
	"github.com/go-playground/locales/zh_Hant_TW"
	"golang.org/x/text/language"

	"github.com/goccy/temporalconv/types"
)

// Width selects the length of a text name.
type Width int

const (
	Short Width = iota
	Full
	Narrow
)

type Locale struct {
	tag        language.Tag
	translator locales.Translator

	// skeletons indexed by types.Style.Index
	dates [4]string
	times [4]string

	// dateTime joins a date skeleton ({1}) and a time skeleton ({0})
	dateTime string

	markers markers
}

// markers holds the period and era names. go-playground/locales keeps
// them unexported, so only the period markers of twelve hour locales
// can be read back from its formatters.
type markers struct {
	amPm [2]string
	// indexed by Width
	eras [3][2]string
}

var (
	translators = []locales.Translator{
		en_US.New(), en_GB.New(), en_CA.New(), en_IE.New(), en_IN.New(), en_NZ.New(),
		ja_JP.New(),
		de_DE.New(), de_AT.New(), de_CH.New(),
		fr_FR.New(), fr_BE.New(), fr_CA.New(), fr_CH.New(),
		es_ES.New(), es_MX.New(), es_AR.New(),
		it_IT.New(), it_CH.New(),
		pt_BR.New(), pt_PT.New(),
		nl_NL.New(), nl_BE.New(),
		ru_RU.New(), uk_UA.New(), pl_PL.New(), cs_CZ.New(), sk_SK.New(), sl_SI.New(),
		hr_HR.New(), bg_BG.New(), hu_HU.New(), ro_RO.New(), el_GR.New(),
		sv_SE.New(), da_DK.New(), nb_NO.New(),
		et_EE.New(), lt_LT.New(), lv_LV.New(),
		ca_ES.New(), tr_TR.New(), he_IL.New(), hi_IN.New(),
		ko_KR.New(), zh_Hans_CN.New(), zh_Hant_TW.New(), id_ID.New(), vi_VN.New(),
	}

	englishMarkers = markers{
		amPm: [2]string{"AM", "PM"},
		eras: [3][2]string{
			Short:  {"BC", "AD"},
			Full:   {"Before Christ", "Anno Domini"},
			Narrow: {"B", "A"},
		},
	}

	knownMarkers = map[string]markers{
		"en_US": englishMarkers,
		"en_GB": englishMarkers,
		"ja_JP": {
			amPm: [2]string{"午前", "午後"},
			eras: [3][2]string{
				Short:  {"紀元前", "西暦"},
				Full:   {"紀元前", "西暦"},
				Narrow: {"BC", "AD"},
			},
		},
		"de_DE": {
			amPm: [2]string{"vorm.", "nachm."},
			eras: [3][2]string{
				Short:  {"v. Chr.", "n. Chr."},
				Full:   {"v. Chr.", "n. Chr."},
				Narrow: {"v. Chr.", "n. Chr."},
			},
		},
		"fr_FR": {
			amPm: [2]string{"AM", "PM"},
			eras: [3][2]string{
				Short:  {"av. J.-C.", "ap. J.-C."},
				Full:   {"av. J.-C.", "ap. J.-C."},
				Narrow: {"av. J.-C.", "ap. J.-C."},
			},
		},
	}

	rootLocale = newRootLocale()
	supported  = loadSupported()
	matcher    = language.NewMatcher(supportedTags())
)

func newLocale(tag language.Tag, trans locales.Translator) (*Locale, error) {
	s, err := deriveSkeletons(trans)
	if err != nil {
		return nil, err
	}
	m, found := knownMarkers[trans.Locale()]
	if !found {
		m = englishMarkers
		if len(s.amPm) == 2 {
			m.amPm = [2]string{s.amPm[0], s.amPm[1]}
		}
	}
	return &Locale{
		tag:        tag,
		translator: trans,
		dates:      s.dates,
		times:      s.times,
		dateTime:   "{1} {0}",
		markers:    m,
	}, nil
}

// newRootLocale builds the locale for tags no supported locale matches.
// Its skeletons come from the CLDR root data and its names are English.
func newRootLocale() *Locale {
	s, _ := deriveSkeletons(root.New())
	s.fillGaps()
	return &Locale{
		tag:        language.Und,
		translator: en.New(),
		dates:      s.dates,
		times:      s.times,
		dateTime:   "{1} {0}",
		markers:    englishMarkers,
	}
}

// loadSupported keeps the translators whose skeletons can be read back.
func loadSupported() []*Locale {
	ret := make([]*Locale, 0, len(translators))
	for _, trans := range translators {
		tag, err := language.Parse(strings.ReplaceAll(trans.Locale(), "_", "-"))
		if err != nil {
			continue
		}
		l, err := newLocale(tag, trans)
		if err != nil {
			continue
		}
		ret = append(ret, l)
	}
	return ret
}

func supportedTags() []language.Tag {
	tags := make([]language.Tag, 0, len(supported))
	for _, l := range supported {
		tags = append(tags, l.tag)
	}
	return tags
}

// Supported returns the tags that have dedicated locale data.
func Supported() []language.Tag {
	return supportedTags()
}

// For returns the closest supported locale for tag. A tag whose language
// no supported locale shares resolves to Root.
func For(tag language.Tag) *Locale {
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return rootLocale
	}
	return supported[idx]
}

// Root returns the locale built from the CLDR root data. The ISO
// formatters use it too.
func Root() *Locale {
	return rootLocale
}

func (l *Locale) Tag() language.Tag {
	return l.tag
}

func (l *Locale) String() string {
	return l.tag.String()
}

func (l *Locale) DatePattern(style types.Style) string {
	return l.dates[styleIndex(style)]
}

func (l *Locale) TimePattern(style types.Style) string {
	return l.times[styleIndex(style)]
}

func (l *Locale) DateTimePattern(dateStyle, timeStyle types.Style) string {
	return strings.NewReplacer(
		"{1}", l.DatePattern(dateStyle),
		"{0}", l.TimePattern(timeStyle),
	).Replace(l.dateTime)
}

// Months returns the names of January through December.
func (l *Locale) Months(width Width) []string {
	names := make([]string, 12)
	for i := range names {
		m := time.Month(i + 1)
		var name string
		switch width {
		case Full:
			name = l.translator.MonthWide(m)
		case Narrow:
			name = l.translator.MonthNarrow(m)
		default:
			name = l.translator.MonthAbbreviated(m)
		}
		if name == "" {
			name = m.String()
			if width != Full {
				name = name[:3]
			}
		}
		names[i] = name
	}
	return names
}

// Weekdays returns the names of Sunday through Saturday.
func (l *Locale) Weekdays(width Width) []string {
	names := make([]string, 7)
	for i := range names {
		d := time.Weekday(i)
		var name string
		switch width {
		case Full:
			name = l.translator.WeekdayWide(d)
		case Narrow:
			name = l.translator.WeekdayNarrow(d)
		default:
			name = l.translator.WeekdayAbbreviated(d)
		}
		if name == "" {
			name = d.String()
			if width != Full {
				name = name[:3]
			}
		}
		names[i] = name
	}
	return names
}

// AmPm returns the markers for the morning and the afternoon.
func (l *Locale) AmPm() []string {
	return []string{l.markers.amPm[0], l.markers.amPm[1]}
}

// Eras returns the names of the era before and after year one.
func (l *Locale) Eras(width Width) []string {
	if width < Short || width > Narrow {
		width = Short
	}
	eras := l.markers.eras[width]
	return []string{eras[0], eras[1]}
}

func styleIndex(style types.Style) int {
	if idx := style.Index(); idx >= 0 {
		return idx
	}
	return types.Medium.Index()
}
