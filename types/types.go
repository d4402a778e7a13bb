package types

import (
	"strings"
)

// Bundle is a set of lookup entries scoped to a single locale.
// Entries of a parent locale ("ja" for "ja-JP", "und" for "ja") are
// consulted when the exact locale does not define a key.
type Bundle struct {
	Locale  string            `yaml:"locale" json:"locale" validate:"required,locale"`
	Entries map[string]string `yaml:"entries" json:"entries" validate:"required"`
}

func NewBundle(locale string, entries map[string]string) *Bundle {
	return &Bundle{
		Locale:  locale,
		Entries: entries,
	}
}

type Category string

const (
	CategoryInstant        Category = "instant"
	CategoryLocalDate      Category = "localDate"
	CategoryLocalTime      Category = "localTime"
	CategoryLocalDateTime  Category = "localDateTime"
	CategoryOffsetTime     Category = "offsetTime"
	CategoryOffsetDateTime Category = "offsetDateTime"
	CategoryZonedDateTime  Category = "zonedDateTime"
	CategoryYear           Category = "year"
	CategoryMonth          Category = "month"
	CategoryYearMonth      Category = "yearMonth"
)

var categories = []Category{
	CategoryInstant,
	CategoryLocalDate,
	CategoryLocalTime,
	CategoryLocalDateTime,
	CategoryOffsetTime,
	CategoryOffsetDateTime,
	CategoryZonedDateTime,
	CategoryYear,
	CategoryMonth,
	CategoryYearMonth,
}

// Categories returns every supported category in declaration order.
func Categories() []Category {
	ret := make([]Category, len(categories))
	copy(ret, categories)
	return ret
}

// CategoryFromName matches name against the supported categories ignoring case.
func CategoryFromName(name string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

func (c Category) Valid() bool {
	_, ok := CategoryFromName(string(c))
	return ok
}

// Scope is the message scope used for validation errors raised by the
// converter of this category.
func (c Category) Scope() string {
	return "converter." + string(c)
}

func (c Category) String() string {
	return string(c)
}

type ValueKind string

const (
	DateKind     ValueKind = "date"
	TimeKind     ValueKind = "time"
	DateTimeKind ValueKind = "datetime"
)

func ValueKindFromName(name string) (ValueKind, bool) {
	switch ValueKind(strings.ToLower(strings.TrimSpace(name))) {
	case DateKind:
		return DateKind, true
	case TimeKind:
		return TimeKind, true
	case DateTimeKind:
		return DateTimeKind, true
	}
	return "", false
}

type Style string

const (
	Full   Style = "full"
	Long   Style = "long"
	Medium Style = "medium"
	Short  Style = "short"
)

// Styles returns the localized styles from the most to the least verbose.
func Styles() []Style {
	return []Style{Full, Long, Medium, Short}
}

func StyleFromName(name string) (Style, bool) {
	for _, s := range Styles() {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

// Index returns the position of the style in Styles or -1.
func (s Style) Index() int {
	for i, v := range Styles() {
		if v == s {
			return i
		}
	}
	return -1
}
