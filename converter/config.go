package converter

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/goccy/temporalconv/types"
)

const SeparatorPatternKey = "temporal.converter.separatorPattern"

// PatternsKey is the key of the comma separated input patterns that
// replace the defaults of category.
func PatternsKey(c types.Category) string {
	return "temporal." + string(c) + "Converter.patterns"
}

func FormatPatternKey(c types.Category) string {
	return "temporal." + string(c) + "Formatter.defaultFormatPattern"
}

func FormatTypeKey(c types.Category) string {
	return "temporal." + string(c) + "Formatter.defaultFormatType"
}

// Lookup returns the value of key for tag. A false result means the key
// is not configured.
type Lookup func(key string, tag language.Tag) (string, bool)

// MapLookup serves the same entries for every locale.
func MapLookup(entries map[string]string) Lookup {
	return func(key string, _ language.Tag) (string, bool) {
		v, ok := entries[key]
		return v, ok
	}
}

type Config struct {
	Locale language.Tag
	Lookup Lookup
	Logger *zap.Logger

	// TwoDigitYear lets the default year patterns accept "yy".
	TwoDigitYear bool

	// Clock supplies the year of inputs that carry none.
	Clock func() time.Time
}

func (c Config) lookup(key string) (string, bool) {
	if c.Lookup == nil {
		return "", false
	}
	return c.Lookup(key, c.Locale)
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c Config) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}
