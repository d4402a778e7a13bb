package converter

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/temporalconv/types"
)

// ValueConverter is the category independent view of a Converter.
type ValueConverter interface {
	Category() types.Category
	Init() error
	ConvertValue(input string, errs *ValidationErrors) (types.Value, bool, error)
	Patterns() ([]string, error)
}

// ValueFormatter is the category independent view of a Formatter.
type ValueFormatter interface {
	Category() types.Category
	Init() error
	FormatValue(v types.Value) (string, error)
}

type registryEntry struct {
	newConverter func(Config) ValueConverter
	newFormatter func(Config, ...FormatOption) ValueFormatter
	canonical    func(string) (types.Value, error)
}

var registry = map[types.Category]*registryEntry{}

func register[T types.Value](desc *descriptor[T]) {
	registry[desc.category] = &registryEntry{
		newConverter: func(cfg Config) ValueConverter {
			return newConverter(desc, cfg)
		},
		newFormatter: func(cfg Config, opts ...FormatOption) ValueFormatter {
			return newFormatter(desc, cfg, opts...)
		},
		canonical: func(s string) (types.Value, error) {
			v, err := desc.parse(desc.canonical, strings.TrimSpace(s), time.Now)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			return v, nil
		},
	}
}

func init() {
	register(instantDescriptor)
	register(localDateDescriptor)
	register(localTimeDescriptor)
	register(localDateTimeDescriptor)
	register(offsetTimeDescriptor)
	register(offsetDateTimeDescriptor)
	register(zonedDateTimeDescriptor)
	register(yearDescriptor)
	register(monthDescriptor)
	register(yearMonthDescriptor)
}

func lookupEntry(category types.Category) (*registryEntry, error) {
	entry, found := registry[category]
	if !found {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return entry, nil
}

func NewConverter(category types.Category, cfg Config) (ValueConverter, error) {
	entry, err := lookupEntry(category)
	if err != nil {
		return nil, err
	}
	return entry.newConverter(cfg), nil
}

func NewFormatter(category types.Category, cfg Config, opts ...FormatOption) (ValueFormatter, error) {
	entry, err := lookupEntry(category)
	if err != nil {
		return nil, err
	}
	return entry.newFormatter(cfg, opts...), nil
}

// ParseCanonical reads the ISO-8601 form printed by types.Value.String.
func ParseCanonical(category types.Category, s string) (types.Value, error) {
	entry, err := lookupEntry(category)
	if err != nil {
		return nil, err
	}
	return entry.canonical(s)
}
