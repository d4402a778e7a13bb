// Package converter turns loosely formatted text into temporal values by
// trying an ordered list of patterns, and prints values back with a
// configurable formatter.
package converter

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goccy/temporalconv/internal/catalog"
	"github.com/goccy/temporalconv/internal/locale"
	"github.com/goccy/temporalconv/internal/normalize"
	"github.com/goccy/temporalconv/internal/pattern"
	"github.com/goccy/temporalconv/types"
)

// Converter parses text into values of one category. The configuration
// is resolved once by Init. After that a Converter is safe for concurrent use.
type Converter[T types.Value] struct {
	desc *descriptor[T]
	cfg  Config

	once    sync.Once
	initErr error

	logger     *zap.Logger
	locale     *locale.Locale
	separators *normalize.Separators
	patterns   []string
	parsers    []*pattern.Formatter
}

func newConverter[T types.Value](desc *descriptor[T], cfg Config) *Converter[T] {
	return &Converter[T]{desc: desc, cfg: cfg}
}

func NewInstantConverter(cfg Config) *Converter[types.Instant] {
	return newConverter(instantDescriptor, cfg)
}

func NewLocalDateConverter(cfg Config) *Converter[types.LocalDate] {
	return newConverter(localDateDescriptor, cfg)
}

func NewLocalTimeConverter(cfg Config) *Converter[types.LocalTime] {
	return newConverter(localTimeDescriptor, cfg)
}

func NewLocalDateTimeConverter(cfg Config) *Converter[types.LocalDateTime] {
	return newConverter(localDateTimeDescriptor, cfg)
}

func NewOffsetTimeConverter(cfg Config) *Converter[types.OffsetTime] {
	return newConverter(offsetTimeDescriptor, cfg)
}

func NewOffsetDateTimeConverter(cfg Config) *Converter[types.OffsetDateTime] {
	return newConverter(offsetDateTimeDescriptor, cfg)
}

func NewZonedDateTimeConverter(cfg Config) *Converter[types.ZonedDateTime] {
	return newConverter(zonedDateTimeDescriptor, cfg)
}

func NewYearConverter(cfg Config) *Converter[types.Year] {
	return newConverter(yearDescriptor, cfg)
}

func NewMonthConverter(cfg Config) *Converter[types.Month] {
	return newConverter(monthDescriptor, cfg)
}

func NewYearMonthConverter(cfg Config) *Converter[types.YearMonth] {
	return newConverter(yearMonthDescriptor, cfg)
}

func (c *Converter[T]) Category() types.Category {
	return c.desc.category
}

// Init resolves the locale, the separator expression and the pattern
// list. Only the first call does the work.
func (c *Converter[T]) Init() error {
	c.once.Do(func() {
		c.initErr = c.init()
	})
	return c.initErr
}

func (c *Converter[T]) init() error {
	c.logger = c.cfg.logger().With(zap.String("scope", c.desc.category.Scope()))
	c.locale = locale.For(c.cfg.Locale)
	c.separators = normalize.DefaultSeparators()
	if expr, found := c.cfg.lookup(SeparatorPatternKey); found && strings.TrimSpace(expr) != "" {
		separators, err := normalize.NewSeparators(expr)
		if err != nil {
			return fmt.Errorf("failed to configure %s: %w", c.desc.category.Scope(), err)
		}
		c.separators = separators
	}
	override, _ := c.cfg.lookup(PatternsKey(c.desc.category))
	list := catalog.Build(c.desc.category, c.locale, override, catalog.Options{TwoDigitYear: c.cfg.TwoDigitYear})
	c.patterns = list.Patterns()
	for _, p := range c.patterns {
		parser, err := pattern.Compile(p, c.locale)
		if err != nil {
			c.logger.Warn("skip invalid pattern", zap.String("pattern", p), zap.Error(err))
			continue
		}
		c.parsers = append(c.parsers, parser)
	}
	c.logger.Debug(
		"initialized converter",
		zap.String("locale", c.locale.String()),
		zap.String("separators", c.separators.String()),
		zap.Strings("patterns", c.patterns),
	)
	return nil
}

// Patterns returns the input patterns in trial order.
func (c *Converter[T]) Patterns() ([]string, error) {
	if err := c.Init(); err != nil {
		return nil, err
	}
	ret := make([]string, len(c.patterns))
	copy(ret, c.patterns)
	return ret, nil
}

// Convert parses input with the first pattern that accepts it. When none
// does, one ValidationError is added to errs and ok is false. The returned
// error is reserved for configuration failures.
func (c *Converter[T]) Convert(input string, errs *ValidationErrors) (T, bool, error) {
	var zero T
	if err := c.Init(); err != nil {
		return zero, false, err
	}
	if len(c.patterns) == 0 {
		text := strings.TrimSpace(input)
		v, err := c.desc.parse(c.desc.canonical, text, c.cfg.now)
		if err != nil {
			c.logger.Debug("failed to parse", zap.String("input", text), zap.String("pattern", c.desc.canonical.String()), zap.Error(err))
			c.reject(input, errs)
			return zero, false, nil
		}
		return v, true, nil
	}
	text := strings.TrimSpace(input)
	if c.desc.normalize {
		text = c.separators.Normalize(input)
	}
	for _, parser := range c.parsers {
		v, err := c.desc.parse(parser, text, c.cfg.now)
		if err != nil {
			c.logger.Debug("failed to parse", zap.String("input", text), zap.String("pattern", parser.String()), zap.Error(err))
			continue
		}
		return v, true, nil
	}
	c.reject(input, errs)
	return zero, false, nil
}

func (c *Converter[T]) reject(input string, errs *ValidationErrors) {
	errs.Add(&ValidationError{
		Scope: c.desc.category.Scope(),
		Key:   invalidInputKey,
		Input: input,
	})
}

// ConvertValue is Convert for callers that select the category at runtime.
func (c *Converter[T]) ConvertValue(input string, errs *ValidationErrors) (types.Value, bool, error) {
	v, ok, err := c.Convert(input, errs)
	if err != nil || !ok {
		return nil, ok, err
	}
	return v, true, nil
}
