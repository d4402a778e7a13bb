package converter

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goccy/temporalconv/internal/catalog"
	"github.com/goccy/temporalconv/internal/locale"
	"github.com/goccy/temporalconv/internal/pattern"
	"github.com/goccy/temporalconv/types"
)

type formatOptions struct {
	pattern string
	kind    string
}

type FormatOption func(*formatOptions)

// WithPattern requests a constant name such as "ISO_DATE", a style such
// as "medium" or a literal pattern.
func WithPattern(p string) FormatOption {
	return func(o *formatOptions) {
		o.pattern = p
	}
}

// WithValueKind selects "date", "time" or "datetime" for style patterns.
func WithValueKind(kind string) FormatOption {
	return func(o *formatOptions) {
		o.kind = kind
	}
}

// Formatter prints values of one category.
type Formatter[T types.Value] struct {
	desc *descriptor[T]
	cfg  Config
	opts formatOptions

	once    sync.Once
	initErr error

	formatter *pattern.Formatter
}

func newFormatter[T types.Value](desc *descriptor[T], cfg Config, opts ...FormatOption) *Formatter[T] {
	f := &Formatter[T]{desc: desc, cfg: cfg}
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f
}

func NewInstantFormatter(cfg Config, opts ...FormatOption) *Formatter[types.Instant] {
	return newFormatter(instantDescriptor, cfg, opts...)
}

func NewLocalDateFormatter(cfg Config, opts ...FormatOption) *Formatter[types.LocalDate] {
	return newFormatter(localDateDescriptor, cfg, opts...)
}

func NewLocalTimeFormatter(cfg Config, opts ...FormatOption) *Formatter[types.LocalTime] {
	return newFormatter(localTimeDescriptor, cfg, opts...)
}

func NewLocalDateTimeFormatter(cfg Config, opts ...FormatOption) *Formatter[types.LocalDateTime] {
	return newFormatter(localDateTimeDescriptor, cfg, opts...)
}

func NewOffsetTimeFormatter(cfg Config, opts ...FormatOption) *Formatter[types.OffsetTime] {
	return newFormatter(offsetTimeDescriptor, cfg, opts...)
}

func NewOffsetDateTimeFormatter(cfg Config, opts ...FormatOption) *Formatter[types.OffsetDateTime] {
	return newFormatter(offsetDateTimeDescriptor, cfg, opts...)
}

func NewZonedDateTimeFormatter(cfg Config, opts ...FormatOption) *Formatter[types.ZonedDateTime] {
	return newFormatter(zonedDateTimeDescriptor, cfg, opts...)
}

func NewYearFormatter(cfg Config, opts ...FormatOption) *Formatter[types.Year] {
	return newFormatter(yearDescriptor, cfg, opts...)
}

func NewMonthFormatter(cfg Config, opts ...FormatOption) *Formatter[types.Month] {
	return newFormatter(monthDescriptor, cfg, opts...)
}

func NewYearMonthFormatter(cfg Config, opts ...FormatOption) *Formatter[types.YearMonth] {
	return newFormatter(yearMonthDescriptor, cfg, opts...)
}

func (f *Formatter[T]) Category() types.Category {
	return f.desc.category
}

// Init resolves the output formatter. Only the first call does the work.
func (f *Formatter[T]) Init() error {
	f.once.Do(func() {
		f.initErr = f.init()
	})
	return f.initErr
}

func (f *Formatter[T]) init() error {
	loc := locale.For(f.cfg.Locale)
	requested := f.opts.pattern
	if requested == "" {
		if v, found := f.cfg.lookup(FormatPatternKey(f.desc.category)); found && strings.TrimSpace(v) != "" {
			requested = v
		} else {
			requested = f.desc.defaultFormat(loc, catalog.Options{TwoDigitYear: f.cfg.TwoDigitYear})
		}
	}
	kind := f.opts.kind
	if kind == "" && !f.desc.fixedKind {
		if v, found := f.cfg.lookup(FormatTypeKey(f.desc.category)); found {
			kind = v
		}
	}
	if kind == "" {
		kind = string(f.desc.defaultKind)
	}
	formatter, err := resolveFormatter(requested, kind, loc)
	if err != nil {
		return fmt.Errorf("failed to configure %s formatter: %w", f.desc.category, err)
	}
	f.formatter = formatter
	f.cfg.logger().Debug(
		"initialized formatter",
		zap.String("category", f.desc.category.String()),
		zap.String("pattern", formatter.String()),
	)
	return nil
}

// Format prints v. Fields the resolved formatter needs but the category
// does not carry are reported as *pattern.UnsupportedFieldError.
func (f *Formatter[T]) Format(v T) (string, error) {
	if err := f.Init(); err != nil {
		return "", err
	}
	return f.formatter.Format(f.desc.fields(v))
}

// FormatValue is Format for callers that select the category at runtime.
func (f *Formatter[T]) FormatValue(v types.Value) (string, error) {
	typed, ok := v.(T)
	if !ok {
		return "", fmt.Errorf("%s formatter cannot format %T", f.desc.category, v)
	}
	return f.Format(typed)
}

// resolveFormatter looks requested up as a constant name, then as a style
// and finally compiles it as a pattern.
func resolveFormatter(requested, kind string, loc *locale.Locale) (*pattern.Formatter, error) {
	if f, found := pattern.Constant(requested); found {
		return f, nil
	}
	if style, found := types.StyleFromName(requested); found {
		valueKind, found := types.ValueKindFromName(kind)
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrInvalidValueKind, kind)
		}
		switch valueKind {
		case types.DateKind:
			return pattern.Compile(loc.DatePattern(style), loc)
		case types.TimeKind:
			return pattern.Compile(loc.TimePattern(style), loc)
		default:
			return pattern.Compile(loc.DateTimePattern(style, style), loc)
		}
	}
	return pattern.Compile(requested, loc)
}
