package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type loggerKey struct{}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) *zap.Logger {
	return ctx.Value(loggerKey{}).(*zap.Logger)
}

// NewConfig returns the error level console configuration every logger starts from.
func NewConfig() *zap.Config {
	return &zap.Config{
		Level:             zap.NewAtomicLevelAt(zap.ErrorLevel),
		Development:       false,
		Encoding:          "console",
		DisableStacktrace: true,
		EncoderConfig:     zap.NewDevelopmentEncoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

func Level(level string) (zap.AtomicLevel, error) {
	switch level {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel), nil
	case "info":
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel), nil
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel), nil
	case "fatal":
		return zap.NewAtomicLevelAt(zap.FatalLevel), nil
	}
	return zap.AtomicLevel{}, fmt.Errorf("unexpected log level %s", level)
}

func Encoding(format string) (string, error) {
	switch format {
	case "console", "json":
		return format, nil
	}
	return "", fmt.Errorf("unexpected log format %s", format)
}

// New builds a logger for level and format on top of NewConfig.
func New(level, format string) (*zap.Logger, error) {
	cfg := NewConfig()
	atomicLevel, err := Level(level)
	if err != nil {
		return nil, err
	}
	encoding, err := Encoding(format)
	if err != nil {
		return nil, err
	}
	cfg.Level = atomicLevel
	cfg.Encoding = encoding
	return cfg.Build()
}
