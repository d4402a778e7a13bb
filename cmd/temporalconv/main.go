package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"golang.org/x/text/language"

	"github.com/goccy/temporalconv/bundle"
	"github.com/goccy/temporalconv/converter"
	"github.com/goccy/temporalconv/internal/logger"
	"github.com/goccy/temporalconv/server"
	"github.com/goccy/temporalconv/types"
)

type option struct {
	Locale       string           `description:"specify the locale used when a request names none" long:"locale" default:"en-US"`
	Bundles      []string         `description:"specify the path to a YAML or JSON message bundle file. can be repeated" long:"bundle"`
	TwoDigitYear bool             `description:"accept two digit years in the default year patterns" long:"two-digit-year"`
	LogLevel     server.LogLevel  `description:"specify the log level (debug/info/warn/error)" long:"log-level" default:"error"`
	LogFormat    server.LogFormat `description:"sepcify the log format (console/json)" long:"log-format" default:"console"`
	Version      bool             `description:"print version" long:"version" short:"v"`

	Parse    parseCommand    `command:"parse" description:"convert text to the canonical form of a temporal value"`
	Format   formatCommand   `command:"format" description:"format canonical temporal values as localized text"`
	Patterns patternsCommand `command:"patterns" description:"print the input patterns in trial order"`
	Serve    serveCommand    `command:"serve" description:"serve the conversion API over HTTP and gRPC"`
}

type parseCommand struct {
	Category string `description:"specify the category of the value" long:"category" short:"c" required:"true"`
	Args     struct {
		Inputs []string `positional-arg-name:"input" required:"1"`
	} `positional-args:"yes"`
}

type formatCommand struct {
	Category  string `description:"specify the category of the value" long:"category" short:"c" required:"true"`
	Pattern   string `description:"specify a pattern, a style (short/medium/long/full) or a constant such as ISO_LOCAL_DATE" long:"pattern" short:"p"`
	ValueKind string `description:"specify the value kind (date/time/datetime) a style applies to" long:"value-kind"`
	Args      struct {
		Values []string `positional-arg-name:"value" required:"1"`
	} `positional-args:"yes"`
}

type patternsCommand struct {
	Category string `description:"specify the category of the value" long:"category" short:"c" required:"true"`
}

type serveCommand struct {
	Port     uint16 `description:"specify the port number of the HTTP API" long:"port" default:"9050"`
	GRPCPort uint16 `description:"specify the port number of the gRPC API" long:"grpc-port" default:"9060"`
}

type exitCode int

const (
	exitOK    exitCode = 0
	exitError exitCode = 1
)

var (
	version  string
	revision string
)

var errRejected = errors.New("some inputs were rejected")

func main() {
	os.Exit(int(run()))
}

func run() exitCode {
	command, opt, err := parseOpt(os.Args[1:])
	if err != nil {
		flagsErr, ok := err.(*flags.Error)
		if !ok {
			fmt.Fprintf(os.Stderr, "[temporalconv] unknown parsed option error: %[1]T %[1]v\n", err)
			return exitError
		}
		if flagsErr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitError
	}
	if err := runCommand(command, opt, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, err)
		}
		return exitError
	}
	return exitOK
}

func parseOpt(args []string) (string, option, error) {
	var opt option
	parser := flags.NewParser(&opt, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.ParseArgs(args); err != nil {
		return "", opt, err
	}
	if parser.Active == nil {
		return "", opt, nil
	}
	return parser.Active.Name, opt, nil
}

func runCommand(command string, opt option, stdout, stderr io.Writer) error {
	if opt.Version {
		fmt.Fprintf(stdout, "version: %s (%s)\n", version, revision)
		return nil
	}
	switch command {
	case "parse":
		return runParse(opt, stdout, stderr)
	case "format":
		return runFormat(opt, stdout)
	case "patterns":
		return runPatterns(opt, stdout)
	case "serve":
		return runServer(opt)
	}
	return fmt.Errorf("specify one of the parse, format, patterns or serve commands")
}

func loadBundles(paths []string) ([]*types.Bundle, error) {
	var bundles []*types.Bundle
	for _, path := range paths {
		b, err := bundle.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		bundles = append(bundles, b...)
	}
	return bundles, nil
}

func converterConfig(opt option) (converter.Config, error) {
	tag, err := language.Parse(opt.Locale)
	if err != nil {
		return converter.Config{}, fmt.Errorf("invalid locale %q: %w", opt.Locale, err)
	}
	bundles, err := loadBundles(opt.Bundles)
	if err != nil {
		return converter.Config{}, err
	}
	store, err := bundle.NewStore(bundles...)
	if err != nil {
		return converter.Config{}, err
	}
	zapLogger, err := logger.New(string(opt.LogLevel), string(opt.LogFormat))
	if err != nil {
		return converter.Config{}, err
	}
	return converter.Config{
		Locale:       tag,
		Lookup:       store.Lookup,
		Logger:       zapLogger,
		TwoDigitYear: opt.TwoDigitYear,
	}, nil
}

func categoryOf(name string) (types.Category, error) {
	category, found := types.CategoryFromName(name)
	if !found {
		return "", fmt.Errorf("unknown category %q", name)
	}
	return category, nil
}

func newConverter(opt option, name string) (converter.ValueConverter, error) {
	category, err := categoryOf(name)
	if err != nil {
		return nil, err
	}
	cfg, err := converterConfig(opt)
	if err != nil {
		return nil, err
	}
	c, err := converter.NewConverter(category, cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Init(); err != nil {
		return nil, err
	}
	return c, nil
}

// runParse prints the canonical form of every accepted input and reports
// the rejected ones on stderr.
func runParse(opt option, stdout, stderr io.Writer) error {
	c, err := newConverter(opt, opt.Parse.Category)
	if err != nil {
		return err
	}
	var errs converter.ValidationErrors
	for _, input := range opt.Parse.Args.Inputs {
		v, ok, err := c.ConvertValue(input, &errs)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(stdout, v.String())
		}
	}
	for _, e := range errs {
		fmt.Fprintf(stderr, "[temporalconv] %s\n", e)
	}
	if len(errs) != 0 {
		return errRejected
	}
	return nil
}

func runFormat(opt option, stdout io.Writer) error {
	category, err := categoryOf(opt.Format.Category)
	if err != nil {
		return err
	}
	cfg, err := converterConfig(opt)
	if err != nil {
		return err
	}
	f, err := converter.NewFormatter(
		category,
		cfg,
		converter.WithPattern(opt.Format.Pattern),
		converter.WithValueKind(opt.Format.ValueKind),
	)
	if err != nil {
		return err
	}
	if err := f.Init(); err != nil {
		return err
	}
	for _, s := range opt.Format.Args.Values {
		v, err := converter.ParseCanonical(category, s)
		if err != nil {
			return err
		}
		text, err := f.FormatValue(v)
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", s, err)
		}
		fmt.Fprintln(stdout, text)
	}
	return nil
}

func runPatterns(opt option, stdout io.Writer) error {
	c, err := newConverter(opt, opt.Patterns.Category)
	if err != nil {
		return err
	}
	patterns, err := c.Patterns()
	if err != nil {
		return err
	}
	if len(patterns) == 0 {
		fmt.Fprintf(stdout, "(canonical form only)\n")
		return nil
	}
	for _, p := range patterns {
		fmt.Fprintln(stdout, p)
	}
	return nil
}

func runServer(opt option) error {
	srv, err := server.New()
	if err != nil {
		return err
	}
	if err := srv.SetLocale(opt.Locale); err != nil {
		return err
	}
	srv.SetTwoDigitYear(opt.TwoDigitYear)
	if err := srv.SetLogLevel(opt.LogLevel); err != nil {
		return err
	}
	if err := srv.SetLogFormat(opt.LogFormat); err != nil {
		return err
	}
	bundles, err := loadBundles(opt.Bundles)
	if err != nil {
		return err
	}
	if err := srv.Load(server.StructSource(bundles...)); err != nil {
		return err
	}

	ctx := context.Background()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		s := <-interrupt
		fmt.Fprintf(os.Stdout, "[temporalconv] receive %s. shutdown gracefully\n", s)
		if err := srv.Stop(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "[temporalconv] failed to stop: %v\n", err)
		}
	}()

	httpAddr := fmt.Sprintf("0.0.0.0:%d", opt.Serve.Port)
	grpcAddr := fmt.Sprintf("0.0.0.0:%d", opt.Serve.GRPCPort)
	fmt.Fprintf(os.Stdout, "[temporalconv] listening at %s (http) and %s (grpc)\n", httpAddr, grpcAddr)
	if err := srv.Serve(ctx, httpAddr, grpcAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
