package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"google.golang.org/grpc"

	"github.com/goccy/temporalconv/bundle"
	"github.com/goccy/temporalconv/converter"
	"github.com/goccy/temporalconv/internal/locale"
	"github.com/goccy/temporalconv/internal/logger"
	"github.com/goccy/temporalconv/types"
)

type Server struct {
	Handler      http.Handler
	store        *bundle.Store
	locale       language.Tag
	twoDigitYear bool
	loggerConfig *zap.Config
	logger       *zap.Logger
	httpServer   *http.Server
	grpcServer   *grpc.Server

	mu         sync.Mutex
	converters map[string]converter.ValueConverter
}

func New() (*Server, error) {
	store, err := bundle.NewStore()
	if err != nil {
		return nil, err
	}
	server := &Server{
		store:      store,
		locale:     language.AmericanEnglish,
		converters: map[string]converter.ValueConverter{},
	}
	server.loggerConfig = logger.NewConfig()
	if _, err := server.loggerConfig.Build(); err != nil {
		return nil, fmt.Errorf("invalid default logger config: %w", err)
	}
	server.logger = zap.NewNop()

	r := mux.NewRouter()
	for _, handler := range handlers {
		r.Handle(handler.Path, handler.Handler).Methods(handler.HTTPMethod)
	}
	r.PathPrefix("/").Handler(&defaultHandler{})
	r.Use(recoveryMiddleware(server))
	r.Use(loggerMiddleware(server))
	r.Use(accessLogMiddleware())
	r.Use(decompressMiddleware())
	r.Use(withServerMiddleware(server))
	r.Use(withLocaleMiddleware())
	server.Handler = r
	return server, nil
}

// SetLocale sets the locale used when a request names none.
func (s *Server) SetLocale(locale string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = tag
	s.resetConverters()
	return nil
}

// SetTwoDigitYear lets the default year patterns accept two digits.
func (s *Server) SetTwoDigitYear(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.twoDigitYear = enabled
	s.resetConverters()
}

type LogLevel string

const (
	LogLevelUnknown LogLevel = "unknown"
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarn    LogLevel = "warn"
	LogLevelError   LogLevel = "error"
	LogLevelFatal   LogLevel = "fatal"
)

func (s *Server) SetLogLevel(level LogLevel) error {
	atomicLevel, err := logger.Level(string(level))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggerConfig.Level = atomicLevel
	logger, err := s.loggerConfig.Build()
	if err != nil {
		return err
	}
	s.logger = logger
	s.resetConverters()
	return nil
}

type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

func (s *Server) SetLogFormat(format LogFormat) error {
	encoding, err := logger.Encoding(string(format))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggerConfig.Encoding = encoding
	logger, err := s.loggerConfig.Build()
	if err != nil {
		return err
	}
	s.logger = logger
	s.resetConverters()
	return nil
}

func (s *Server) Load(sources ...Source) error {
	for _, source := range sources {
		if err := source(s); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetConverters()
	return nil
}

// resetConverters must be called with s.mu held.
func (s *Server) resetConverters() {
	s.converters = map[string]converter.ValueConverter{}
}

func (s *Server) currentLogger() *zap.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logger
}

func (s *Server) defaultLocale() language.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// converterConfig must be called with s.mu held. The converter sees the
// locale data of loc and the bundle entries reachable from bundleTag.
func (s *Server) converterConfig(loc, bundleTag language.Tag) converter.Config {
	store := s.store
	return converter.Config{
		Locale: loc,
		Lookup: func(key string, _ language.Tag) (string, bool) {
			return store.Lookup(key, bundleTag)
		},
		Logger:       s.logger,
		TwoDigitYear: s.twoDigitYear,
	}
}

// formatterConfig returns the configuration of a formatter for tag.
func (s *Server) formatterConfig(tag language.Tag) converter.Config {
	loc := locale.For(tag).Tag()
	bundleTag := s.store.Resolve(tag)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.converterConfig(loc, bundleTag)
}

// converter returns the initialized converter of category for tag.
// Tags that resolve to the same locale data and the same bundle share a
// converter, which is kept until the configuration changes.
func (s *Server) converter(category types.Category, tag language.Tag) (converter.ValueConverter, error) {
	loc := locale.For(tag).Tag()
	bundleTag := s.store.Resolve(tag)
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(category) + "/" + loc.String() + "/" + bundleTag.String()
	if c, exists := s.converters[key]; exists {
		return c, nil
	}
	c, err := converter.NewConverter(category, s.converterConfig(loc, bundleTag))
	if err != nil {
		return nil, err
	}
	if err := c.Init(); err != nil {
		return nil, err
	}
	s.converters[key] = c
	return c, nil
}

func (s *Server) newGRPCServer() *grpc.Server {
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpcLoggerInterceptor(s)))
	registerConverterServer(grpcServer, s)
	return grpcServer
}

func (s *Server) Serve(ctx context.Context, httpAddr, grpcAddr string) error {
	httpServer := &http.Server{
		Handler:      s.Handler,
		Addr:         httpAddr,
		WriteTimeout: 1 * time.Minute,
		ReadTimeout:  15 * time.Second,
	}
	s.httpServer = httpServer

	grpcServer := s.newGRPCServer()
	s.grpcServer = grpcServer

	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return err
	}
	grpcListener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return err
	}

	var eg errgroup.Group
	eg.Go(func() error { return grpcServer.Serve(grpcListener) })
	eg.Go(func() error { return httpServer.Serve(httpListener) })
	return eg.Wait()
}

func (s *Server) Stop(ctx context.Context) error {
	defer func() {
		_ = s.currentLogger().Sync()
	}()
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
