package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"PredVal/pkg/http/middleware"
	applogger "PredVal/pkg/logger"
)

// ServerOption configures Server.
type ServerOption func(*ServerConfig)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host string
	Port int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	BodyLimit     string        // echo size notation, e.g. "32M"
	SlowThreshold time.Duration // requests slower than this are logged at warn

	Registry *prometheus.Registry
	Logger   *applogger.Logger
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		BodyLimit:       "32M",
		SlowThreshold:   time.Second,
	}
}

func (c ServerConfig) addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// gatherer merges the process collectors with the optional report registry.
func (c ServerConfig) gatherer() prometheus.Gatherer {
	if c.Registry == nil {
		return prometheus.DefaultGatherer
	}
	return prometheus.Gatherers{prometheus.DefaultGatherer, c.Registry}
}

// Server serves the report API and /metrics.
type Server struct {
	echo  *echo.Echo
	cfg   ServerConfig
	errCh chan error
}

func NewServer(handler Handler, opts ...ServerOption) *Server {
	cfg := defaultServerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(middleware.Recover(cfg.Logger))
	if cfg.Registry != nil {
		e.Use(middleware.Metrics(cfg.Registry, cfg.Logger, cfg.SlowThreshold))
	}
	e.Use(middleware.RequestLogging(cfg.Logger))
	if cfg.BodyLimit != "" {
		e.Use(echomw.BodyLimit(cfg.BodyLimit))
	}

	if handler != nil {
		handler.RegisterRoutes(e)
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.gatherer(), promhttp.HandlerOpts{})))

	return &Server{echo: e, cfg: cfg, errCh: make(chan error, 1)}
}

// Start listens in the background. A listen failure is delivered on Errors.
func (s *Server) Start() error {
	addr := s.cfg.addr()
	if s.cfg.Logger != nil {
		s.cfg.Logger.Info("http server listening", applogger.String("addr", addr))
	}
	go func() {
		err := s.echo.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errCh <- err
		}
	}()
	return nil
}

func (s *Server) Errors() <-chan error { return s.errCh }

// Stop drains in-flight requests, bounded by the shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		return err
	}
	if s.cfg.Logger != nil {
		s.cfg.Logger.Info("http server stopped")
	}
	return nil
}

// Echo exposes the router, mostly for tests.
func (s *Server) Echo() *echo.Echo { return s.echo }

// WithListen sets the listen address. An empty host keeps the default.
func WithListen(host string, port int) ServerOption {
	return func(c *ServerConfig) {
		if host != "" {
			c.Host = host
		}
		if port > 0 {
			c.Port = port
		}
	}
}

func WithTimeouts(read, write, shutdown time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.ReadTimeout, c.WriteTimeout, c.ShutdownTimeout = read, write, shutdown
	}
}

func WithBodyLimit(limit string) ServerOption {
	return func(c *ServerConfig) { c.BodyLimit = limit }
}

// WithRegistry exposes reg on /metrics and records HTTP metrics on it.
func WithRegistry(reg *prometheus.Registry) ServerOption {
	return func(c *ServerConfig) { c.Registry = reg }
}

func WithLogger(l *applogger.Logger) ServerOption {
	return func(c *ServerConfig) { c.Logger = l }
}
