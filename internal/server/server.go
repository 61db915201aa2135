package server

import (
	"context"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/MKhiriev/web-bootstrap/internal/config"
	"github.com/MKhiriev/web-bootstrap/internal/handler"
	"github.com/MKhiriev/web-bootstrap/internal/logger"
)

const (
	// ListenPort is the TCP port the listener binds. It does not follow the
	// PORT environment variable.
	ListenPort = 3000

	// ListenAddress is ListenPort on all interfaces.
	ListenAddress = ":3000"
)

type server struct {
	httpServer *httpServer

	// port is the raw PORT value, kept for the startup diagnostics only.
	port            string
	shutdownTimeout time.Duration

	// started is closed once the listener is bound.
	started chan struct{}

	logger *logger.Logger
}

// NewServer prepares a server for the HTTP handler in handlers. It binds
// [ListenAddress] once RunServer is called.
func NewServer(handlers *handler.Handlers, cfg *config.StructuredConfig, logger *logger.Logger) (Server, error) {
	return newServer(handlers, cfg, ListenAddress, logger)
}

func newServer(handlers *handler.Handlers, cfg *config.StructuredConfig, address string, logger *logger.Logger) (*server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), address, cfg.Server.ReadHeaderTimeout),
		port:            cfg.Port,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
		started:         make(chan struct{}),
		logger:          logger,
	}, nil
}

// RunServer binds the listener and serves until ctx is cancelled or the
// process receives SIGINT, SIGTERM or SIGQUIT, then shuts down gracefully.
// A bind failure is returned immediately.
func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.warnOnIgnoredPort()

	if err := s.httpServer.Listen(); err != nil {
		return err
	}

	s.logger.Info().Str("address", s.httpServer.Addr()).Msg("web server started")
	close(s.started)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; err != nil {
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// warnOnIgnoredPort reports a PORT value that differs from the port actually
// bound.
func (s *server) warnOnIgnoredPort() {
	if s.port == "" || s.port == strconv.Itoa(ListenPort) {
		return
	}

	s.logger.Warn().
		Str("PORT", s.port).
		Str("address", s.httpServer.server.Addr).
		Msg("PORT is set but ignored, the listener binds the fixed address")
}
