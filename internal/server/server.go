// Package server owns the transport lifecycle: it starts the HTTP server
// (which also carries the WebSocket upgrade endpoint) and shuts everything
// down gracefully on SIGTERM/SIGINT/SIGQUIT, closing live sessions before
// the listener.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/live"
	"github.com/edusync/statesync/internal/logger"
)

type server struct {
	httpServer *httpServer
	hub        *live.Hub
	logger     *logger.Logger
}

func NewServer(handler http.Handler, hub *live.Hub, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handler, cfg, logger),
		hub:        hub,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Info().Msgf("Error running server: %v \n", err)
	}
}

func (s *server) Shutdown() {
	// live sessions first, so clients observe a clean close frame
	if s.hub != nil {
		s.hub.Shutdown()
	}

	s.httpServer.Shutdown()
}

func (s *server) run() error {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
