// Package httpapi exposes the auth, profile and booking operations over a
// JSON HTTP API built on gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Server runs the gin engine on a TCP address until its context ends.
type Server struct {
	address string
	srv     *http.Server
	logger  logging.Logger
}

func NewServer(address string, engine *gin.Engine, l logging.Logger) *Server {
	return &Server{
		address: address,
		srv: &http.Server{
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: l.With("module", "http_server"),
	}
}

// Run listens on the configured address and serves until ctx is cancelled,
// then drains in-flight requests for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := s.srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
