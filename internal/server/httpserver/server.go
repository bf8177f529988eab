package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// Default timeouts applied by New.
const (
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a new HTTP server for handler.
func New(handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			IdleTimeout:       DefaultIdleTimeout,
		},
		handler: handler,
	}
}

// Serve accepts connections on l until Shutdown or Close is called.
// It returns nil after a clean shutdown instead of http.ErrServerClosed.
func (s *Server) Serve(l net.Listener) error {
	err := s.httpServer.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests.
// When ctx expires first, the remaining connections are closed and the
// context error is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil && ctx.Err() != nil {
		if cerr := s.httpServer.Close(); cerr != nil {
			return errors.Join(err, cerr)
		}
	}
	return err
}

// Handler returns the handler the server dispatches to.
func (s *Server) Handler() http.Handler {
	return s.handler
}
