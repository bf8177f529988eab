package controlserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/moroboxai/game-sdk-go/internal/server/lifecycle"
	"github.com/moroboxai/game-sdk-go/internal/telemetry/logger"
	"github.com/moroboxai/game-sdk-go/internal/telemetry/metric"
)

const metricName = "control"

// DefaultShutdownTimeout bounds the drain performed by Close.
const DefaultShutdownTimeout = 5 * time.Second

// Server is a loopback TCP listener with a listen/ready/close lifecycle.
type Server struct {
	host            string
	log             *slog.Logger
	metrics         *metric.Registry
	shutdownTimeout time.Duration

	state   *lifecycle.Readiness
	running atomic.Bool
	wg      sync.WaitGroup

	mu       sync.Mutex
	listener net.Listener
	addr     *net.TCPAddr
	conns    map[net.Conn]struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithHost sets the bind address. The default is 127.0.0.1.
func WithHost(host string) Option {
	return func(s *Server) {
		s.host = host
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithMetrics records connection and readiness metrics into reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = reg
	}
}

// WithShutdownTimeout bounds how long Close waits for connections to end.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// New creates a control server. It does not bind until Listen is called.
func New(opts ...Option) *Server {
	s := &Server{
		host:            lifecycle.DefaultHost,
		log:             slog.Default(),
		shutdownTimeout: DefaultShutdownTimeout,
		state:           lifecycle.New(),
		conns:           make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.Component(s.log, "controlserver")
	return s
}

// Listen binds host:port and starts accepting connections. Port 0
// selects an ephemeral port. Bind failures are returned as
// *lifecycle.BindError and leave the server not ready.
func (s *Server) Listen(port int) error {
	s.mu.Lock()
	if s.state.IsClosed() {
		s.mu.Unlock()
		return lifecycle.ErrServerClosed
	}
	if s.listener != nil {
		s.mu.Unlock()
		return lifecycle.ErrAlreadyListening
	}

	l, addr, err := lifecycle.Bind(s.host, port)
	if err != nil {
		s.mu.Unlock()
		s.log.Error("bind failed", "error", err)
		return err
	}
	s.listener = l
	s.addr = addr
	s.running.Store(true)
	s.wg.Add(1)
	s.mu.Unlock()

	go s.acceptLoop(l)

	s.log.Info("control server listening", "addr", addr.String())
	if s.state.MarkReady() {
		s.metrics.SetReady(metricName, true)
	}
	return nil
}

func (s *Server) acceptLoop(l net.Listener) {
	defer s.wg.Done()

	for {
		conn, err := l.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			s.log.Error("accept failed", "error", err)
			return
		}

		if !s.track(conn) {
			conn.Close()
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// track registers conn unless shutdown has already started.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return false
	}
	s.conns[conn] = struct{}{}
	s.metrics.ConnOpened()
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conns[conn]; ok {
		delete(s.conns, conn)
		s.metrics.ConnClosed()
	}
}

// handleConnection holds conn open without interpreting its payload.
func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		s.untrack(conn)
		conn.Close()
	}()

	s.log.Debug("control connection opened", "remote", conn.RemoteAddr().String())
	n, _ := io.Copy(io.Discard, conn)
	s.log.Debug("control connection closed", "remote", conn.RemoteAddr().String(), "bytes_discarded", n)
}

// Addr returns the bound address, or nil before Listen succeeds.
func (s *Server) Addr() *net.TCPAddr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Ready registers cb to run once the server is listening. If it is
// already listening, cb runs immediately.
func (s *Server) Ready(cb func()) {
	s.state.OnReady(cb)
}

// IsReady reports whether the server is listening.
func (s *Server) IsReady() bool {
	return s.state.IsReady()
}

// Done is closed once the server is listening and stays closed after
// Shutdown. Callers that must not treat a closed server as ready should
// use WaitReady, which returns lifecycle.ErrClosed, or check IsReady.
func (s *Server) Done() <-chan struct{} {
	return s.state.Done()
}

// WaitReady blocks until the server is listening, closed or ctx ends.
func (s *Server) WaitReady(ctx context.Context) error {
	return s.state.Wait(ctx)
}

// Close shuts the server down in the background and reports the result
// to cb, which may be nil.
func (s *Server) Close(cb func(error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		err := s.Shutdown(ctx)
		if cb != nil {
			cb(err)
		}
	}()
}

// Shutdown stops accepting, closes open connections and waits for their
// goroutines until ctx is done. A second call returns
// lifecycle.ErrServerClosed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.state.MarkClosed() {
		s.mu.Unlock()
		return lifecycle.ErrServerClosed
	}
	s.running.Store(false)

	var closeErr error
	if s.listener != nil {
		closeErr = s.listener.Close()
	}
	// There is no protocol to finish, so open connections are cut.
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.metrics.SetReady(metricName, false)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if closeErr != nil {
			s.log.Warn("control server shutdown incomplete", "error", closeErr)
		} else {
			s.log.Info("control server stopped")
		}
		return closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}
