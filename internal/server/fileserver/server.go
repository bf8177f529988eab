package fileserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/moroboxai/game-sdk-go/internal/server/httpserver"
	"github.com/moroboxai/game-sdk-go/internal/server/lifecycle"
	"github.com/moroboxai/game-sdk-go/internal/telemetry/logger"
	"github.com/moroboxai/game-sdk-go/internal/telemetry/metric"
)

// metricName labels this server in the readiness gauge.
const metricName = "file"

// DefaultShutdownTimeout bounds the drain performed by Close.
const DefaultShutdownTimeout = 5 * time.Second

// Server is a loopback static file server with a listen/ready/close
// lifecycle. A Server is single-use: once closed it cannot listen again.
type Server struct {
	host            string
	root            string
	custom          http.Handler
	middleware      []httpserver.Middleware
	log             *slog.Logger
	metrics         *metric.Registry
	shutdownTimeout time.Duration

	state *lifecycle.Readiness

	mu        sync.Mutex
	listener  net.Listener
	addr      *net.TCPAddr
	http      *httpserver.Server
	serveDone chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithRoot sets the directory request paths are resolved against.
// The default is the process working directory.
func WithRoot(dir string) Option {
	return func(s *Server) {
		s.root = dir
	}
}

// WithHost sets the bind address. The default is 127.0.0.1.
func WithHost(host string) Option {
	return func(s *Server) {
		s.host = host
	}
}

// WithHandler replaces the default file route.
func WithHandler(h http.Handler) Option {
	return func(s *Server) {
		s.custom = h
	}
}

// WithMiddleware appends middleware after the built-in request ID,
// recovery, audit and metrics layers.
func WithMiddleware(m ...httpserver.Middleware) Option {
	return func(s *Server) {
		s.middleware = append(s.middleware, m...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithMetrics records request and readiness metrics into reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = reg
	}
}

// WithShutdownTimeout bounds how long Close waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// New creates a file server. It does not bind until Listen is called.
func New(opts ...Option) *Server {
	s := &Server{
		host:            lifecycle.DefaultHost,
		root:            ".",
		log:             slog.Default(),
		shutdownTimeout: DefaultShutdownTimeout,
		state:           lifecycle.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.Component(s.log, "fileserver")
	return s
}

// Listen binds host:port and starts serving. Port 0 selects an
// ephemeral port. On success the server becomes ready and the ready
// callback runs before Listen returns. A bind failure is returned as a
// *lifecycle.BindError and leaves the server not ready.
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

	srv := httpserver.New(s.Handler())
	done := make(chan struct{})
	s.listener = l
	s.addr = addr
	s.http = srv
	s.serveDone = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		if err := srv.Serve(l); err != nil {
			s.log.Error("serve failed", "error", err)
		}
	}()

	s.log.Info("file server listening", "addr", addr.String(), "root", s.root)
	if s.state.MarkReady() {
		s.metrics.SetReady(metricName, true)
	}
	return nil
}

// Addr returns the bound address, or nil before Listen succeeds.
func (s *Server) Addr() *net.TCPAddr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Href returns http://<host>:<port>/<path> for the bound address.
// It returns "" when the server has not bound yet; wait for Ready first.
func (s *Server) Href(path string) string {
	addr := s.Addr()
	if addr == nil {
		return ""
	}
	return "http://" + net.JoinHostPort(addr.IP.String(), strconv.Itoa(addr.Port)) + "/" + path
}

// Ready registers cb to run once the server is listening. If it is
// already listening, cb runs immediately. Only the latest callback
// registered before readiness is kept.
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

// Handler returns the effective handler: the custom handler or the file
// route, wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.custom
	if h == nil {
		h = FileHandler(s.root)
	}

	chain := []httpserver.Middleware{
		httpserver.RequestID(),
		httpserver.Audit(s.log),
		httpserver.Metrics(s.metrics),
	}
	chain = append(chain, s.middleware...)
	// Recover sits innermost so a panic still reaches Audit and Metrics
	// as a 500.
	chain = append(chain, httpserver.Recover(s.log))
	return httpserver.Chain(h, chain...)
}

// Close shuts the server down in the background and reports the result
// to cb, which may be nil. In-flight requests get the shutdown timeout to
// finish before their connections are dropped.
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

// Shutdown closes the listener, drains in-flight requests until ctx is
// done, and moves the server to its terminal closed state. A second call
// returns lifecycle.ErrServerClosed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.state.MarkClosed() {
		s.mu.Unlock()
		return lifecycle.ErrServerClosed
	}
	srv, done := s.http, s.serveDone
	s.mu.Unlock()

	s.metrics.SetReady(metricName, false)
	if srv == nil {
		return nil
	}

	err := srv.Shutdown(ctx)
	select {
	case <-done:
	case <-ctx.Done():
	}

	if err != nil {
		s.log.Warn("file server shutdown incomplete", "error", err)
	} else {
		s.log.Info("file server stopped")
	}
	return err
}
