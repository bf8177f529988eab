package lifecycle

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// DefaultHost is the loopback address the local servers bind to.
const DefaultHost = "127.0.0.1"

// MaxPort is the largest valid TCP port.
const MaxPort = 65535

var (
	// ErrAlreadyListening is returned by a second Listen on the same server.
	ErrAlreadyListening = errors.New("server already listening")

	// ErrServerClosed is returned by Listen after the server was closed,
	// and by a repeated close.
	ErrServerClosed = errors.New("server closed")

	// ErrInvalidPort is returned for ports outside 0..65535.
	ErrInvalidPort = errors.New("invalid port")
)

// BindError reports a failure to bind the listener.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Bind opens a TCP listener on host:port. Port 0 asks the OS for an
// ephemeral port; the returned address carries the port actually bound.
func Bind(host string, port int) (net.Listener, *net.TCPAddr, error) {
	if host == "" {
		host = DefaultHost
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	if port < 0 || port > MaxPort {
		return nil, nil, &BindError{Addr: addr, Err: ErrInvalidPort}
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, &BindError{Addr: addr, Err: err}
	}

	tcpAddr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		l.Close()
		return nil, nil, &BindError{Addr: addr, Err: fmt.Errorf("unexpected address type %T", l.Addr())}
	}
	return l, tcpAddr, nil
}
