package connection

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// DefaultDialTimeout bounds a single Ping.
const DefaultDialTimeout = 3 * time.Second

// ControlClient checks that a control server accepts connections.
type ControlClient struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

// NewControlClient creates a client for addr. A bare port such as "7070"
// is dialed on 127.0.0.1.
func NewControlClient(addr string, timeout time.Duration) *ControlClient {
	if !strings.Contains(addr, ":") {
		addr = net.JoinHostPort("127.0.0.1", addr)
	}
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	return &ControlClient{addr: addr, timeout: timeout}
}

// Addr returns the dialed address.
func (c *ControlClient) Addr() string {
	return c.addr
}

// Ping opens and closes one TCP connection and returns the time taken
// to connect. The control channel has no protocol, so nothing is sent.
func (c *ControlClient) Ping(ctx context.Context) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return 0, fmt.Errorf("dial %s: %w", c.addr, err)
	}
	elapsed := time.Since(start)

	if err := conn.Close(); err != nil {
		return elapsed, fmt.Errorf("close %s: %w", c.addr, err)
	}
	return elapsed, nil
}
