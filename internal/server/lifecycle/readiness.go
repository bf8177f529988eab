package lifecycle

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Wait when the server was closed before it became ready.
var ErrClosed = errors.New("lifecycle: closed")

// Readiness holds the ready flag, the pending ready callback and the
// broadcast channels for a single server instance.
type Readiness struct {
	mu      sync.Mutex
	ready   bool
	closed  bool
	pending func()

	readyCh  chan struct{}
	closedCh chan struct{}
}

// New creates a Readiness in the not-ready state.
func New() *Readiness {
	return &Readiness{
		readyCh:  make(chan struct{}),
		closedCh: make(chan struct{}),
	}
}

// OnReady registers cb to run once the server is ready.
//
// If the server is already ready, cb runs synchronously before OnReady
// returns. Otherwise cb replaces any callback registered earlier. After
// MarkClosed, cb is dropped.
func (r *Readiness) OnReady(cb func()) {
	if cb == nil {
		return
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if !r.ready {
		r.pending = cb
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	cb()
}

// MarkReady flips the state to ready and fires the pending callback.
// It returns false if the state was already ready or closed.
func (r *Readiness) MarkReady() bool {
	r.mu.Lock()
	if r.ready || r.closed {
		r.mu.Unlock()
		return false
	}
	r.ready = true
	cb := r.pending
	r.pending = nil
	close(r.readyCh)
	r.mu.Unlock()

	// Run outside the lock so the callback may call back into the server.
	if cb != nil {
		cb()
	}
	return true
}

// MarkClosed resets the ready flag and enters the terminal closed state.
// It returns false if the state was already closed.
func (r *Readiness) MarkClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}
	r.ready = false
	r.closed = true
	r.pending = nil
	close(r.closedCh)
	return true
}

// IsReady reports whether the server is currently ready.
func (r *Readiness) IsReady() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// IsClosed reports whether the server has been closed.
func (r *Readiness) IsClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Done returns a channel that is closed once the server becomes ready.
// It is never reopened, so it stays closed after MarkClosed even though
// IsReady then reports false. Use Wait to tell a ready server from a
// closed one.
func (r *Readiness) Done() <-chan struct{} {
	return r.readyCh
}

// Wait blocks until the server is ready, closed, or ctx is done.
// A closed server always yields ErrClosed, even if it was ready before.
func (r *Readiness) Wait(ctx context.Context) error {
	select {
	case <-r.closedCh:
		return ErrClosed
	default:
	}
	select {
	case <-r.readyCh:
		return nil
	default:
	}

	select {
	case <-r.readyCh:
		return nil
	case <-r.closedCh:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
