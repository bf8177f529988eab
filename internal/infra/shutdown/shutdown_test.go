package shutdown

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"
	"time"
)

func waitAsync(h *Handler) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Wait()
	}()
	return errCh
}

func TestNewHandler(t *testing.T) {
	h := NewHandler(5 * time.Second)
	if h == nil {
		t.Fatal("NewHandler returned nil")
	}
	if h.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", h.timeout)
	}
	if h.hooks == nil {
		t.Error("hooks should be initialized")
	}

	select {
	case <-h.Done():
		t.Error("Done channel should not be closed initially")
	default:
	}
}

func TestHandler_Trigger_ReverseOrder(t *testing.T) {
	h := NewHandler(5 * time.Second)

	var mu sync.Mutex
	callOrder := make([]int, 0)
	for i := 1; i <= 3; i++ {
		id := i
		h.OnShutdown(func(ctx context.Context) error {
			mu.Lock()
			callOrder = append(callOrder, id)
			mu.Unlock()
			return nil
		})
	}

	errCh := waitAsync(h)
	h.Trigger()
	h.Trigger() // idempotent

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete in time")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(callOrder) != 3 || callOrder[0] != 3 || callOrder[1] != 2 || callOrder[2] != 1 {
		t.Errorf("hooks called in wrong order: %v, want [3 2 1]", callOrder)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done channel should be closed after Wait completes")
	}
}

func TestHandler_Wait_Signal(t *testing.T) {
	h := NewHandler(5 * time.Second)

	called := make(chan struct{}, 1)
	h.OnShutdown(func(ctx context.Context) error {
		called <- struct{}{}
		return nil
	})

	errCh := waitAsync(h)

	// Give Wait time to install the signal handler.
	time.Sleep(50 * time.Millisecond)
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("kill: %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete in time")
	}

	select {
	case <-called:
	default:
		t.Error("hook was not called")
	}
}

func TestHandler_HookErrorsJoined(t *testing.T) {
	h := NewHandler(5 * time.Second)

	errA := errors.New("close file server")
	errB := errors.New("close control server")

	ran := 0
	h.OnShutdown(func(ctx context.Context) error { ran++; return errA })
	h.OnShutdown(func(ctx context.Context) error { ran++; return nil })
	h.OnShutdown(func(ctx context.Context) error { ran++; return errB })

	errCh := waitAsync(h)
	h.Trigger()

	err := <-errCh
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Wait() = %v, want both hook errors", err)
	}
	if ran != 3 {
		t.Errorf("hooks run = %d, want 3", ran)
	}
}

func TestHandler_HookSeesDeadline(t *testing.T) {
	h := NewHandler(30 * time.Millisecond)

	h.OnShutdown(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	errCh := waitAsync(h)
	h.Trigger()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Wait() = %v, want DeadlineExceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hook context never expired")
	}
}

func TestHandler_ConcurrentOnShutdown(t *testing.T) {
	h := NewHandler(5 * time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.OnShutdown(func(ctx context.Context) error { return nil })
		}()
	}
	wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.hooks) != 10 {
		t.Errorf("expected 10 hooks, got %d", len(h.hooks))
	}
}

func TestHandler_ShutdownRunsHooksOnce(t *testing.T) {
	h := NewHandler(time.Second)

	calls := 0
	h.OnShutdown(func(context.Context) error {
		calls++
		return errors.New("listener already closed")
	})

	err1 := h.Shutdown()
	h.Trigger()
	err2 := h.Wait()

	if calls != 1 {
		t.Errorf("hook ran %d times, want 1", calls)
	}
	if err1 == nil || err1 != err2 {
		t.Errorf("Shutdown() = %v, Wait() = %v, want the same error", err1, err2)
	}
	select {
	case <-h.Done():
	default:
		t.Error("Done() should be closed after Shutdown")
	}
}
