package lifecycle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	r := New()
	if r.IsReady() {
		t.Error("new Readiness should not be ready")
	}
	if r.IsClosed() {
		t.Error("new Readiness should not be closed")
	}
	select {
	case <-r.Done():
		t.Error("Done channel should not be closed initially")
	default:
	}
}

func TestReadiness_OnReadyBeforeReady(t *testing.T) {
	r := New()

	var calls atomic.Int32
	r.OnReady(func() { calls.Add(1) })

	if calls.Load() != 0 {
		t.Fatal("callback fired before MarkReady")
	}

	if !r.MarkReady() {
		t.Fatal("MarkReady() = false, want true")
	}
	if calls.Load() != 1 {
		t.Errorf("callback calls = %d, want 1", calls.Load())
	}

	// A second MarkReady is a no-op and must not re-fire.
	if r.MarkReady() {
		t.Error("second MarkReady() = true, want false")
	}
	if calls.Load() != 1 {
		t.Errorf("callback calls after second MarkReady = %d, want 1", calls.Load())
	}
}

func TestReadiness_OnReadyAfterReadyIsSynchronous(t *testing.T) {
	r := New()
	r.MarkReady()

	fired := false
	r.OnReady(func() { fired = true })

	// No synchronisation needed: the callback must have run on this goroutine.
	if !fired {
		t.Error("callback registered after ready should fire synchronously")
	}
}

func TestReadiness_ReplaceSemantics(t *testing.T) {
	r := New()

	var first, second atomic.Int32
	r.OnReady(func() { first.Add(1) })
	r.OnReady(func() { second.Add(1) })

	r.MarkReady()

	if first.Load() != 0 {
		t.Errorf("replaced callback fired %d times, want 0", first.Load())
	}
	if second.Load() != 1 {
		t.Errorf("latest callback fired %d times, want 1", second.Load())
	}
}

func TestReadiness_NilCallback(t *testing.T) {
	r := New()
	r.OnReady(nil)
	r.MarkReady()
	r.OnReady(nil)
}

func TestReadiness_CallbackCanReenter(t *testing.T) {
	r := New()

	nested := false
	r.OnReady(func() {
		// Registering from inside the ready callback must not deadlock.
		r.OnReady(func() { nested = true })
	})
	r.MarkReady()

	if !nested {
		t.Error("nested registration from ready callback did not fire")
	}
}

func TestReadiness_MarkClosed(t *testing.T) {
	r := New()
	r.MarkReady()

	if !r.MarkClosed() {
		t.Fatal("MarkClosed() = false, want true")
	}
	if r.IsReady() {
		t.Error("closed Readiness should not be ready")
	}
	if !r.IsClosed() {
		t.Error("IsClosed() = false after MarkClosed")
	}
	if r.MarkClosed() {
		t.Error("second MarkClosed() = true, want false")
	}

	fired := false
	r.OnReady(func() { fired = true })
	if fired {
		t.Error("callback registered after close must never fire")
	}

	if r.MarkReady() {
		t.Error("MarkReady() after close = true, want false")
	}
}

func TestReadiness_DoneStaysClosedAfterClose(t *testing.T) {
	r := New()
	r.MarkReady()
	r.MarkClosed()

	select {
	case <-r.Done():
	default:
		t.Fatal("Done() should stay closed after MarkClosed")
	}
	if r.IsReady() {
		t.Error("IsReady() = true after MarkClosed")
	}
	if err := r.Wait(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Wait() = %v, want ErrClosed", err)
	}
}

func TestReadiness_ClosedBeforeReadyDropsPending(t *testing.T) {
	r := New()

	fired := false
	r.OnReady(func() { fired = true })
	r.MarkClosed()
	r.MarkReady()

	if fired {
		t.Error("pending callback fired after close")
	}
}

func TestReadiness_DoneBroadcast(t *testing.T) {
	r := New()

	const waiters = 8
	var wg sync.WaitGroup
	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			defer wg.Done()
			<-r.Done()
		}()
	}

	r.MarkReady()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("not all waiters observed readiness")
	}
}

func TestReadiness_Wait(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		r := New()
		go r.MarkReady()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.Wait(ctx); err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	})

	t.Run("closed", func(t *testing.T) {
		r := New()
		go r.MarkClosed()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.Wait(ctx); !errors.Is(err, ErrClosed) {
			t.Errorf("Wait() error = %v, want ErrClosed", err)
		}
	})

	t.Run("closed after ready", func(t *testing.T) {
		r := New()
		r.MarkReady()
		r.MarkClosed()

		if err := r.Wait(context.Background()); !errors.Is(err, ErrClosed) {
			t.Errorf("Wait() error = %v, want ErrClosed", err)
		}
	})

	t.Run("context", func(t *testing.T) {
		r := New()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := r.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Wait() error = %v, want DeadlineExceeded", err)
		}
	})
}
