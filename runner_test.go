package formdata

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// httptest servers in client tests park idle keep-alive readers.
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
	)
}

func TestDefaultRunner(t *testing.T) {
	runner := DefaultRunner(context.Background())
	if runner == nil {
		t.Fatal("DefaultRunner returned nil")
	}
	if _, ok := runner.(*errGroupRunner); !ok {
		t.Errorf("DefaultRunner should return *errGroupRunner, got %T", runner)
	}
}

func TestErrGroupRunner_Success(t *testing.T) {
	runner := DefaultRunner(context.Background())

	var counter int32
	for i := 0; i < 5; i++ {
		runner.Go(func() error {
			atomic.AddInt32(&counter, 1)
			return nil
		})
	}

	if err := runner.Wait(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if got := atomic.LoadInt32(&counter); got != 5 {
		t.Errorf("Expected counter to be 5, got %d", got)
	}
}

func TestErrGroupRunner_FirstErrorCancels(t *testing.T) {
	runner := newErrGroupRunner(context.Background(), 4)
	expectedErr := errors.New("load failed")

	runner.Go(func() error { return expectedErr })
	runner.Go(func() error {
		select {
		case <-runner.ctx.Done():
			return nil
		case <-time.After(5 * time.Second):
			return errors.New("derived context was not cancelled")
		}
	})

	if err := runner.Wait(); err != expectedErr {
		t.Errorf("Expected %v, got %v", expectedErr, err)
	}
}

func TestLimitedRunner_BoundsConcurrency(t *testing.T) {
	runner := NewLimitedRunner(context.Background(), 2)

	var active, peak int32
	for i := 0; i < 10; i++ {
		runner.Go(func() error {
			n := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return nil
		})
	}

	if err := runner.Wait(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Errorf("Expected at most 2 concurrent tasks, saw %d", p)
	}
}

func TestNewErrGroupRunner_ClampsLimit(t *testing.T) {
	runner := newErrGroupRunner(context.Background(), 0)
	runner.Go(func() error { return nil })
	if err := runner.Wait(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestErrGroupRunner_EmptyRunner(t *testing.T) {
	if err := DefaultRunner(context.Background()).Wait(); err != nil {
		t.Errorf("Expected no error for empty runner, got %v", err)
	}
}

func BenchmarkErrGroupRunner(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		runner := DefaultRunner(ctx)
		runner.Go(func() error { return nil })
		_ = runner.Wait()
	}
}
