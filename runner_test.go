package textquiz

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultRunner(t *testing.T) {
	runner := DefaultRunner(context.Background())
	if runner == nil {
		t.Fatal("DefaultRunner returned nil")
	}
	if _, ok := runner.(*errGroupRunner); !ok {
		t.Errorf("DefaultRunner should return *errGroupRunner, got %T", runner)
	}
}

func TestErrGroupRunner_RunsAllTasks(t *testing.T) {
	runner := DefaultRunner(context.Background())

	var counter int32
	for i := 0; i < 5; i++ {
		runner.Go(func() error {
			atomic.AddInt32(&counter, 1)
			return nil
		})
	}

	if err := runner.Wait(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if got := atomic.LoadInt32(&counter); got != 5 {
		t.Errorf("expected 5 tasks to run, got %d", got)
	}
}

func TestErrGroupRunner_PropagatesFirstError(t *testing.T) {
	runner := DefaultRunner(context.Background())
	boom := errors.New("boom")

	runner.Go(func() error {
		time.Sleep(10 * time.Millisecond)
		return nil
	})
	runner.Go(func() error { return boom })

	if err := runner.Wait(); !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}
}

func TestNewLimitedRunner_BoundsConcurrency(t *testing.T) {
	const limit = 2
	runner := NewLimitedRunner(context.Background(), limit)

	var active, peak int32
	for i := 0; i < 20; i++ {
		runner.Go(func() error {
			n := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			return nil
		})
	}

	if err := runner.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := atomic.LoadInt32(&peak); p > limit {
		t.Errorf("expected at most %d concurrent tasks, saw %d", limit, p)
	}
}

func TestErrGroupRunner_EmptyWait(t *testing.T) {
	runner := DefaultRunner(context.Background())
	if err := runner.Wait(); err != nil {
		t.Errorf("expected no error for empty runner, got %v", err)
	}
}
