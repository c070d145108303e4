package bot

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunTickIsolatesPanics(t *testing.T) {
	var ran atomic.Int32
	tasks := []PeriodicTask{
		{Key: "broken", Run: func(ctx context.Context, now time.Time) {
			panic("boom")
		}},
		{Key: "healthy", Run: func(ctx context.Context, now time.Time) {
			ran.Add(1)
		}},
	}

	runTick(context.Background(), tasks, time.Now())

	if ran.Load() != 1 {
		t.Errorf("healthy task ran %d times, want 1", ran.Load())
	}
}

func TestRunPeriodicTasksStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32
	tasks := []PeriodicTask{
		{Key: "counter", Run: func(ctx context.Context, now time.Time) {
			ticks.Add(1)
		}},
	}

	done := make(chan struct{})
	go func() {
		RunPeriodicTasks(ctx, 5*time.Millisecond, tasks)
		close(done)
	}()

	// Let a few ticks happen, then cancel.
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancellation")
	}
	if ticks.Load() == 0 {
		t.Error("expected at least one tick before cancellation")
	}
}
