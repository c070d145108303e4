// Package bot hosts the background side of the assistant: a single ticker
// that drives every handler's periodic task.
package bot

import (
	"context"
	"time"

	"github.com/dbrandt/homebot/pkg/logger"
)

// PeriodicTask is one handler's background work, invoked once per tick.
type PeriodicTask struct {
	Key string
	Run func(ctx context.Context, now time.Time)
}

// RunPeriodicTasks runs all tasks once per interval until the context is
// canceled. A panicking task is logged and does not stop the other tasks or
// later ticks; shutdown does not wait out a full interval.
func RunPeriodicTasks(ctx context.Context, interval time.Duration, tasks []PeriodicTask) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("periodic task loop stopped")
			return
		case now := <-ticker.C:
			runTick(ctx, tasks, now)
		}
	}
}

func runTick(ctx context.Context, tasks []PeriodicTask, now time.Time) {
	for _, task := range tasks {
		runTask(ctx, task, now)
	}
}

func runTask(ctx context.Context, task PeriodicTask, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("periodic task panicked", "task", task.Key, "panic", r)
		}
	}()
	task.Run(ctx, now)
}
