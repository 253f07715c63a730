package watcher

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler owns the watch interval. It fires one cycle immediately, then
// one per tick, and stops when its context is done. A tick that arrives
// while a cycle is still in flight is skipped rather than stacked.
type Scheduler struct {
	interval time.Duration
	run      func(context.Context)

	// OnSkip, if set, is called for each skipped tick.
	OnSkip func()

	busy atomic.Bool
	wg   sync.WaitGroup
}

// NewScheduler builds a scheduler that invokes run on each tick.
func NewScheduler(interval time.Duration, run func(context.Context)) *Scheduler {
	return &Scheduler{interval: interval, run: run}
}

// Run blocks until ctx is done, then waits for any in-flight cycle.
func (s *Scheduler) Run(ctx context.Context) {
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if !s.busy.CompareAndSwap(false, true) {
		slog.Warn("previous cycle still running, skipping tick")
		if s.OnSkip != nil {
			s.OnSkip()
		}
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.busy.Store(false)
		s.run(ctx)
	}()
}
