package scheduler

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs one task repeatedly on a fixed interval. Services own
// their scheduler: the backfill engine drives its periodic re-runs
// through one, the snapshot service its cache warmer.
type Scheduler struct {
	interval time.Duration
	task     func(context.Context)

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    sync.WaitGroup
}

// New creates a scheduler for the given task; nothing runs until Start
func New(interval time.Duration, task func(context.Context)) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
	}
}

// Start launches the ticker goroutine. With runNow the task executes
// once before the first tick, which warmers use to avoid serving an
// empty cache for a full interval. Starting a running scheduler is a
// no-op.
func (s *Scheduler) Start(ctx context.Context, runNow bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.done.Add(1)
	go s.loop(ctx, runNow)
}

func (s *Scheduler) loop(ctx context.Context, runNow bool) {
	defer s.done.Done()

	if runNow {
		s.task(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.task(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Stop cancels the loop and waits for an in-flight task to finish, so
// a stopped scheduler never touches its task's dependencies again
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.done.Wait()
	s.running = false
}

// IsRunning reports whether the loop is active
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
