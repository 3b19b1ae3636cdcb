package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/robfig/cron/v3"
)

// Job is one complete run. Each call captures its own run-start time.
type Job func(ctx context.Context) error

// Scheduler repeats a Job on a cron schedule. A tick that fires while the
// previous run is still going is skipped, so runs never overlap.
type Scheduler struct {
	spec string
	job  Job
	cron *cron.Cron
	mu   sync.Mutex
	runs int
}

func New(spec string, job Job) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	return &Scheduler{
		spec: spec,
		job:  job,
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}, nil
}

// Run blocks until ctx is done, then waits for an in-flight run to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.fire(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule run: %w", err)
	}

	s.cron.Start()
	if next := s.NextRun(); next != nil {
		logger.Info("scheduler started (%s), next run at %s", s.spec, next.Format(time.RFC3339))
	}

	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	logger.Info("scheduler stopped after %d runs", s.Runs())
	return nil
}

// fire starts a run unless ctx is already done. The job gets a context
// detached from ctx's cancellation, so stopping never interrupts a run
// halfway through its remote commands.
func (s *Scheduler) fire(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.tick(context.WithoutCancel(ctx))
}

func (s *Scheduler) tick(ctx context.Context) {
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	if err := s.job(ctx); err != nil {
		logger.LogError("scheduled run failed: %v", err)
	}
	if next := s.NextRun(); next != nil {
		logger.Debug("next run at %s", next.Format(time.RFC3339))
	}
}

// NextRun returns the next activation time once the schedule is registered.
func (s *Scheduler) NextRun() *time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 || entries[0].Next.IsZero() {
		return nil
	}
	next := entries[0].Next
	return &next
}

// Runs reports how many ticks started a job.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}
