// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/robfig/cron/v3"
)

type taskFn func(ctx context.Context) error

// Scheduler wraps a cron runner. Every job gets its own context, which is cancelled
// when the scheduler stops, and a panic in a job is logged instead of crashing the
// process.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// New creates a scheduler evaluating cron expressions in loc. timeout bounds a single
// job run; zero means no limit.
func New(loc *time.Location, timeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
	}
}

// NewCrontabJob registers fn under a five-field cron expression.
func (s *Scheduler) NewCrontabJob(name string, fn taskFn, crontab string) error {
	if _, err := s.cron.AddFunc(crontab, s.taskWithRecover(fn, name)); err != nil {
		slog.Error("Scheduler creating job error", slog.String("jobName", name), slog.Any("error", err))
		return fmt.Errorf("schedule job %q: %w", name, err)
	}
	return nil
}

// RunNow runs fn once in the calling goroutine with the same logging and recovery as
// a scheduled run.
func (s *Scheduler) RunNow(name string, fn taskFn) {
	s.taskWithRecover(fn, name)()
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) taskWithRecover(fn taskFn, jobName string) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error(
					"Panic recovered in scheduler job",
					slog.String("jobName", jobName),
					slog.Any("panic", r),
					slog.String("stacktrace", string(debug.Stack())),
				)
			}
		}()

		ctx := s.ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		slog.Info("job start", slog.String("jobName", jobName))
		start := time.Now()

		err := fn(ctx)
		if err != nil {
			slog.Error("job failed", slog.String("jobName", jobName), slog.Any("error", err))
		} else {
			slog.Info("job completed", slog.String("jobName", jobName), slog.Duration("duration", time.Since(start)))
		}
	}
}
