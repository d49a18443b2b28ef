// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner. Specs use the standard five-field format, evaluated in UTC.
// A job that is still running when its next tick fires is skipped for that tick.
type Scheduler struct {
	cron    *cron.Cron
	logger  logrus.FieldLogger
	timeout time.Duration
}

// New creates a Scheduler. Each job run gets a context that expires after timeout.
func New(logger logrus.FieldLogger, timeout time.Duration) *Scheduler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		logger:  logger,
		timeout: timeout,
	}
}

// Add registers job under name. An empty spec leaves the job disabled and is not an error.
func (s *Scheduler) Add(name, spec string, job Job) error {
	if spec == "" {
		s.logger.WithField("job", name).Info("scheduled job disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(spec, s.wrap(name, job)); err != nil {
		return fmt.Errorf("failed to schedule %s (%q): %w", name, spec, err)
	}

	s.logger.WithFields(logrus.Fields{"job": name, "schedule": spec}).Info("scheduled job registered")
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and returns a context that is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) wrap(name string, job Job) func() {
	return func() {
		ctx := context.Background()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		start := time.Now()
		entry := s.logger.WithField("job", name)
		if err := job(ctx); err != nil {
			entry.WithError(err).Error("scheduled job failed")
			return
		}
		entry.WithField("duration", time.Since(start).String()).Debug("scheduled job finished")
	}
}
