package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	portssvc "github.com/subscmng/subscmng_backend/internal/core/ports/services"
)

// Scheduler runs the expiration notification check on an approximately-daily
// cadence. It is the in-process stand-in for a host job scheduler: the job
// either completes or its failure is logged for the next run, with no retry
// of its own.
type Scheduler struct {
	cron     *cron.Cron
	checkSvc portssvc.ExpirationCheckSvc
	schedule string
	logger   *slog.Logger
}

// NewScheduler creates a new scheduler. schedule is a cron expression such as
// "0 9 * * *".
func NewScheduler(checkSvc portssvc.ExpirationCheckSvc, schedule string, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:     c,
		checkSvc: checkSvc,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the notification check job and starts the cron loop.
// Registration replaces whatever an earlier process had scheduled, since the
// cron state lives and dies with the process.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runExpirationCheck); err != nil {
		return fmt.Errorf("failed to schedule expiration notification check: %w", err)
	}
	s.logger.Info("scheduled expiration notification check", "schedule", s.schedule)

	s.cron.Start()
	return nil
}

// Stop gracefully stops the cron loop. The returned context is done once any
// in-flight job has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runExpirationCheck() {
	s.logger.Info("starting expiration notification check")

	if err := s.checkSvc.CheckExpiringSubscriptions(context.Background()); err != nil {
		s.logger.Error("expiration notification check failed", "error", err)
		return
	}

	s.logger.Info("expiration notification check finished")
}
