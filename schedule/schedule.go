// Package schedule runs the daily reset check periodically.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
)

// JobName is the name of the daily reset job.
const JobName = "daily-reset"

// DefaultInterval is how often the daily reset is checked.
const DefaultInterval = time.Minute

// Resetter performs the daily reset check, see dropdeck.State.
type Resetter interface {
	ResetIfNewDay(ctx context.Context) (bool, error)
}

// Scheduler periodically calls a Resetter.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       log.FieldLogger
}

// Start creates and starts a scheduler that checks r every interval,
// starting right away. Runs never overlap: a run still going when the next
// is due delays it.
func Start(r Resetter, interval time.Duration, logger log.FieldLogger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid reset interval %v: must be positive", interval)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("cannot create scheduler: %w", err)
	}
	logger = logger.WithField("job", JobName)

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { run(r, interval, logger) }),
		gocron.WithName(JobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		s.Shutdown()
		return nil, fmt.Errorf("cannot register job %s: %w", JobName, err)
	}
	s.Start()
	logger.WithField("interval", interval).Debug("scheduler started")
	return &Scheduler{scheduler: s, log: logger}, nil
}

// run is one execution of the job, bounded by the interval.
func run(r Resetter, timeout time.Duration, logger log.FieldLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	done, err := r.ResetIfNewDay(ctx)
	switch {
	case err != nil:
		logger.WithError(err).Error("daily reset check failed")
	case done:
		logger.Info("tasks cleared for the new day")
	}
}

// Stop shuts the scheduler down, waiting for a running check to finish.
func (s *Scheduler) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("cannot shutdown scheduler: %w", err)
	}
	s.log.Debug("scheduler stopped")
	return nil
}
