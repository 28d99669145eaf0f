// Package scheduler runs the background maintenance jobs: statistics
// snapshot refresh, quarantine cleanup, and nightly backups.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler wraps robfig/cron with logging and named jobs. Job functions are
// plain func() error so they stay directly testable without cron.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates a scheduler. Jobs run sequentially per entry; overlapping runs
// of the same job are skipped.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// AddJob schedules fn under the given cron spec (descriptors like "@hourly"
// allowed). An empty spec disables the job; this is how config switches
// individual jobs off.
func (s *Scheduler) AddJob(name, spec string, fn func() error) error {
	if spec == "" {
		s.log.Info().Str("job", name).Msg("Job disabled (no schedule)")
		return nil
	}

	log := s.log.With().Str("job", name).Logger()
	_, err := s.cron.AddFunc(spec, func() {
		log.Debug().Msg("Job starting")
		if err := fn(); err != nil {
			log.Error().Err(err).Msg("Job failed")
			return
		}
		log.Debug().Msg("Job finished")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s with spec %q: %w", name, spec, err)
	}
	log.Info().Str("schedule", spec).Msg("Job scheduled")
	return nil
}

// Start begins running scheduled jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
