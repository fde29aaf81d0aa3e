// Package cron triggers periodic maintenance jobs.
package cron

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/vytor/lexiflash/internal/jobs"
	"github.com/vytor/lexiflash/internal/logger"
)

// DefaultPruneAt is the UTC time of day rating history is pruned.
const DefaultPruneAt = "03:30"

// Scheduler enqueues maintenance jobs on a fixed schedule.
type Scheduler struct {
	scheduler *gocron.Scheduler
	queue     jobs.JobQueue
	pruneAt   string
	log       *logger.Logger
}

// New creates a scheduler in UTC. An empty pruneAt uses DefaultPruneAt.
func New(queue jobs.JobQueue, pruneAt string) *Scheduler {
	if pruneAt == "" {
		pruneAt = DefaultPruneAt
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		queue:     queue,
		pruneAt:   pruneAt,
		log:       logger.Default().WithPrefix("cron"),
	}
}

// Start registers the jobs and runs the scheduler in the background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.pruneAt).Do(s.pruneRatings); err != nil {
		return fmt.Errorf("schedule prune_ratings: %w", err)
	}
	if _, err := s.scheduler.Every(1).Minute().Do(s.sweepRateLimits); err != nil {
		return fmt.Errorf("schedule sweep_rate_limits: %w", err)
	}
	s.scheduler.StartAsync()
	s.log.Info("scheduler started: prune at %s UTC, sweep every minute", s.pruneAt)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

// Jobs reports how many jobs are registered.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}

func (s *Scheduler) pruneRatings() {
	if err := s.queue.EnqueuePruneRatings(); err != nil {
		s.log.Warn("failed to enqueue prune_ratings: %v", err)
	}
}

func (s *Scheduler) sweepRateLimits() {
	if err := s.queue.EnqueueSweepRateLimits(); err != nil {
		s.log.Warn("failed to enqueue sweep_rate_limits: %v", err)
	}
}
