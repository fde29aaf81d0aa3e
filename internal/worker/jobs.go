package worker

import (
	"context"
	"time"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/srs"
)

// RatingPruner deletes rating events older than cutoff.
// Declared here so the worker package does not import repository implementations.
type RatingPruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper drops expired entries and reports how many went.
type Sweeper interface {
	Sweep(now time.Time) int
}

// PruneRatingsJob trims rating_history to the retention window.
type PruneRatingsJob struct {
	Ratings   RatingPruner
	Retention time.Duration
	Clock     srs.Nower
}

func (j *PruneRatingsJob) Name() string { return "prune_ratings" }

func (j *PruneRatingsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	cutoff := j.Clock.Now().Add(-j.Retention)
	n, err := j.Ratings.PruneBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	log.Info("pruned %d rating events before %s", n, cutoff.Format(time.RFC3339))
	return nil
}

// SweepRateLimitJob drops expired rate-limit counters.
type SweepRateLimitJob struct {
	Store Sweeper
	Clock srs.Nower
}

func (j *SweepRateLimitJob) Name() string { return "sweep_rate_limits" }

func (j *SweepRateLimitJob) Run(ctx context.Context) error {
	n := j.Store.Sweep(j.Clock.Now())
	logger.FromContext(ctx).Debug("swept %d rate-limit counters", n)
	return nil
}
