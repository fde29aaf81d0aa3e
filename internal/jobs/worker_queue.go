package jobs

import (
	"time"

	"github.com/vytor/lexiflash/internal/srs"
	"github.com/vytor/lexiflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool      *worker.Pool
	ratings   worker.RatingPruner
	limits    worker.Sweeper
	retention time.Duration
	clock     srs.Nower
}

// NewWorkerQueue creates a new WorkerQueue implementation.
// A nil limits counter turns sweeping into a no-op.
func NewWorkerQueue(
	pool *worker.Pool,
	ratings worker.RatingPruner,
	limits worker.Sweeper,
	retention time.Duration,
	clock srs.Nower,
) JobQueue {
	return &WorkerQueue{
		pool:      pool,
		ratings:   ratings,
		limits:    limits,
		retention: retention,
		clock:     clock,
	}
}

func (q *WorkerQueue) EnqueuePruneRatings() error {
	return q.pool.Submit(&worker.PruneRatingsJob{
		Ratings:   q.ratings,
		Retention: q.retention,
		Clock:     q.clock,
	})
}

func (q *WorkerQueue) EnqueueSweepRateLimits() error {
	if q.limits == nil {
		return nil
	}
	return q.pool.Submit(&worker.SweepRateLimitJob{
		Store: q.limits,
		Clock: q.clock,
	})
}
