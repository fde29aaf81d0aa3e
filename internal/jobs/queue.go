package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueuePruneRatings() error
	EnqueueSweepRateLimits() error
}
