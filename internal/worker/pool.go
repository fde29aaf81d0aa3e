package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/lexiflash/internal/logger"
)

var (
	ErrQueueFull = errors.New("worker: backlog full")
	ErrStopped   = errors.New("worker: pool stopped")
)

// Job is a unit of maintenance work run by the pool.
type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs submitted jobs with at most size in flight. A job error is
// logged and never cancels the others.
type Pool struct {
	size   int
	jobs   chan Job
	group  *errgroup.Group
	done   chan struct{}
	cancel context.CancelFunc
	log    *logger.Logger

	mu      sync.RWMutex
	stopped bool
}

func NewPool(workers, queueSize int) *Pool {
	p := &Pool{
		size: max(workers, 1),
		jobs: make(chan Job, max(queueSize, 1)),
		log:  logger.Default().WithPrefix("worker"),
	}
	p.log.Debug("pool sized: workers=%d backlog=%d", p.size, cap(p.jobs))
	return p
}

// Start begins dispatching. Jobs stop being picked up when ctx ends or Stop
// is called.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.group = new(errgroup.Group)
	p.group.SetLimit(p.size)
	p.done = make(chan struct{})
	go p.dispatch(ctx)
	p.log.Info("dispatching with %d workers", p.size)
}

func (p *Pool) dispatch(ctx context.Context) {
	defer close(p.done)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			// Go blocks while size jobs are running.
			p.group.Go(func() error {
				p.run(ctx, p.log, job)
				return nil
			})
		}
	}
}

func (p *Pool) run(ctx context.Context, log *logger.Logger, job Job) {
	jobLog := log.WithField("job", job.Name())
	jobLog.Debug("starting job")
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			jobLog.Error("job panicked after %v: %v", time.Since(start), r)
		}
	}()

	if err := job.Run(logger.NewContext(ctx, jobLog)); err != nil {
		jobLog.Error("job failed after %v: %v", time.Since(start), err)
		return
	}
	jobLog.Info("job completed in %v", time.Since(start))
}

// Stop drains nothing: pending jobs are dropped once the context is cancelled.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		<-p.done
		_ = p.group.Wait()
	}
	p.log.Info("workers stopped")
}

// Submit enqueues job without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- job:
		p.log.Debug("submitted job: %s", job.Name())
		return nil
	default:
		p.log.Warn("queue full, dropping job: %s", job.Name())
		return ErrQueueFull
	}
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
