// Package worker runs background jobs on a fixed-size goroutine pool.
package worker

import (
	"context"
	"sync"

	"github.com/jynba/worldline/internal/logger"
)

// Job is a unit of background work.
type Job interface {
	Process(ctx context.Context) error
}

// Pool executes enqueued jobs on a fixed number of workers.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
}

// NewPool creates a pool with the given worker count and queue capacity.
func NewPool(workers, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			// Each job gets its own request id so its log lines correlate.
			ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
			if err := job.Process(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgJobFailed, "error", err)
			}
		case <-p.quit:
			return
		}
	}
}

// Enqueue submits a job. A full queue drops the job with a warning rather
// than blocking the caller; periodic jobs will come around again.
func (p *Pool) Enqueue(job Job) {
	select {
	case p.jobQueue <- job:
	default:
		logger.FromContext(context.Background()).Warn(LogMsgQueueFull)
	}
}

// Stop signals the workers and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
	logger.FromContext(context.Background()).Info(LogMsgPoolStopped)
}
