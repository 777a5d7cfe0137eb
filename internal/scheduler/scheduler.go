// Package scheduler drives periodic jobs (the one-second game tick and the
// tracker poll) through the worker pool.
package scheduler

import (
	"sync"
	"time"

	"github.com/jynba/worldline/internal/worker"
)

// Scheduler enqueues jobs at fixed intervals.
type Scheduler struct {
	pool *worker.Pool
	quit chan struct{}
	wg   sync.WaitGroup
}

// New creates a scheduler backed by the given pool.
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues the job every interval until Stop. The ticker goroutine
// starts immediately.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.pool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// ScheduleNow runs the job once immediately, then every interval. Used for
// the tracker poll so startup does not wait a full poll period.
func (s *Scheduler) ScheduleNow(interval time.Duration, job worker.Job) {
	s.pool.Enqueue(job)
	s.Schedule(interval, job)
}

// Stop halts all tickers and waits for them to exit. In-flight jobs are the
// pool's to drain.
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
