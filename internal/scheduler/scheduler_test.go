package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jynba/worldline/internal/worker"
)

type signalJob struct {
	done chan struct{}
}

func (j *signalJob) Process(ctx context.Context) error {
	select {
	case j.done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduleRunsJobRepeatedly(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &signalJob{done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	runs := 0
	for runs < 2 {
		select {
		case <-job.done:
			runs++
		case <-timeout:
			t.Fatal("Timeout waiting for scheduled job")
		}
	}

	assert.GreaterOrEqual(t, runs, 2)
}

func TestScheduleNowRunsImmediately(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &signalJob{done: make(chan struct{}, 1)}
	sched.ScheduleNow(time.Hour, job)

	select {
	case <-job.done:
	case <-time.After(time.Second):
		t.Fatal("Job did not run immediately")
	}
}
