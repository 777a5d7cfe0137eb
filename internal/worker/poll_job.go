package worker

import (
	"context"

	"github.com/jynba/worldline/internal/tracker"
)

// PollJob runs one tracker poll cycle.
type PollJob struct {
	tracker tracker.Service
}

// NewPollJob creates a poll job bound to the tracker service.
func NewPollJob(t tracker.Service) *PollJob {
	return &PollJob{tracker: t}
}

// Process polls the tracker. Failures are already classified and logged by
// the poller; returning the error here surfaces them in the pool log too.
func (j *PollJob) Process(ctx context.Context) error {
	return j.tracker.Poll(ctx)
}
