package worker

import (
	"context"

	"github.com/jynba/worldline/internal/game"
	"github.com/jynba/worldline/internal/metrics"
)

// TickJob advances the progression engine by one tick.
type TickJob struct {
	game game.Service
}

// NewTickJob creates a tick job bound to the progression service.
func NewTickJob(g game.Service) *TickJob {
	return &TickJob{game: g}
}

// Process runs one tick. It never fails; the service swallows persistence
// errors internally.
func (j *TickJob) Process(ctx context.Context) error {
	metrics.TicksTotal.Inc()
	j.game.Tick(ctx)
	return nil
}
