package worldevent

import (
	"context"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/logger"
	"github.com/jynba/worldline/internal/utils"
)

// Narrator picks display copy for narrative event ids.
type Narrator struct {
	events map[string]domain.WorldEventConfig
	pick   func(n int) int
}

// NewNarrator indexes the config pack by event id. pick selects an index
// from a copy pool; nil means random.
func NewNarrator(configs []domain.WorldEventConfig, pick func(n int) int) *Narrator {
	if pick == nil {
		pick = utils.RandomIndex
	}
	events := make(map[string]domain.WorldEventConfig, len(configs))
	for _, cfg := range configs {
		events[cfg.ID] = cfg
	}
	return &Narrator{events: events, pick: pick}
}

// Narrate returns one copy line for the event id. Unknown ids warn and fall
// back to a generic message so a stale resource never breaks the overlay.
func (n *Narrator) Narrate(ctx context.Context, eventID string) string {
	cfg, ok := n.events[eventID]
	if !ok || len(cfg.CopyPool) == 0 {
		logger.FromContext(ctx).Warn(LogMsgUnknownEvent, "event_id", eventID)
		return FallbackMessage
	}
	return cfg.CopyPool[n.pick(len(cfg.CopyPool))]
}
