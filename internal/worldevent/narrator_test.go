package worldevent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jynba/worldline/internal/domain"
)

func testConfigs() []domain.WorldEventConfig {
	return []domain.WorldEventConfig{
		{
			ID:       EventBugFixed,
			Source:   "tapd",
			Category: "status",
			Emotion:  "positive",
			CopyPool: []string{"虫洞已闭合", "一个异常从时间线上消失了"},
		},
		{
			ID:       EventStoryRollback,
			Source:   "tapd",
			Category: "status",
			Emotion:  "negative",
			CopyPool: []string{"世界线回溯中"},
		},
	}
}

func TestNarratePicksFromCopyPool(t *testing.T) {
	n := NewNarrator(testConfigs(), func(int) int { return 1 })

	got := n.Narrate(context.Background(), EventBugFixed)

	assert.Equal(t, "一个异常从时间线上消失了", got)
}

func TestNarrateUnknownEventFallsBack(t *testing.T) {
	n := NewNarrator(testConfigs(), func(int) int { return 0 })

	got := n.Narrate(context.Background(), "NO_SUCH_EVENT")

	assert.Equal(t, FallbackMessage, got)
}

func TestNarrateWithoutConfigsServesFallback(t *testing.T) {
	// A failed resource load leaves the narrator with no configs; every
	// event id then gets the fallback copy instead of breaking.
	n := NewNarrator(nil, func(int) int { return 0 })

	for _, eventID := range []string{EventBugFixed, EventBugReopened, EventStoryRollback} {
		assert.Equal(t, FallbackMessage, n.Narrate(context.Background(), eventID))
	}
}

func TestNarrateRandomPickStaysInPool(t *testing.T) {
	n := NewNarrator(testConfigs(), nil)
	pool := testConfigs()[0].CopyPool

	for i := 0; i < 50; i++ {
		got := n.Narrate(context.Background(), EventBugFixed)
		assert.Contains(t, pool, got)
	}
}
