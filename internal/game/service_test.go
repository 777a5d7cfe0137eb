package game

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/event"
	"github.com/jynba/worldline/internal/store"
)

func newTestService(t *testing.T) (*service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	svc := NewService(context.Background(), st, event.NewMemoryBus()).(*service)
	return svc, st
}

func TestTickAccruesOnlineTime(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		svc.Tick(ctx)
	}

	state := svc.Snapshot()
	assert.Equal(t, int64(9), state.OnlineSeconds)
	assert.Equal(t, 0.0, state.XP, "no XP before the 10th second")
	assert.Equal(t, domain.DefaultEnergy, state.Energy)
}

func TestTickGrantsXPEveryTenthSecond(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		svc.Tick(ctx)
	}

	state := svc.Snapshot()
	assert.Equal(t, XPPerGain, state.XP)
	assert.Equal(t, domain.DefaultEnergy-EnergyDrainPerGain, state.Energy)
}

func TestLevelingMath(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	startContribution := svc.Snapshot().Contribution

	// 200 ticks = 20 gain intervals = exactly 100 XP, the level-2 threshold.
	for i := 0; i < 200; i++ {
		svc.Tick(ctx)
	}

	state := svc.Snapshot()
	assert.Equal(t, 2, state.Level)
	assert.Equal(t, 0.0, state.XP)
	assert.Equal(t, 150, state.XPForNextLevel)
	// 20 drains of 0.5 then +20 on level up, capped at 100.
	assert.Equal(t, 100.0, state.Energy)
	assert.Equal(t, startContribution+20, state.Contribution)
}

func TestXPInvariantHoldsAcrossManyTicks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5000; i++ {
		svc.Tick(ctx)
		state := svc.Snapshot()
		require.Less(t, state.XP, float64(state.XPForNextLevel),
			"XP must stay below the next-level threshold after every tick")
	}
}

func TestMultipleLevelUpsFromOneGain(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// 100 + 150 + 225 thresholds; 499 XP crosses three levels in one pass.
	svc.mu.Lock()
	svc.state.XP = 499.0
	svc.mu.Unlock()

	for i := 0; i < 10; i++ {
		svc.Tick(ctx)
	}

	state := svc.Snapshot()
	assert.Equal(t, 4, state.Level)
	assert.Equal(t, 504.0-100-150-225, state.XP)
	assert.Equal(t, 337, state.XPForNextLevel) // floor(225 * 1.5)
	assert.Less(t, state.XP, float64(state.XPForNextLevel))
}

func TestLevelUpPublishesEvent(t *testing.T) {
	st := store.NewMemoryStore()
	bus := event.NewMemoryBus()

	var payloads []event.LevelUpPayloadV1
	bus.Subscribe(event.GameLevelUp, func(ctx context.Context, evt event.Event) error {
		p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		payloads = append(payloads, p)
		return nil
	})

	svc := NewService(context.Background(), st, bus).(*service)
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		svc.Tick(ctx)
	}

	require.Len(t, payloads, 1)
	assert.Equal(t, 1, payloads[0].OldLevel)
	assert.Equal(t, 2, payloads[0].NewLevel)
	assert.Equal(t, 20.0, payloads[0].Contribution)
}

func TestSpendContribution(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	start := svc.Snapshot().Contribution

	require.NoError(t, svc.SpendContribution(ctx, 100))
	assert.Equal(t, start-100, svc.Snapshot().Contribution)
}

func TestSpendContributionInsufficient(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	before := svc.Snapshot()
	err := svc.SpendContribution(ctx, before.Contribution+1)

	assert.ErrorIs(t, err, domain.ErrInsufficientContribution)
	assert.Equal(t, before, svc.Snapshot(), "failed spend must not mutate state")
	assert.GreaterOrEqual(t, svc.Snapshot().Contribution, 0.0)
}

func TestClaimRewardScalesWithLevel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	start := svc.Snapshot().Contribution
	reward := svc.ClaimReward(ctx)
	assert.Equal(t, 50.0, reward)
	assert.Equal(t, start+50, svc.Snapshot().Contribution)

	svc.mu.Lock()
	svc.state.Level = 7
	svc.mu.Unlock()

	assert.Equal(t, 350.0, svc.ClaimReward(ctx))
}

func TestTickPersistsState(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	svc.Tick(ctx)

	raw, ok, err := st.Get(ctx, store.KeyPlayerState)
	require.NoError(t, err)
	require.True(t, ok)

	var saved domain.PlayerState
	require.NoError(t, json.Unmarshal([]byte(raw), &saved))
	assert.Equal(t, int64(1), saved.OnlineSeconds)
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	st := store.NewMemoryStore()
	st.SetErr = errors.New("disk full")
	svc := NewService(context.Background(), st, event.NewMemoryBus())
	ctx := context.Background()

	// Must not panic; in-memory state stays authoritative.
	svc.Tick(ctx)
	assert.Equal(t, int64(1), svc.Snapshot().OnlineSeconds)

	err := svc.SpendContribution(ctx, 1)
	assert.NoError(t, err)
}

func TestLoadSavedState(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	saved := domain.PlayerState{
		Level:          3,
		XP:             10,
		XPForNextLevel: 225,
		Energy:         55,
		Contribution:   1234,
		OnlineSeconds:  999,
		StatusText:     domain.StatusTextWarning,
	}
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, store.KeyPlayerState, string(data)))

	svc := NewService(ctx, st, event.NewMemoryBus())
	assert.Equal(t, saved, svc.Snapshot())
}

func TestStatusTextThresholds(t *testing.T) {
	tests := []struct {
		energy float64
		want   string
	}{
		{0, domain.StatusTextCritical},
		{19.9, domain.StatusTextCritical},
		{20, domain.StatusTextWarning},
		{59.9, domain.StatusTextWarning},
		{60, domain.StatusTextStable},
		{100, domain.StatusTextStable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusTextFor(tt.energy), "energy %v", tt.energy)
	}
}
