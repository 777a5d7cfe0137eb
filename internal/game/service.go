package game

import (
	"context"
	"encoding/json"
	"math"
	"sync"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/event"
	"github.com/jynba/worldline/internal/logger"
	"github.com/jynba/worldline/internal/metrics"
	"github.com/jynba/worldline/internal/store"
	"github.com/jynba/worldline/internal/utils"
)

// Service owns the idle-game progression state and advances it once per tick.
type Service interface {
	// Tick advances the state by one second of online time and persists it.
	Tick(ctx context.Context)

	// SpendContribution deducts amount if the balance covers it, atomically
	// with respect to ticks. Returns domain.ErrInsufficientContribution
	// without mutating state when the balance is too low.
	SpendContribution(ctx context.Context, amount float64) error

	// ClaimReward credits the level-scaled reward for a claimed item and
	// returns the amount granted. It has no failure mode.
	ClaimReward(ctx context.Context) float64

	// Snapshot returns a copy of the current player state.
	Snapshot() domain.PlayerState
}

type service struct {
	mu    sync.Mutex
	state domain.PlayerState
	store store.Store
	bus   event.Bus
}

// NewService loads the saved player state (or starts fresh when none exists)
// and returns the progression service.
func NewService(ctx context.Context, st store.Store, bus event.Bus) Service {
	log := logger.FromContext(ctx)
	s := &service{
		state: domain.NewPlayerState(),
		store: st,
		bus:   bus,
	}

	raw, ok, err := st.Get(ctx, store.KeyPlayerState)
	if err != nil {
		log.Warn(LogMsgStateLoadFailed, "error", err)
		return s
	}
	if !ok {
		return s
	}

	var saved domain.PlayerState
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		log.Warn(LogMsgStateLoadFailed, "error", err)
		return s
	}

	s.state = saved
	log.Info(LogMsgStateLoaded, "level", saved.Level, "online_seconds", saved.OnlineSeconds)
	return s
}

// Tick applies the per-second progression rules in order: online time,
// passive gains, level-ups, status text, persist.
func (s *service) Tick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.OnlineSeconds++

	if s.state.OnlineSeconds%XPGainEverySeconds == 0 {
		s.state.XP += XPPerGain
		s.state.Energy = utils.ClampFloat(s.state.Energy-EnergyDrainPerGain, EnergyMin, EnergyMax)
	}

	s.applyLevelUps(ctx)
	s.state.StatusText = statusTextFor(s.state.Energy)
	s.persist(ctx)
}

// applyLevelUps resolves every pending level-up; a single large XP gain may
// cross several thresholds. Caller holds the lock.
func (s *service) applyLevelUps(ctx context.Context) {
	for s.state.XP >= float64(s.state.XPForNextLevel) {
		oldLevel := s.state.Level
		s.state.Level++
		s.state.XP -= float64(s.state.XPForNextLevel)
		s.state.XPForNextLevel = int(math.Floor(float64(s.state.XPForNextLevel) * XPCurveFactor))
		s.state.Energy = utils.ClampFloat(s.state.Energy+LevelUpEnergyBonus, EnergyMin, EnergyMax)

		granted := LevelUpContributionPerLevel * float64(s.state.Level)
		s.state.Contribution += granted

		metrics.LevelUpsTotal.Inc()
		logger.FromContext(ctx).Info(LogMsgLevelUp,
			"old_level", oldLevel,
			"new_level", s.state.Level,
			"contribution_granted", granted)

		if s.bus != nil {
			_ = s.bus.Publish(ctx, event.New(event.GameLevelUp, event.LevelUpPayloadV1{
				OldLevel:     oldLevel,
				NewLevel:     s.state.Level,
				Contribution: granted,
			}))
		}
	}
}

func (s *service) SpendContribution(ctx context.Context, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Contribution < amount {
		return domain.ErrInsufficientContribution
	}

	s.state.Contribution -= amount
	s.persist(ctx)
	return nil
}

func (s *service) ClaimReward(ctx context.Context) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	reward := ClaimRewardPerLevel * float64(s.state.Level)
	s.state.Contribution += reward
	s.persist(ctx)

	logger.FromContext(ctx).Info(LogMsgRewardClaimed, "reward", reward, "level", s.state.Level)
	return reward
}

func (s *service) Snapshot() domain.PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// persist writes the state to the store. Failures are logged and swallowed;
// the in-memory state stays authoritative for the session. Caller holds the lock.
func (s *service) persist(ctx context.Context) {
	data, err := json.Marshal(s.state)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgPersistFailed, "error", err)
		return
	}
	if err := s.store.Set(ctx, store.KeyPlayerState, string(data)); err != nil {
		logger.FromContext(ctx).Error(LogMsgPersistFailed, "error", err)
	}
}

func statusTextFor(energy float64) string {
	switch {
	case energy < EnergyCriticalBelow:
		return domain.StatusTextCritical
	case energy < EnergyWarningBelow:
		return domain.StatusTextWarning
	default:
		return domain.StatusTextStable
	}
}
