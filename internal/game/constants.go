package game

// Tick cadence rules. One tick is one second of online time.
const (
	// XPGainEverySeconds is how often passive XP/energy changes apply.
	XPGainEverySeconds = 10

	// XPPerGain is the passive XP granted each gain interval.
	XPPerGain = 5.0

	// EnergyDrainPerGain is the energy lost each gain interval.
	EnergyDrainPerGain = 0.5
)

// Level-up rules.
const (
	// XPCurveFactor grows the next-level threshold after each level.
	XPCurveFactor = 1.5

	// LevelUpEnergyBonus is restored on level up, capped at EnergyMax.
	LevelUpEnergyBonus = 20.0

	// LevelUpContributionPerLevel scales the contribution granted on level up.
	LevelUpContributionPerLevel = 10.0

	// ClaimRewardPerLevel scales the contribution granted by claim rewards.
	ClaimRewardPerLevel = 50.0
)

// Energy bounds and status thresholds.
const (
	EnergyMin = 0.0
	EnergyMax = 100.0

	EnergyCriticalBelow = 20.0
	EnergyWarningBelow  = 60.0
)

// Log messages
const (
	LogMsgStateLoaded     = "Player state loaded"
	LogMsgStateLoadFailed = "Failed to load player state, starting fresh"
	LogMsgPersistFailed   = "Failed to persist player state"
	LogMsgLevelUp         = "Level up"
	LogMsgRewardClaimed   = "Claim reward granted"
)
