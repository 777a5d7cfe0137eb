package domain

// PlayerState holds the idle-game progression state for the local player.
// It is owned by the game service and persisted after every mutation.
type PlayerState struct {
	Level          int     `json:"level"`
	XP             float64 `json:"xp"`
	XPForNextLevel int     `json:"xpForNextLevel"`
	Energy         float64 `json:"energy"`
	Contribution   float64 `json:"contribution"`
	OnlineSeconds  int64   `json:"onlineTimeInSeconds"`
	StatusText     string  `json:"statusText"`
}

// Progression defaults for a fresh save.
const (
	DefaultLevel          = 1
	DefaultXPForNextLevel = 100
	DefaultEnergy         = 100.0
	DefaultContribution   = 6000.0
)

// Status text shown in the overlay, keyed off energy thresholds.
const (
	StatusTextStable   = "🟢 稳定监控中"
	StatusTextWarning  = "🟡 世界线出现轻微扰动"
	StatusTextCritical = "🔴 精力接近临界值"
)

// NewPlayerState returns the state used on first run, before any save exists.
func NewPlayerState() PlayerState {
	return PlayerState{
		Level:          DefaultLevel,
		XP:             0,
		XPForNextLevel: DefaultXPForNextLevel,
		Energy:         DefaultEnergy,
		Contribution:   DefaultContribution,
		OnlineSeconds:  0,
		StatusText:     StatusTextStable,
	}
}
