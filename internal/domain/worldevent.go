package domain

// WorldEventConfig describes one narrative event loaded from the static
// world-events resource. Cooldown and Priority are carried in the data model
// but are not currently consulted by the dispatcher.
type WorldEventConfig struct {
	ID       string   `json:"id" validate:"required"`
	Source   string   `json:"source" validate:"required,oneof=tapd time"`
	Category string   `json:"category" validate:"required,oneof=status aggregate"`
	Emotion  string   `json:"emotion" validate:"required,oneof=positive neutral negative"`
	Priority int      `json:"priority" validate:"gte=0"`
	Cooldown int      `json:"cooldown" validate:"gte=0"`
	CopyPool []string `json:"copyPool" validate:"min=1,dive,required"`
}
