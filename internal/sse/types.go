package sse

// LevelUpPayload is the SSE payload for level up events
type LevelUpPayload struct {
	OldLevel     int     `json:"old_level"`
	NewLevel     int     `json:"new_level"`
	Contribution float64 `json:"contribution"`
}

// WorldMessagePayload is the SSE payload for world message updates. An
// empty Message means the overlay should clear the banner.
type WorldMessagePayload struct {
	EventID string `json:"event_id,omitempty"`
	Message string `json:"message"`
}

// ItemClaimedPayload is the SSE payload for claim events
type ItemClaimedPayload struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
}

// ItemsUpdatedPayload nudges the overlay to refetch the active list
type ItemsUpdatedPayload struct {
	ItemID string `json:"item_id"`
}

// CharacterPurchasedPayload is the SSE payload for purchase events
type CharacterPurchasedPayload struct {
	CharacterID int     `json:"character_id"`
	Cost        float64 `json:"cost"`
}
