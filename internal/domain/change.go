package domain

import "time"

// StatusChange records one detected transition of an item's status between
// two polls. Immutable once created.
type StatusChange struct {
	ItemID     string    `json:"id"`
	Kind       ItemKind  `json:"type"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"timestamp"`
}
