package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jynba/worldline/internal/domain"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Handler processes a published event
type Handler func(ctx context.Context, event Event) error

// Bus is the publish/subscribe surface shared by all services
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Event types
const (
	// TrackerStatusChanged fires once per detected item status transition.
	TrackerStatusChanged Type = "tracker.status.changed"

	// GameLevelUp fires when the progression engine crosses a level threshold.
	GameLevelUp Type = "game.level.up"

	// ItemClaimed fires when an active item is moved into the claim ledger.
	ItemClaimed Type = "item.claimed"

	// CharacterPurchased fires when a cosmetic character is bought.
	CharacterPurchased Type = "market.character.purchased"

	// WorldMessageUpdated fires when the dispatcher sets or clears its message.
	WorldMessageUpdated Type = "world.message.updated"
)

// Typed event payloads for type safety

// StatusChangedPayloadV1 is the typed payload for tracker status changes
type StatusChangedPayloadV1 struct {
	ItemID     string          `json:"item_id"`
	Kind       domain.ItemKind `json:"kind"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// LevelUpPayloadV1 is the typed payload for level up events
type LevelUpPayloadV1 struct {
	OldLevel     int     `json:"old_level"`
	NewLevel     int     `json:"new_level"`
	Contribution float64 `json:"contribution"`
}

// ItemClaimedPayloadV1 is the typed payload for claim events
type ItemClaimedPayloadV1 struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
}

// CharacterPurchasedPayloadV1 is the typed payload for purchase events
type CharacterPurchasedPayloadV1 struct {
	CharacterID int     `json:"character_id"`
	Cost        float64 `json:"cost"`
}

// WorldMessagePayloadV1 is the typed payload for dispatcher message updates.
// An empty Message means the display window expired.
type WorldMessagePayloadV1 struct {
	EventID string `json:"event_id,omitempty"`
	Message string `json:"message"`
}

// New builds an event with the current schema version.
func New(eventType Type, payload interface{}) Event {
	return Event{Version: EventSchemaVersion, Type: eventType, Payload: payload}
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order; all handlers run even when earlier ones fail.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while handling event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
