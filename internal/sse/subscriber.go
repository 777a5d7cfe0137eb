package sse

import (
	"context"
	"log/slog"

	"github.com/jynba/worldline/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers handlers for every event type the overlay consumes
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.GameLevelUp, s.handleLevelUp)
	s.bus.Subscribe(event.WorldMessageUpdated, s.handleWorldMessage)
	s.bus.Subscribe(event.TrackerStatusChanged, s.handleStatusChanged)
	s.bus.Subscribe(event.ItemClaimed, s.handleItemClaimed)
	s.bus.Subscribe(event.CharacterPurchased, s.handleCharacterPurchased)
}

func (s *Subscriber) handleLevelUp(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid level up event payload", "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeLevelUp, LevelUpPayload{
		OldLevel:     payload.OldLevel,
		NewLevel:     payload.NewLevel,
		Contribution: payload.Contribution,
	})

	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeLevelUp, "new_level", payload.NewLevel)
	return nil
}

func (s *Subscriber) handleWorldMessage(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.WorldMessagePayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid world message event payload", "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeWorldMessage, WorldMessagePayload{
		EventID: payload.EventID,
		Message: payload.Message,
	})
	return nil
}

func (s *Subscriber) handleStatusChanged(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.StatusChangedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid status change event payload", "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeItemsUpdated, ItemsUpdatedPayload{ItemID: payload.ItemID})
	return nil
}

func (s *Subscriber) handleItemClaimed(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ItemClaimedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid claim event payload", "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeItemClaimed, ItemClaimedPayload{
		ItemID: payload.ItemID,
		Name:   payload.Name,
	})
	return nil
}

func (s *Subscriber) handleCharacterPurchased(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CharacterPurchasedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid purchase event payload", "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeCharacterPurchased, CharacterPurchasedPayload{
		CharacterID: payload.CharacterID,
		Cost:        payload.Cost,
	})
	return nil
}
