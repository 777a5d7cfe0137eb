package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// Connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types pushed to the overlay
const (
	// EventTypeLevelUp is sent when the player crosses a level threshold
	EventTypeLevelUp = "game.level_up"

	// EventTypeWorldMessage is sent when the world message is set or cleared
	EventTypeWorldMessage = "world.message"

	// EventTypeItemsUpdated is sent when the active item list may have changed
	EventTypeItemsUpdated = "items.updated"

	// EventTypeItemClaimed is sent when an item moves into the claim ledger
	EventTypeItemClaimed = "item.claimed"

	// EventTypeCharacterPurchased is sent when a character is bought
	EventTypeCharacterPurchased = "character.purchased"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
)
