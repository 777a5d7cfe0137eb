// Package store provides the local key→string persistence used for game
// saves. Values are JSON blobs owned by their respective services.
package store

import "context"

// Persisted keys. Each key is owned by exactly one service.
const (
	KeyPlayerState         = "player-state"
	KeyClaimedItems        = "claimed-items"
	KeyPurchasedCharacters = "purchased-characters"
)

// Store is a key→string table with last-writer-wins semantics.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes or overwrites the value for a key.
	Set(ctx context.Context, key, value string) error
	// Close releases the underlying resources.
	Close() error
}
