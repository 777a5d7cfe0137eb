package domain

import "errors"

// Domain errors shared across services and mapped to user-facing messages
// at the HTTP boundary.
var (
	// ErrInsufficientContribution is returned when a spend exceeds the balance.
	ErrInsufficientContribution = errors.New("insufficient contribution points")

	// ErrAlreadyClaimed is returned when an item id is already in the claim ledger.
	ErrAlreadyClaimed = errors.New("item already claimed")

	// ErrItemNotActive is returned when a claim targets an id absent from the
	// active item list.
	ErrItemNotActive = errors.New("item not in active list")

	// ErrAuthFailed marks a tracker response that indicates invalid credentials
	// (an HTML payload or an unauthorized status).
	ErrAuthFailed = errors.New("tracker authentication failed")

	// ErrFetchFailed marks any other transport or parse failure while polling.
	ErrFetchFailed = errors.New("tracker fetch failed")

	// ErrCharacterNotFound is returned when a purchase targets an unknown character.
	ErrCharacterNotFound = errors.New("character not found")

	// ErrAlreadyOwned is returned when purchasing a character twice.
	ErrAlreadyOwned = errors.New("character already owned")
)
