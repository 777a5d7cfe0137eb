// Package market sells cosmetic companion characters for contribution
// points. The catalog is a static resource; ownership persists across runs.
package market

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/event"
	"github.com/jynba/worldline/internal/logger"
	"github.com/jynba/worldline/internal/metrics"
	"github.com/jynba/worldline/internal/store"
	"github.com/jynba/worldline/internal/utils"
)

// Log messages
const (
	LogMsgOwnedLoadFailed  = "Failed to load owned characters, using default"
	LogMsgOwnedSaveFailed  = "Failed to persist owned characters"
	LogMsgPurchased        = "Character purchased"
	LogMsgPurchaseDeclined = "Character purchase declined"
)

// Wallet is the slice of the progression service the market spends from.
type Wallet interface {
	SpendContribution(ctx context.Context, amount float64) error
}

// CharacterView is a catalog entry together with its ownership flag.
type CharacterView struct {
	domain.Character
	Owned bool `json:"owned"`
}

// Service is the character market surface exposed to handlers.
type Service interface {
	// Characters returns the catalog in file order with ownership flags.
	Characters() []CharacterView
	// Purchase buys the character, deducting its cost from the wallet.
	Purchase(ctx context.Context, characterID int) error
}

type service struct {
	mu      sync.Mutex
	catalog []domain.Character
	owned   map[int]struct{}
	wallet  Wallet
	store   store.Store
	bus     event.Bus
}

// NewService loads the character catalog from catalogPath and the persisted
// ownership set. A fresh profile owns the first catalog entry.
func NewService(ctx context.Context, catalogPath string, wallet Wallet, st store.Store, bus event.Bus) (Service, error) {
	var catalog []domain.Character
	if err := utils.LoadJSON(catalogPath, &catalog); err != nil {
		return nil, err
	}

	s := &service{
		catalog: catalog,
		owned:   make(map[int]struct{}),
		wallet:  wallet,
		store:   st,
		bus:     bus,
	}
	s.loadOwned(ctx)
	return s, nil
}

func (s *service) loadOwned(ctx context.Context) {
	raw, ok, err := s.store.Get(ctx, store.KeyPurchasedCharacters)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgOwnedLoadFailed, "error", err)
		s.defaultOwned()
		return
	}
	if !ok {
		s.defaultOwned()
		return
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.FromContext(ctx).Warn(LogMsgOwnedLoadFailed, "error", err)
		s.defaultOwned()
		return
	}

	for _, id := range ids {
		s.owned[id] = struct{}{}
	}
}

// defaultOwned grants the starter character.
func (s *service) defaultOwned() {
	if len(s.catalog) > 0 {
		s.owned[s.catalog[0].ID] = struct{}{}
	}
}

func (s *service) Characters() []CharacterView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]CharacterView, 0, len(s.catalog))
	for _, c := range s.catalog {
		_, owned := s.owned[c.ID]
		views = append(views, CharacterView{Character: c, Owned: owned})
	}
	return views
}

// Purchase buys the character. Unknown ids return
// domain.ErrCharacterNotFound, repeat purchases domain.ErrAlreadyOwned, and
// an uncovered cost surfaces the wallet's error unchanged.
func (s *service) Purchase(ctx context.Context, characterID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var character *domain.Character
	for i := range s.catalog {
		if s.catalog[i].ID == characterID {
			character = &s.catalog[i]
			break
		}
	}
	if character == nil {
		return domain.ErrCharacterNotFound
	}

	if _, owned := s.owned[characterID]; owned {
		return domain.ErrAlreadyOwned
	}

	if err := s.wallet.SpendContribution(ctx, character.Cost); err != nil {
		logger.FromContext(ctx).Info(LogMsgPurchaseDeclined,
			"character_id", characterID, "cost", character.Cost, "error", err)
		return err
	}

	s.owned[characterID] = struct{}{}
	s.persistOwned(ctx)

	metrics.PurchasesTotal.Inc()
	logger.FromContext(ctx).Info(LogMsgPurchased,
		"character_id", characterID, "name", character.Name, "cost", character.Cost)

	if s.bus != nil {
		evt := event.New(event.CharacterPurchased, event.CharacterPurchasedPayloadV1{
			CharacterID: characterID,
			Cost:        character.Cost,
		})
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Error("Failed to publish purchase event", "error", err)
		}
	}

	return nil
}

// persistOwned writes the ownership set. Failures are logged and swallowed.
// Caller holds the lock.
func (s *service) persistOwned(ctx context.Context) {
	ids := make([]int, 0, len(s.owned))
	for _, c := range s.catalog {
		if _, owned := s.owned[c.ID]; owned {
			ids = append(ids, c.ID)
		}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgOwnedSaveFailed, "error", err)
		return
	}
	if err := s.store.Set(ctx, store.KeyPurchasedCharacters, string(data)); err != nil {
		logger.FromContext(ctx).Error(LogMsgOwnedSaveFailed, "error", err)
	}
}
