package market

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/event"
	"github.com/jynba/worldline/internal/store"
)

type fakeWallet struct {
	balance float64
	spent   []float64
}

func (w *fakeWallet) SpendContribution(ctx context.Context, amount float64) error {
	if w.balance < amount {
		return domain.ErrInsufficientContribution
	}
	w.balance -= amount
	w.spent = append(w.spent, amount)
	return nil
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	catalog := []domain.Character{
		{ID: 1, Name: "Asuka", Cost: 3000, ModelURL: "/models/asuka.glb", Preview: "/previews/asuka.png"},
		{ID: 2, Name: "ANIYA", Cost: 4500, ModelURL: "/models/aniya.glb", Preview: "/previews/aniya.png"},
		{ID: 7, Name: "White", Cost: 8000, ModelURL: "/models/white.glb", Preview: "/previews/white.png"},
	}
	data, err := json.Marshal(catalog)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "characters.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestService(t *testing.T, wallet *fakeWallet, st store.Store) Service {
	t.Helper()
	s, err := NewService(context.Background(), writeCatalog(t), wallet, st, event.NewMemoryBus())
	require.NoError(t, err)
	return s
}

func TestFreshProfileOwnsStarterCharacter(t *testing.T) {
	s := newTestService(t, &fakeWallet{}, store.NewMemoryStore())

	views := s.Characters()
	require.Len(t, views, 3)
	assert.True(t, views[0].Owned)
	assert.False(t, views[1].Owned)
	assert.False(t, views[2].Owned)
}

func TestPurchaseSpendsAndPersists(t *testing.T) {
	wallet := &fakeWallet{balance: 6000}
	st := store.NewMemoryStore()
	s := newTestService(t, wallet, st)
	ctx := context.Background()

	require.NoError(t, s.Purchase(ctx, 2))

	assert.Equal(t, []float64{4500}, wallet.spent)
	assert.True(t, s.Characters()[1].Owned)

	raw, ok, err := st.Get(ctx, store.KeyPurchasedCharacters)
	require.NoError(t, err)
	require.True(t, ok)
	var ids []int
	require.NoError(t, json.Unmarshal([]byte(raw), &ids))
	assert.Equal(t, []int{1, 2}, ids)
}

func TestPurchaseInsufficientBalanceFails(t *testing.T) {
	wallet := &fakeWallet{balance: 100}
	s := newTestService(t, wallet, store.NewMemoryStore())

	err := s.Purchase(context.Background(), 2)

	assert.ErrorIs(t, err, domain.ErrInsufficientContribution)
	assert.False(t, s.Characters()[1].Owned)
	assert.Empty(t, wallet.spent)
}

func TestPurchaseUnknownCharacterFails(t *testing.T) {
	s := newTestService(t, &fakeWallet{balance: 10000}, store.NewMemoryStore())

	err := s.Purchase(context.Background(), 999)

	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestPurchaseOwnedCharacterFails(t *testing.T) {
	wallet := &fakeWallet{balance: 10000}
	s := newTestService(t, wallet, store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, s.Purchase(ctx, 2))
	err := s.Purchase(ctx, 2)

	assert.ErrorIs(t, err, domain.ErrAlreadyOwned)
	assert.Len(t, wallet.spent, 1, "second attempt must not spend")
}

func TestOwnershipSurvivesReload(t *testing.T) {
	wallet := &fakeWallet{balance: 10000}
	st := store.NewMemoryStore()
	ctx := context.Background()

	catalogPath := writeCatalog(t)
	first, err := NewService(ctx, catalogPath, wallet, st, event.NewMemoryBus())
	require.NoError(t, err)
	require.NoError(t, first.Purchase(ctx, 7))

	second, err := NewService(ctx, catalogPath, wallet, st, event.NewMemoryBus())
	require.NoError(t, err)

	views := second.Characters()
	assert.True(t, views[0].Owned)
	assert.True(t, views[2].Owned)
}
