package ledger

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/store"
)

func item(id string) domain.TrackedItem {
	return domain.TrackedItem{ID: id, Kind: domain.KindStory, Name: "story " + id, Status: "开发中"}
}

func TestAddPrependsMostRecentFirst(t *testing.T) {
	l := Load(context.Background(), store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, item("1")))
	require.NoError(t, l.Add(ctx, item("2")))
	require.NoError(t, l.Add(ctx, item("3")))

	items := l.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "3", items[0].ID)
	assert.Equal(t, "1", items[2].ID)
}

func TestAddDuplicateFails(t *testing.T) {
	l := Load(context.Background(), store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, item("1")))
	err := l.Add(ctx, item("1"))

	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	assert.Equal(t, 1, l.Len())
}

func TestReconcilePrunesMissingIDs(t *testing.T) {
	st := store.NewMemoryStore()
	l := Load(context.Background(), st)
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, item("1")))
	require.NoError(t, l.Add(ctx, item("2")))

	live := map[string]struct{}{"2": {}}
	l.Reconcile(ctx, live)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)

	// Pruned ledger is persisted.
	raw, ok, err := st.Get(ctx, store.KeyClaimedItems)
	require.NoError(t, err)
	require.True(t, ok)
	var saved []domain.TrackedItem
	require.NoError(t, json.Unmarshal([]byte(raw), &saved))
	assert.Len(t, saved, 1)
}

func TestReconcileIsIdempotent(t *testing.T) {
	l := Load(context.Background(), store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, item("1")))
	require.NoError(t, l.Add(ctx, item("2")))
	require.NoError(t, l.Add(ctx, item("3")))

	live := map[string]struct{}{"1": {}, "3": {}}
	l.Reconcile(ctx, live)
	after := l.Items()

	l.Reconcile(ctx, live)
	assert.Equal(t, after, l.Items(), "second reconcile with same id set must not change the ledger")
}

func TestLoadDeduplicates(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	saved := []domain.TrackedItem{item("1"), item("2"), item("1"), item("3"), item("2")}
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, store.KeyClaimedItems, string(data)))

	l := Load(ctx, st)

	items := l.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, "3", items[2].ID)
}

func TestLoadCorruptSaveStartsEmpty(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, store.KeyClaimedItems, "{not json"))

	l := Load(ctx, st)
	assert.Equal(t, 0, l.Len())
}
