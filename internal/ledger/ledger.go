// Package ledger tracks the items the user has already redeemed for reward.
// Entries are full item snapshots keyed by id, most recent first, persisted
// independently of the live item list.
package ledger

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/logger"
	"github.com/jynba/worldline/internal/store"
)

// Log messages
const (
	LogMsgLoadFailed      = "Failed to load claim ledger, starting empty"
	LogMsgPersistFailed   = "Failed to persist claim ledger"
	LogMsgDuplicateOnLoad = "Dropped duplicate ledger entries on load"
	LogMsgPruned          = "Removed expired items from claim ledger"
)

// Ledger is the set of claimed items.
type Ledger struct {
	mu    sync.Mutex
	items []domain.TrackedItem
	index map[string]struct{}
	store store.Store
}

// Load reads the persisted ledger, deduplicating by id (first occurrence
// wins, preserving order). A missing or corrupt save starts empty.
func Load(ctx context.Context, st store.Store) *Ledger {
	l := &Ledger{
		index: make(map[string]struct{}),
		store: st,
	}

	raw, ok, err := st.Get(ctx, store.KeyClaimedItems)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgLoadFailed, "error", err)
		return l
	}
	if !ok {
		return l
	}

	var saved []domain.TrackedItem
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		logger.FromContext(ctx).Warn(LogMsgLoadFailed, "error", err)
		return l
	}

	for _, item := range saved {
		if _, dup := l.index[item.ID]; dup {
			continue
		}
		l.items = append(l.items, item)
		l.index[item.ID] = struct{}{}
	}
	if len(l.items) != len(saved) {
		logger.FromContext(ctx).Info(LogMsgDuplicateOnLoad,
			"loaded", len(saved), "kept", len(l.items))
	}

	return l
}

// Contains reports whether the id has already been claimed.
func (l *Ledger) Contains(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.index[id]
	return ok
}

// Add prepends the item to the ledger and persists it. Returns
// domain.ErrAlreadyClaimed when the id is already present.
func (l *Ledger) Add(ctx context.Context, item domain.TrackedItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, dup := l.index[item.ID]; dup {
		return domain.ErrAlreadyClaimed
	}

	l.items = append([]domain.TrackedItem{item}, l.items...)
	l.index[item.ID] = struct{}{}
	l.persist(ctx)
	return nil
}

// Reconcile drops entries whose id is absent from the live id set and
// persists the pruned ledger. Running it twice with the same set is a no-op
// the second time.
func (l *Ledger) Reconcile(ctx context.Context, liveIDs map[string]struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.items[:0]
	for _, item := range l.items {
		if _, live := liveIDs[item.ID]; live {
			kept = append(kept, item)
			continue
		}
		delete(l.index, item.ID)
	}

	if len(kept) == len(l.items) {
		return
	}

	removed := len(l.items) - len(kept)
	l.items = kept
	l.persist(ctx)
	logger.FromContext(ctx).Info(LogMsgPruned, "removed", removed, "kept", len(kept))
}

// Items returns a copy of the ledger, most recently claimed first.
func (l *Ledger) Items() []domain.TrackedItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.TrackedItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of claimed items.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// persist writes the ledger. Failures are logged and swallowed. Caller holds
// the lock.
func (l *Ledger) persist(ctx context.Context) {
	data, err := json.Marshal(l.items)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgPersistFailed, "error", err)
		return
	}
	if err := l.store.Set(ctx, store.KeyClaimedItems, string(data)); err != nil {
		logger.FromContext(ctx).Error(LogMsgPersistFailed, "error", err)
	}
}
