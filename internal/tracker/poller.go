// Package tracker polls the work item tracker, gamifies the snapshot, and
// publishes status transitions for the rest of the system to react to.
package tracker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/text/unicode/norm"

	"github.com/jynba/worldline/internal/clock"
	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/event"
	"github.com/jynba/worldline/internal/ledger"
	"github.com/jynba/worldline/internal/logger"
	"github.com/jynba/worldline/internal/metrics"
)

// Service is the tracker surface exposed to handlers and jobs.
type Service interface {
	// Poll fetches a fresh snapshot and publishes detected status changes.
	Poll(ctx context.Context) error
	// Claim moves an active item into the claim ledger.
	Claim(ctx context.Context, itemID string) error
	// Items returns the published active list, claimable first.
	Items() []domain.TrackedItem
	// Changes returns the accumulated status change log, oldest first.
	Changes() []domain.StatusChange
	// LastError returns the user-facing message of the last failed poll,
	// or "" when the last poll succeeded.
	LastError() string
}

// Poller implements Service over a Transport and a claim ledger.
type Poller struct {
	transport Transport
	ledger    *ledger.Ledger
	bus       event.Bus
	clk       clock.Clock
	roleField string

	inFlight atomic.Bool

	mu         sync.Mutex
	items      []domain.TrackedItem
	prevStatus map[string]string
	changes    []domain.StatusChange
	lastErr    string
}

// NewPoller creates a tracker poller. roleField selects which claimability
// profile applies to the configured user.
func NewPoller(transport Transport, lg *ledger.Ledger, bus event.Bus, clk clock.Clock, roleField string) *Poller {
	return &Poller{
		transport:  transport,
		ledger:     lg,
		bus:        bus,
		clk:        clk,
		roleField:  roleField,
		prevStatus: make(map[string]string),
	}
}

// Poll runs one fetch/reconcile/diff cycle. Overlapping calls are coalesced:
// if a poll is already running the call returns immediately without error.
// On transport failure the previously published list and change log are left
// untouched.
func (p *Poller) Poll(ctx context.Context) error {
	if !p.inFlight.CompareAndSwap(false, true) {
		logger.FromContext(ctx).Debug(LogMsgPollSkipped)
		return nil
	}
	defer p.inFlight.Store(false)

	log := logger.FromContext(ctx)
	metrics.PollsTotal.Inc()

	raw, err := p.transport.FetchItems(ctx)
	if err != nil {
		reason, msg := classifyPollError(err)
		metrics.PollErrorsTotal.WithLabelValues(reason).Inc()

		p.mu.Lock()
		p.lastErr = msg
		p.mu.Unlock()

		log.Error(LogMsgPollFailed, "reason", reason, "error", err)
		return err
	}

	snapshot := p.buildSnapshot(ctx, raw)

	liveIDs := make(map[string]struct{}, len(snapshot))
	for _, item := range snapshot {
		liveIDs[item.ID] = struct{}{}
	}
	p.ledger.Reconcile(ctx, liveIDs)

	now := p.clk.Now()

	// The ledger filter runs under the same lock that Claim holds while it
	// moves an item into the ledger, so a concurrent claim cannot be
	// republished into the active list.
	p.mu.Lock()
	active := snapshot[:0]
	for _, item := range snapshot {
		if p.ledger.Contains(item.ID) {
			continue
		}
		active = append(active, item)
	}
	changes := p.diffLocked(active)
	for i := range changes {
		changes[i].OccurredAt = now
	}
	p.changes = append(p.changes, changes...)
	if len(p.changes) > ChangeLogCap {
		p.changes = p.changes[len(p.changes)-ChangeLogCap:]
	}
	p.items = active
	p.lastErr = ""
	p.mu.Unlock()

	metrics.ActiveItems.Set(float64(len(active)))
	for _, c := range changes {
		metrics.StatusChangesTotal.WithLabelValues(string(c.Kind)).Inc()
		p.publishChange(ctx, c)
	}

	log.Info(LogMsgPollCompleted,
		"active", len(active),
		"claimed", p.ledger.Len(),
		"changes", len(changes))
	return nil
}

// buildSnapshot maps fetched records into gamified items, dropping duplicate
// ids (first occurrence wins) and sorting claimable items first, then by
// status priority.
func (p *Poller) buildSnapshot(ctx context.Context, raw []RawItem) []domain.TrackedItem {
	claimable := ClaimableStatuses(p.roleField)

	seen := make(map[string]struct{}, len(raw))
	items := make([]domain.TrackedItem, 0, len(raw))
	for _, r := range raw {
		if _, dup := seen[r.ID]; dup {
			logger.FromContext(ctx).Warn(LogMsgDuplicateItem, "item_id", r.ID)
			continue
		}
		seen[r.ID] = struct{}{}

		status := norm.NFC.String(r.VStatus)
		if status == "" {
			status = norm.NFC.String(r.Status)
		}

		_, isClaimable := claimable[status]
		items = append(items, domain.TrackedItem{
			ID:             r.ID,
			Kind:           r.Kind,
			Name:           r.Name,
			RawStatus:      r.Status,
			Owner:          r.Owner,
			Status:         status,
			GamifiedStatus: GamifyStatus(status),
			Claimable:      isClaimable,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Claimable != items[j].Claimable {
			return items[i].Claimable
		}
		return statusRank(items[i].Status) < statusRank(items[j].Status)
	})

	return items
}

// diffLocked compares the incoming active list against the remembered
// statuses and returns one change per transition. The remembered status is
// updated for every incoming item, including ones seen for the first time,
// which produce no change. Caller holds the lock.
func (p *Poller) diffLocked(items []domain.TrackedItem) []domain.StatusChange {
	var changes []domain.StatusChange
	for _, item := range items {
		prev, known := p.prevStatus[item.ID]
		if known && prev != item.Status {
			changes = append(changes, domain.StatusChange{
				ItemID: item.ID,
				Kind:   item.Kind,
				From:   prev,
				To:     item.Status,
			})
		}
		p.prevStatus[item.ID] = item.Status
	}
	return changes
}

func (p *Poller) publishChange(ctx context.Context, c domain.StatusChange) {
	evt := event.New(event.TrackerStatusChanged, event.StatusChangedPayloadV1{
		ItemID:     c.ItemID,
		Kind:       c.Kind,
		From:       c.From,
		To:         c.To,
		OccurredAt: c.OccurredAt,
	})
	if err := p.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error("Failed to publish status change", "error", err)
	}
}

// Claim moves the item out of the active list and into the ledger. A repeat
// claim returns domain.ErrAlreadyClaimed so callers never double-grant the
// reward; an id absent from the active list returns domain.ErrItemNotActive.
func (p *Poller) Claim(ctx context.Context, itemID string) error {
	p.mu.Lock()

	if p.ledger.Contains(itemID) {
		p.mu.Unlock()
		logger.FromContext(ctx).Warn(LogMsgAlreadyClaimed, "item_id", itemID)
		return domain.ErrAlreadyClaimed
	}

	idx := -1
	for i, item := range p.items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.mu.Unlock()
		return domain.ErrItemNotActive
	}

	// Ledger insertion and active-list removal happen under one lock so a
	// concurrent Poll sees either both or neither.
	item := p.items[idx]
	if err := p.ledger.Add(ctx, item); err != nil {
		p.mu.Unlock()
		return err
	}
	p.items = append(p.items[:idx], p.items[idx+1:]...)
	p.mu.Unlock()

	metrics.ClaimsTotal.Inc()
	metrics.ActiveItems.Dec()

	evt := event.New(event.ItemClaimed, event.ItemClaimedPayloadV1{
		ItemID: item.ID,
		Name:   item.Name,
	})
	if err := p.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error("Failed to publish claim event", "error", err)
	}

	logger.FromContext(ctx).Info(LogMsgItemClaimed, "item_id", item.ID, "name", item.Name)
	return nil
}

// Items returns a copy of the published active list.
func (p *Poller) Items() []domain.TrackedItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.TrackedItem, len(p.items))
	copy(out, p.items)
	return out
}

// Changes returns a copy of the status change log, oldest first.
func (p *Poller) Changes() []domain.StatusChange {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.StatusChange, len(p.changes))
	copy(out, p.changes)
	return out
}

// LastError returns the user-facing message of the last failed poll.
func (p *Poller) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func classifyPollError(err error) (reason, msg string) {
	if errors.Is(err, domain.ErrAuthFailed) {
		return metrics.ReasonAuth, MsgAuthFailed
	}
	return metrics.ReasonTransport, MsgFetchFailed
}
