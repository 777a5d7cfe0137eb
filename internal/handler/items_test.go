package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/ledger"
	"github.com/jynba/worldline/internal/store"
)

// fakeTracker is a hand-rolled tracker.Service for handler tests
type fakeTracker struct {
	items    []domain.TrackedItem
	changes  []domain.StatusChange
	lastErr  string
	pollErr  error
	claimErr error
	claimed  []string
	polls    int
}

func (f *fakeTracker) Poll(ctx context.Context) error {
	f.polls++
	return f.pollErr
}

func (f *fakeTracker) Claim(ctx context.Context, itemID string) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claimed = append(f.claimed, itemID)
	return nil
}

func (f *fakeTracker) Items() []domain.TrackedItem    { return f.items }
func (f *fakeTracker) Changes() []domain.StatusChange { return f.changes }
func (f *fakeTracker) LastError() string              { return f.lastErr }

func newItemsHandler(tr *fakeTracker, g *fakeGame) *ItemsHandler {
	return NewItemsHandler(tr, g, ledger.Load(context.Background(), store.NewMemoryStore()))
}

func TestHandleGetItemsIncludesLastError(t *testing.T) {
	tr := &fakeTracker{
		items:   []domain.TrackedItem{{ID: "1", Kind: domain.KindStory, Name: "login flow"}},
		lastErr: "Authentication failed. Please check your TAPD token.",
	}
	h := newItemsHandler(tr, &fakeGame{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	rec := httptest.NewRecorder()
	h.HandleGetItems(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ItemsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, tr.lastErr, resp.LastError)
}

func TestHandleGetChangesCountsBugChanges(t *testing.T) {
	tr := &fakeTracker{changes: []domain.StatusChange{
		{ItemID: "b1", Kind: domain.KindBug, From: "测试中", To: "已解决"},
		{ItemID: "s1", Kind: domain.KindStory, From: "实现中", To: "已完成"},
		{ItemID: "b2", Kind: domain.KindBug, From: "已解决", To: "重新打开"},
	}}
	h := newItemsHandler(tr, &fakeGame{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/changes", nil)
	rec := httptest.NewRecorder()
	h.HandleGetChanges(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChangesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Changes, 3)
	assert.Equal(t, 2, resp.BugChangeCount)
}

func TestHandlePollSuccess(t *testing.T) {
	tr := &fakeTracker{items: []domain.TrackedItem{{ID: "1"}}}
	h := newItemsHandler(tr, &fakeGame{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/poll", nil)
	rec := httptest.NewRecorder()
	h.HandlePoll(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, tr.polls)
}

func TestHandlePollAuthFailure(t *testing.T) {
	tr := &fakeTracker{pollErr: domain.ErrAuthFailed}
	h := newItemsHandler(tr, &fakeGame{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/poll", nil)
	rec := httptest.NewRecorder()
	h.HandlePoll(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Authentication failed. Please check your TAPD token.", resp.Error)
}

func TestHandleClaimGrantsRewardOnce(t *testing.T) {
	tr := &fakeTracker{}
	g := &fakeGame{state: domain.PlayerState{Level: 2}}
	h := newItemsHandler(tr, g)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/claim", strings.NewReader(`{"item_id":"1001"}`))
	rec := httptest.NewRecorder()
	h.HandleClaim(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClaimResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100.0, resp.Reward)
	assert.Equal(t, []string{"1001"}, tr.claimed)
	assert.Equal(t, 1, g.rewardGrants)
}

func TestHandleClaimRepeatDoesNotGrantReward(t *testing.T) {
	tr := &fakeTracker{claimErr: domain.ErrAlreadyClaimed}
	g := &fakeGame{state: domain.PlayerState{Level: 2}}
	h := newItemsHandler(tr, g)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/claim", strings.NewReader(`{"item_id":"1001"}`))
	rec := httptest.NewRecorder()
	h.HandleClaim(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, g.rewardGrants)
}

func TestHandleClaimMissingItemID(t *testing.T) {
	h := newItemsHandler(&fakeTracker{}, &fakeGame{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/claim", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.HandleClaim(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleClaimInactiveItem(t *testing.T) {
	tr := &fakeTracker{claimErr: domain.ErrItemNotActive}
	g := &fakeGame{}
	h := newItemsHandler(tr, g)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/claim", strings.NewReader(`{"item_id":"404"}`))
	rec := httptest.NewRecorder()
	h.HandleClaim(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, g.rewardGrants)
}
