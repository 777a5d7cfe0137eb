package handler

import (
	"net/http"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/game"
	"github.com/jynba/worldline/internal/ledger"
	"github.com/jynba/worldline/internal/tracker"
)

// ItemsHandler serves the tracked item endpoints
type ItemsHandler struct {
	tracker tracker.Service
	game    game.Service
	ledger  *ledger.Ledger
}

// NewItemsHandler creates an items handler
func NewItemsHandler(t tracker.Service, g game.Service, l *ledger.Ledger) *ItemsHandler {
	return &ItemsHandler{tracker: t, game: g, ledger: l}
}

// ItemsResponse carries the active list plus the last poll error, if any
type ItemsResponse struct {
	Items     []domain.TrackedItem `json:"items"`
	LastError string               `json:"last_error,omitempty"`
}

// ChangesResponse carries the status change log and the bug change count
type ChangesResponse struct {
	Changes        []domain.StatusChange `json:"changes"`
	BugChangeCount int                   `json:"bug_change_count"`
}

// ClaimResponse carries the granted reward and the updated player state
type ClaimResponse struct {
	Reward float64            `json:"reward"`
	Player domain.PlayerState `json:"player"`
}

// HandleGetItems returns the published active item list
func (h *ItemsHandler) HandleGetItems(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ItemsResponse{
		Items:     h.tracker.Items(),
		LastError: h.tracker.LastError(),
	})
}

// HandleGetClaimed returns the claim ledger, most recent first
func (h *ItemsHandler) HandleGetClaimed(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.ledger.Items()})
}

// HandleGetChanges returns the accumulated status change log
func (h *ItemsHandler) HandleGetChanges(w http.ResponseWriter, r *http.Request) {
	changes := h.tracker.Changes()

	bugChanges := 0
	for _, c := range changes {
		if c.Kind == domain.KindBug {
			bugChanges++
		}
	}

	respondJSON(w, http.StatusOK, ChangesResponse{
		Changes:        changes,
		BugChangeCount: bugChanges,
	})
}

// HandlePoll triggers an immediate tracker poll
func (h *ItemsHandler) HandlePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.Poll(r.Context()); err != nil {
		respondServiceError(w, r, "Poll tracker", err)
		return
	}

	respondJSON(w, http.StatusOK, ItemsResponse{
		Items:     h.tracker.Items(),
		LastError: h.tracker.LastError(),
	})
}

// ClaimRequest is the body for claiming an item reward
type ClaimRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// HandleClaim moves an item into the ledger and grants the level-scaled
// reward. The reward is granted at most once per item.
func (h *ItemsHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim item"); err != nil {
		return
	}

	if err := h.tracker.Claim(r.Context(), req.ItemID); err != nil {
		respondServiceError(w, r, "Claim item", err)
		return
	}

	reward := h.game.ClaimReward(r.Context())
	respondJSON(w, http.StatusOK, ClaimResponse{
		Reward: reward,
		Player: h.game.Snapshot(),
	})
}
