// Package handler exposes the HTTP API consumed by the desktop overlay.
package handler

import (
	"net/http"

	"github.com/jynba/worldline/internal/game"
)

// PlayerHandler serves the progression state endpoints
type PlayerHandler struct {
	game game.Service
}

// NewPlayerHandler creates a player handler
func NewPlayerHandler(g game.Service) *PlayerHandler {
	return &PlayerHandler{game: g}
}

// HandleGetPlayer returns the current player state
func (h *PlayerHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.game.Snapshot()})
}

// SpendRequest is the body for spending contribution points
type SpendRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// HandleSpend deducts contribution points from the player balance
func (h *PlayerHandler) HandleSpend(w http.ResponseWriter, r *http.Request) {
	var req SpendRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spend contribution"); err != nil {
		return
	}

	if err := h.game.SpendContribution(r.Context(), req.Amount); err != nil {
		respondServiceError(w, r, "Spend contribution", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: h.game.Snapshot()})
}
