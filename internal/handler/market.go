package handler

import (
	"net/http"

	"github.com/jynba/worldline/internal/market"
)

// MarketHandler serves the character market endpoints
type MarketHandler struct {
	market market.Service
}

// NewMarketHandler creates a market handler
func NewMarketHandler(m market.Service) *MarketHandler {
	return &MarketHandler{market: m}
}

// HandleGetCharacters returns the catalog with ownership flags
func (h *MarketHandler) HandleGetCharacters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.market.Characters()})
}

// PurchaseRequest is the body for buying a character
type PurchaseRequest struct {
	CharacterID int `json:"character_id" validate:"required,gt=0"`
}

// HandlePurchase buys a character with contribution points
func (h *MarketHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Purchase character"); err != nil {
		return
	}

	if err := h.market.Purchase(r.Context(), req.CharacterID); err != nil {
		respondServiceError(w, r, "Purchase character", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: h.market.Characters()})
}
