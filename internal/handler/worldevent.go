package handler

import (
	"net/http"

	"github.com/jynba/worldline/internal/worldevent"
)

// WorldHandler serves the current world message
type WorldHandler struct {
	dispatcher *worldevent.Dispatcher
}

// NewWorldHandler creates a world message handler
func NewWorldHandler(d *worldevent.Dispatcher) *WorldHandler {
	return &WorldHandler{dispatcher: d}
}

// WorldMessageResponse is empty when nothing is on display
type WorldMessageResponse struct {
	EventID string `json:"event_id,omitempty"`
	Message string `json:"message"`
}

// HandleGetMessage returns the message currently on display
func (h *WorldHandler) HandleGetMessage(w http.ResponseWriter, r *http.Request) {
	eventID, message := h.dispatcher.CurrentMessage()
	respondJSON(w, http.StatusOK, WorldMessageResponse{
		EventID: eventID,
		Message: message,
	})
}
