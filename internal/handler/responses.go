package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/logger"
	"github.com/jynba/worldline/internal/tracker"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

var bufferPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgInvalidRequest        = "Invalid request. Please check your inputs."
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgNotEnoughContribution = "Not enough contribution points"
	ErrMsgAlreadyClaimed        = "That item has already been claimed"
	ErrMsgItemNotActive         = "Item not found in the active list"
	ErrMsgCharacterNotFound     = "Character not found"
	ErrMsgAlreadyOwned          = "You already own that character"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientContribution):
		return http.StatusBadRequest, ErrMsgNotEnoughContribution
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgAlreadyClaimed
	case errors.Is(err, domain.ErrItemNotActive):
		return http.StatusBadRequest, ErrMsgItemNotActive
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusBadRequest, ErrMsgCharacterNotFound
	case errors.Is(err, domain.ErrAlreadyOwned):
		return http.StatusBadRequest, ErrMsgAlreadyOwned
	case errors.Is(err, domain.ErrAuthFailed):
		return http.StatusUnauthorized, tracker.MsgAuthFailed
	case errors.Is(err, domain.ErrFetchFailed):
		return http.StatusBadGateway, tracker.MsgFetchFailed
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs the failure and writes the mapped user message.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	logger.FromContext(r.Context()).Warn(opName+" failed", "error", err, "status", status)
	respondError(w, status, message)
}
