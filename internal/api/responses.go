package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "chatflow/client/internal/errors"
)

// This file contains shared DTOs (Data Transfer Objects) for API requests and
// responses, and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response for operations that don't
// need to return a resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// IdentityRequest switches the caller identity.
type IdentityRequest struct {
	UserID string `json:"user_id" validate:"required,max=128" example:"user-42"`
}

// SendMessageRequest is the DTO for sending a user message. Zero generation
// parameters fall back to the stored settings.
type SendMessageRequest struct {
	Content      string `json:"content" validate:"required" example:"Hello"`
	MaxNewTokens int    `json:"max_new_tokens,omitempty" validate:"omitempty,min=1,max=8192" example:"150"`
	NumBeams     int    `json:"num_beams,omitempty" validate:"omitempty,min=1,max=10" example:"2"`
}

// TurnResponse identifies the accepted message. The reply arrives through the
// state stream.
type TurnResponse struct {
	SessionID     string `json:"session_id"`
	UserMessageID string `json:"user_message_id"`
}

// ViewRequest selects the sidebar list.
type ViewRequest struct {
	View string `json:"view" validate:"required,oneof=ongoing archived" example:"archived"`
}

// UpdateTitleRequest is the DTO for the manual session title update endpoint.
type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100" example:"My Custom Chat Title"`
}

// ReactionRequest sets or, with a null reaction, clears the caller's reaction.
type ReactionRequest struct {
	Reaction *string `json:"reaction" validate:"omitempty,oneof=like dislike" example:"like"`
}

// RatingRequest is the DTO for rating an assistant message.
type RatingRequest struct {
	Rating       int    `json:"rating" validate:"required,min=1,max=5" example:"5"`
	Comment      string `json:"comment,omitempty" validate:"max=2000" example:"great"`
	FeedbackType string `json:"feedback_type,omitempty" validate:"omitempty,oneof=general accuracy helpfulness fluency cultural_appropriateness" example:"general"`
}

// RetryResponse reports the outcome of an outbox retry.
type RetryResponse struct {
	Saved   int    `json:"saved"`
	Pending int    `json:"pending"`
	Error   string `json:"error,omitempty"`
}

// respondWithError is the centralized error handling function for the API layer.
// It maps business-layer sentinels to HTTP status codes and formats a standard
// JSON error response.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrIdentityMissing):
		statusCode = http.StatusUnauthorized
		message = "User ID is missing. Please try logging out and back in."
	case errors.Is(err, app_errors.ErrArchived):
		statusCode = http.StatusConflict
		message = "Cannot send messages to archived chats. Please restore the chat first."
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages are already descriptive and user-friendly.
		message = err.Error()
	case errors.Is(err, app_errors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A reply for this chat is still in progress."
	case errors.Is(err, app_errors.ErrPermission):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	case errors.Is(err, app_errors.ErrUnavailable):
		statusCode = http.StatusBadGateway
		message = "The chat service is unavailable. Please try again."
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// sendStreamError sends a structured error message over a Server-Sent Events stream.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)

	jsonData, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		slog.Error("Failed to marshal stream error payload", "error", err)
		return
	}

	if _, err := fmt.Fprintf(w, "event: error\ndata: %s\n\n", string(jsonData)); err != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
		return
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// writeStreamEvent marshals data and writes it as one named SSE event. A write
// failure means the client disconnected.
func writeStreamEvent(w http.ResponseWriter, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		return nil
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData)); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
