package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "chatflow/client/internal/errors"
	"chatflow/client/internal/interfaces"
	"chatflow/client/internal/service"
)

// ChatHandler exposes the session store, the lifecycle operations and the
// message dispatcher to a local view.
type ChatHandler struct {
	sessions   interfaces.SessionService
	dispatcher interfaces.MessageDispatcher
	settings   interfaces.SettingsService
}

func NewChatHandler(sessions interfaces.SessionService, dispatcher interfaces.MessageDispatcher, settings interfaces.SettingsService) *ChatHandler {
	return &ChatHandler{sessions: sessions, dispatcher: dispatcher, settings: settings}
}

// GetState godoc
// @Summary      Current state
// @Description  Returns the current snapshot: identity, current session, both lists, loading flag, error banner and typing progress.
// @Tags         State
// @Produce      json
// @Success      200  {object}  service.State
// @Router       /v1/state [get]
func (h *ChatHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.sessions.Snapshot())
}

// HandleEvents godoc
// @Summary      State stream
// @Description  Streams every new snapshot as a `state` Server-Sent Event. Slow readers skip intermediate snapshots.
// @Tags         State
// @Produce      text/event-stream
// @Success      200  {object}  service.State  "Stream of snapshots"
// @Router       /v1/events [get]
func (h *ChatHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	states, unsubscribe := h.sessions.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			slog.Debug("State stream client disconnected")
			return
		case st, ok := <-states:
			if !ok {
				sendStreamError(w, "State stream closed")
				return
			}
			if err := writeStreamEvent(w, "state", st); err != nil {
				slog.Warn("Could not write to state stream, client likely disconnected.", "error", err)
				return
			}
		}
	}
}

// HandleSetIdentity godoc
// @Summary      Set caller identity
// @Description  Switches the user, clears everything loaded for the previous one and reloads the ongoing list.
// @Tags         State
// @Accept       json
// @Produce      json
// @Param        identity  body  IdentityRequest  true  "User ID"
// @Success      200  {object}  service.State
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/identity [put]
func (h *ChatHandler) HandleSetIdentity(w http.ResponseWriter, r *http.Request) {
	var req IdentityRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.sessions.SetIdentity(r.Context(), req.UserID); err != nil {
		// The identity is set even when the first list load fails.
		slog.Warn("Session list not loaded for new identity", "error", err)
	}
	respondWithJSON(w, http.StatusOK, h.sessions.Snapshot())
}

// HandleDismissError godoc
// @Summary      Dismiss the error banner
// @Tags         State
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /v1/error [delete]
func (h *ChatHandler) HandleDismissError(w http.ResponseWriter, r *http.Request) {
	h.sessions.DismissError()
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleSendMessage godoc
// @Summary      Send a message
// @Description  Appends the user message to the current session (creating one if needed) and starts generating the reply. The reply is delivered through the state stream.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        message  body  SendMessageRequest  true  "Message"
// @Success      202  {object}  TurnResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "Archived session or a reply still in progress"
// @Router       /v1/messages [post]
func (h *ChatHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}

	turn, err := h.dispatcher.SendMessage(r.Context(), req.Content, service.SendParams{
		MaxNewTokens: req.MaxNewTokens,
		NumBeams:     req.NumBeams,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, TurnResponse{SessionID: turn.SessionID, UserMessageID: turn.UserMessageID})
}

// HandleNewSession godoc
// @Summary      Start a new chat
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  model.Session
// @Failure      401  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /v1/sessions [post]
func (h *ChatHandler) HandleNewSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.NewSession(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, session)
}

// GetSessions godoc
// @Summary      Reload a session list
// @Tags         Sessions
// @Produce      json
// @Param        view  query  string  false  "ongoing (default) or archived"
// @Success      200  {array}   model.Session
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /v1/sessions [get]
func (h *ChatHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	view := service.ListView(r.URL.Query().Get("view"))
	sessions, err := h.sessions.LoadView(r.Context(), view)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sessions)
}

// HandleSetView godoc
// @Summary      Switch the sidebar list
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        view  body  ViewRequest  true  "View"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/view [put]
func (h *ChatHandler) HandleSetView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.sessions.SetView(r.Context(), service.ListView(req.View)); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleSelectSession godoc
// @Summary      Open a chat
// @Description  Stops any typing animation and loads the session with its feedback summaries.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  model.Session
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "Session is archived"
// @Router       /v1/sessions/{sessionID}/select [put]
func (h *ChatHandler) HandleSelectSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.sessions.Select(r.Context(), sessionID); err != nil {
		respondWithError(w, err)
		return
	}
	current := h.sessions.Snapshot().CurrentSession
	if current == nil || current.ID != sessionID {
		// Another selection overtook this one.
		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "superseded"})
		return
	}
	respondWithJSON(w, http.StatusOK, current)
}

// UpdateSessionTitle godoc
// @Summary      Rename a chat
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string              true  "Session ID"
// @Param        title      body  UpdateTitleRequest  true  "New title"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/title [put]
func (h *ChatHandler) UpdateSessionTitle(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	var req UpdateTitleRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.sessions.Rename(r.Context(), sessionID, req.Title); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleArchiveSession godoc
// @Summary      Archive a chat
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/archive [put]
func (h *ChatHandler) HandleArchiveSession(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.sessions.Archive)
}

// HandleRestoreSession godoc
// @Summary      Restore an archived chat
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/restore [put]
func (h *ChatHandler) HandleRestoreSession(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.sessions.Restore)
}

// HandleDeleteSession godoc
// @Summary      Delete a chat
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [delete]
func (h *ChatHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.sessions.Delete)
}

func (h *ChatHandler) lifecycle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, sessionID string) error) {
	if err := op(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// GetPendingSaves godoc
// @Summary      List unsaved messages
// @Tags         Outbox
// @Produce      json
// @Success      200  {array}   model.PendingSave
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/outbox [get]
func (h *ChatHandler) GetPendingSaves(w http.ResponseWriter, r *http.Request) {
	pending, err := h.dispatcher.PendingSaves(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pending)
}

// HandleRetryPendingSaves godoc
// @Summary      Retry unsaved messages
// @Description  Re-issues every failed save of the current user. Records that still fail stay queued.
// @Tags         Outbox
// @Produce      json
// @Success      200  {object}  RetryResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/outbox/retry [post]
func (h *ChatHandler) HandleRetryPendingSaves(w http.ResponseWriter, r *http.Request) {
	saved, retryErr := h.dispatcher.RetryPendingSaves(r.Context())
	if errors.Is(retryErr, app_errors.ErrIdentityMissing) {
		respondWithError(w, retryErr)
		return
	}

	resp := RetryResponse{Saved: saved}
	if pending, err := h.dispatcher.PendingSaves(r.Context()); err == nil {
		resp.Pending = len(pending)
	}
	if retryErr != nil {
		resp.Error = "Failed to save messages"
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// GetSettings godoc
// @Summary      Get generation settings
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  service.Settings
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/settings [get]
func (h *ChatHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary      Update generation settings
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        settings  body  service.Settings  true  "Settings"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/settings [post]
func (h *ChatHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings service.Settings
	if err := decodeAndValidate(r.Body, &settings); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.settings.Save(r.Context(), &settings); err != nil {
		respondWithError(w, err)
		return
	}
	slog.Info("Settings updated.")
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
