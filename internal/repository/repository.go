package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	app_errors "chatflow/client/internal/errors"
	"chatflow/client/internal/model"
)

// Repository defines the calls the orchestration core makes against the remote
// persistence service. Every call carries the caller identity as X-User-Id.
type Repository interface {
	ListSessions(ctx context.Context, userID string) ([]model.Session, error)
	ListArchivedSessions(ctx context.Context, userID string) ([]model.Session, error)
	CreateSession(ctx context.Context, userID, title string) (*model.Session, error)
	GetSession(ctx context.Context, userID, sessionID string) (*model.Session, error)
	UpdateSessionTitle(ctx context.Context, userID, sessionID, title string) error
	ArchiveSession(ctx context.Context, userID, sessionID string) error
	RestoreSession(ctx context.Context, userID, sessionID string) error
	DeleteSession(ctx context.Context, userID, sessionID string) error

	AppendMessages(ctx context.Context, userID, sessionID string, messages []model.Message) error
	SetReaction(ctx context.Context, userID, messageID string, reaction *model.Reaction) error
	SubmitComment(ctx context.Context, userID, messageID string, req *CommentRequest) error
	GetFeedback(ctx context.Context, userID, messageID string) (*model.FeedbackSummary, error)
}

// CommentRequest is the body of POST /chat/messages/{id}/comment. A nil
// Comment is sent as JSON null, matching an empty comment box.
type CommentRequest struct {
	Rating       int     `json:"rating"`
	Comment      *string `json:"comment"`
	FeedbackType string  `json:"feedback_type"`
}

type httpRepository struct {
	client  *http.Client
	baseURL string
}

func NewHTTPRepository(baseURL string, timeout time.Duration) Repository {
	return &httpRepository{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Path helpers
func sessionsPath() string { return "/chat/sessions" }
func sessionPath(id string) string { return "/chat/sessions/" + url.PathEscape(id) }
func messagePath(id string) string { return "/chat/messages/" + url.PathEscape(id) }

// --- Session Operations ---
func (r *httpRepository) ListSessions(ctx context.Context, userID string) ([]model.Session, error) {
	var sessions []model.Session
	if err := r.do(ctx, http.MethodGet, sessionsPath(), userID, nil, &sessions); err != nil {
		return nil, fmt.Errorf("could not list sessions: %w", err)
	}
	return sessions, nil
}

func (r *httpRepository) ListArchivedSessions(ctx context.Context, userID string) ([]model.Session, error) {
	var sessions []model.Session
	if err := r.do(ctx, http.MethodGet, sessionsPath()+"/archived", userID, nil, &sessions); err != nil {
		return nil, fmt.Errorf("could not list archived sessions: %w", err)
	}
	return sessions, nil
}

func (r *httpRepository) CreateSession(ctx context.Context, userID, title string) (*model.Session, error) {
	var session model.Session
	body := map[string]string{"title": title}
	if err := r.do(ctx, http.MethodPost, sessionsPath(), userID, body, &session); err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}
	return &session, nil
}

func (r *httpRepository) GetSession(ctx context.Context, userID, sessionID string) (*model.Session, error) {
	var session model.Session
	if err := r.do(ctx, http.MethodGet, sessionPath(sessionID), userID, nil, &session); err != nil {
		return nil, fmt.Errorf("could not load session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *httpRepository) UpdateSessionTitle(ctx context.Context, userID, sessionID, title string) error {
	body := map[string]string{"title": title}
	if err := r.do(ctx, http.MethodPut, sessionPath(sessionID)+"/title", userID, body, nil); err != nil {
		return fmt.Errorf("could not rename session %s: %w", sessionID, err)
	}
	return nil
}

func (r *httpRepository) ArchiveSession(ctx context.Context, userID, sessionID string) error {
	if err := r.do(ctx, http.MethodPut, sessionPath(sessionID)+"/archive", userID, nil, nil); err != nil {
		return fmt.Errorf("could not archive session %s: %w", sessionID, err)
	}
	return nil
}

func (r *httpRepository) RestoreSession(ctx context.Context, userID, sessionID string) error {
	if err := r.do(ctx, http.MethodPut, sessionPath(sessionID)+"/restore", userID, nil, nil); err != nil {
		return fmt.Errorf("could not restore session %s: %w", sessionID, err)
	}
	return nil
}

func (r *httpRepository) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if err := r.do(ctx, http.MethodDelete, sessionPath(sessionID), userID, nil, nil); err != nil {
		return fmt.Errorf("could not delete session %s: %w", sessionID, err)
	}
	return nil
}

// --- Message Operations ---
func (r *httpRepository) AppendMessages(ctx context.Context, userID, sessionID string, messages []model.Message) error {
	body := map[string][]model.Message{"messages": messages}
	if err := r.do(ctx, http.MethodPost, sessionPath(sessionID)+"/messages", userID, body, nil); err != nil {
		return fmt.Errorf("could not save messages to session %s: %w", sessionID, err)
	}
	return nil
}

func (r *httpRepository) SetReaction(ctx context.Context, userID, messageID string, reaction *model.Reaction) error {
	body := map[string]*model.Reaction{"reaction": reaction}
	if err := r.do(ctx, http.MethodPut, messagePath(messageID)+"/reaction", userID, body, nil); err != nil {
		return fmt.Errorf("could not set reaction on message %s: %w", messageID, err)
	}
	return nil
}

func (r *httpRepository) SubmitComment(ctx context.Context, userID, messageID string, req *CommentRequest) error {
	if err := r.do(ctx, http.MethodPost, messagePath(messageID)+"/comment", userID, req, nil); err != nil {
		return fmt.Errorf("could not submit rating for message %s: %w", messageID, err)
	}
	return nil
}

func (r *httpRepository) GetFeedback(ctx context.Context, userID, messageID string) (*model.FeedbackSummary, error) {
	var summary model.FeedbackSummary
	if err := r.do(ctx, http.MethodGet, messagePath(messageID)+"/feedback", userID, nil, &summary); err != nil {
		return nil, fmt.Errorf("could not get feedback for message %s: %w", messageID, err)
	}
	return &summary, nil
}

// --- Helper Functions ---

// do issues one request and decodes a JSON body into out when out is non-nil.
// Non-2xx statuses are translated into the shared sentinel errors.
func (r *httpRepository) do(ctx context.Context, method, path, userID string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-User-Id", userID)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", app_errors.ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: could not read response body: %v", app_errors.ErrUnavailable, err)
	}

	if err := statusError(resp.StatusCode, respBody); err != nil {
		return err
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: could not decode response: %v", app_errors.ErrUnavailable, err)
	}
	return nil
}

func statusError(code int, body []byte) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, app_errors.ErrNotFound)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", app_errors.ErrPermission, code)
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: status %d: %s", app_errors.ErrValidation, code, string(body))
	default:
		return fmt.Errorf("%w: status %d: %s", app_errors.ErrUnavailable, code, string(body))
	}
}
