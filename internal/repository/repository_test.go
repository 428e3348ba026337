package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "chatflow/client/internal/errors"
	"chatflow/client/internal/model"
)

type capturedRequest struct {
	Method string
	Path   string
	UserID string
	Body   string
}

// newBackend starts an httptest server that records every request and replies
// with the handler's status and body for the request path.
func newBackend(t *testing.T, routes map[string]func() (int, string)) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var (
		mu       sync.Mutex
		captured []capturedRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		mu.Lock()
		defer mu.Unlock()
		captured = append(captured, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			UserID: r.Header.Get("X-User-Id"),
			Body:   string(body),
		})

		route, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		status, payload := route()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)
	return server, &captured
}

func TestHTTPRepository_Sessions(t *testing.T) {
	ctx := context.Background()

	server, captured := newBackend(t, map[string]func() (int, string){
		"GET /chat/sessions": func() (int, string) {
			return http.StatusOK, `[{"id":"s1","user_id":"u1","title":"First","state":"ongoing"}]`
		},
		"GET /chat/sessions/archived": func() (int, string) {
			return http.StatusOK, `[{"id":"s2","user_id":"u1","title":"Old","state":"archived"}]`
		},
		"POST /chat/sessions": func() (int, string) {
			return http.StatusCreated, `{"id":"s3","user_id":"u1","title":"New Chat","state":"ongoing","messages":[]}`
		},
		"GET /chat/sessions/s1": func() (int, string) {
			return http.StatusOK, `{"id":"s1","user_id":"u1","title":"First","state":"ongoing","messages":[{"id":"m1","type":"user","content":"hi","timestamp":"2025-01-01T10:00:00Z"}]}`
		},
		"PUT /chat/sessions/s1/title":   func() (int, string) { return http.StatusOK, `{"status":"ok"}` },
		"PUT /chat/sessions/s1/archive": func() (int, string) { return http.StatusOK, `` },
		"PUT /chat/sessions/s2/restore": func() (int, string) { return http.StatusOK, `` },
		"DELETE /chat/sessions/s1":      func() (int, string) { return http.StatusNoContent, `` },
	})
	repo := NewHTTPRepository(server.URL, 5*time.Second)

	t.Run("ListSessions", func(t *testing.T) {
		sessions, err := repo.ListSessions(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, "s1", sessions[0].ID)
		assert.Equal(t, model.StateOngoing, sessions[0].State)
	})

	t.Run("ListArchivedSessions", func(t *testing.T) {
		sessions, err := repo.ListArchivedSessions(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, model.StateArchived, sessions[0].State)
	})

	t.Run("CreateSession", func(t *testing.T) {
		session, err := repo.CreateSession(ctx, "u1", "New Chat")
		require.NoError(t, err)
		assert.Equal(t, "s3", session.ID)
		last := (*captured)[len(*captured)-1]
		assert.JSONEq(t, `{"title":"New Chat"}`, last.Body)
	})

	t.Run("GetSession", func(t *testing.T) {
		session, err := repo.GetSession(ctx, "u1", "s1")
		require.NoError(t, err)
		require.Len(t, session.Messages, 1)
		assert.Equal(t, model.MessageUser, session.Messages[0].Type)
	})

	t.Run("Lifecycle calls", func(t *testing.T) {
		require.NoError(t, repo.UpdateSessionTitle(ctx, "u1", "s1", "Renamed"))
		require.NoError(t, repo.ArchiveSession(ctx, "u1", "s1"))
		require.NoError(t, repo.RestoreSession(ctx, "u1", "s2"))
		require.NoError(t, repo.DeleteSession(ctx, "u1", "s1"))
	})

	t.Run("Every call carries the identity header", func(t *testing.T) {
		for _, req := range *captured {
			assert.Equal(t, "u1", req.UserID, "%s %s", req.Method, req.Path)
		}
	})
}

func TestHTTPRepository_Messages(t *testing.T) {
	ctx := context.Background()

	server, captured := newBackend(t, map[string]func() (int, string){
		"POST /chat/sessions/s1/messages": func() (int, string) { return http.StatusOK, `{"status":"ok"}` },
		"PUT /chat/messages/a1/reaction":  func() (int, string) { return http.StatusOK, `` },
		"POST /chat/messages/a1/comment":  func() (int, string) { return http.StatusOK, `` },
		"GET /chat/messages/a1/feedback": func() (int, string) {
			return http.StatusOK, `{"avg_rating":4.5,"comments_count":2,"user_rating":5,"user_comment":"great"}`
		},
	})
	repo := NewHTTPRepository(server.URL, 5*time.Second)

	t.Run("AppendMessages", func(t *testing.T) {
		msgs := []model.Message{
			{ID: "u-1", Type: model.MessageUser, Content: "Hello"},
			{ID: "a-1", Type: model.MessageAssistant, Content: "ܫܠܡܐ"},
		}
		require.NoError(t, repo.AppendMessages(ctx, "u1", "s1", msgs))

		var body struct {
			Messages []model.Message `json:"messages"`
		}
		require.NoError(t, json.Unmarshal([]byte((*captured)[0].Body), &body))
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "ܫܠܡܐ", body.Messages[1].Content)

		var raw struct {
			Messages []map[string]json.RawMessage `json:"messages"`
		}
		require.NoError(t, json.Unmarshal([]byte((*captured)[0].Body), &raw))
		reaction, ok := raw.Messages[1]["reaction"]
		require.True(t, ok, "a fresh reply is sent with an explicit reaction")
		assert.Equal(t, "null", string(reaction))
	})

	t.Run("SetReaction - null clears", func(t *testing.T) {
		require.NoError(t, repo.SetReaction(ctx, "u1", "a1", nil))
		assert.JSONEq(t, `{"reaction":null}`, (*captured)[1].Body)
	})

	t.Run("SubmitComment", func(t *testing.T) {
		comment := "great"
		require.NoError(t, repo.SubmitComment(ctx, "u1", "a1", &CommentRequest{Rating: 5, Comment: &comment, FeedbackType: "general"}))
		assert.JSONEq(t, `{"rating":5,"comment":"great","feedback_type":"general"}`, (*captured)[2].Body)
	})

	t.Run("GetFeedback", func(t *testing.T) {
		summary, err := repo.GetFeedback(ctx, "u1", "a1")
		require.NoError(t, err)
		require.NotNil(t, summary.AvgRating)
		assert.Equal(t, 4.5, *summary.AvgRating)
		assert.Equal(t, 2, summary.CommentsCount)
		require.NotNil(t, summary.UserRating)
		assert.Equal(t, 5, *summary.UserRating)
	})
}

func TestHTTPRepository_StatusMapping(t *testing.T) {
	ctx := context.Background()

	server, _ := newBackend(t, map[string]func() (int, string){
		"GET /chat/sessions":            func() (int, string) { return http.StatusInternalServerError, `boom` },
		"PUT /chat/sessions/s1/archive": func() (int, string) { return http.StatusForbidden, `` },
		"PUT /chat/sessions/s1/title":   func() (int, string) { return http.StatusBadRequest, `{"detail":"title too long"}` },
	})
	repo := NewHTTPRepository(server.URL, 5*time.Second)

	t.Run("Failure - 404 maps to not found", func(t *testing.T) {
		_, err := repo.GetSession(ctx, "u1", "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Failure - 500 maps to unavailable", func(t *testing.T) {
		_, err := repo.ListSessions(ctx, "u1")
		assert.ErrorIs(t, err, app_errors.ErrUnavailable)
	})

	t.Run("Failure - 403 maps to permission", func(t *testing.T) {
		err := repo.ArchiveSession(ctx, "u1", "s1")
		assert.ErrorIs(t, err, app_errors.ErrPermission)
	})

	t.Run("Failure - 400 maps to validation", func(t *testing.T) {
		err := repo.UpdateSessionTitle(ctx, "u1", "s1", "x")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.Contains(t, err.Error(), "title too long")
	})
}
