package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	app_errors "chatflow/client/internal/errors"
	"chatflow/client/internal/model"
	"chatflow/client/internal/repository"
	"chatflow/client/internal/typing"
)

// SessionManager loads sessions into the Store and runs the server-confirmed
// lifecycle operations (archive, restore, delete, rename).
type SessionManager struct {
	store    *Store
	repo     repository.Repository
	animator *typing.Animator
	feedback *FeedbackService
}

func NewSessionManager(store *Store, repo repository.Repository, animator *typing.Animator, feedback *FeedbackService) *SessionManager {
	return &SessionManager{store: store, repo: repo, animator: animator, feedback: feedback}
}

// Snapshot returns the current state of the store.
func (m *SessionManager) Snapshot() State {
	return m.store.Snapshot()
}

// Subscribe forwards to the store.
func (m *SessionManager) Subscribe() (<-chan State, func()) {
	return m.store.Subscribe()
}

// SetIdentity switches the caller identity, drops everything loaded for the
// previous one and reloads the ongoing list.
func (m *SessionManager) SetIdentity(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id cannot be empty", app_errors.ErrValidation)
	}

	m.store.nextSelection()
	m.animator.Cancel()
	m.store.update(func(st *State) {
		st.UserID = userID
		st.CurrentSession = nil
		st.Sessions = []model.Session{}
		st.ArchivedSessions = []model.Session{}
		st.View = ViewOngoing
		st.IsLoading = false
		st.Error = ""
		st.Typing = nil
	})
	slog.Info("Caller identity changed", "user_id", userID)

	_, err := m.LoadSessions(ctx)
	return err
}

// LoadSessions fetches the ongoing list. A failure is logged and leaves the
// previous list in place.
func (m *SessionManager) LoadSessions(ctx context.Context) ([]model.Session, error) {
	userID, err := m.store.requireUser()
	if err != nil {
		return nil, err
	}

	sessions, err := m.repo.ListSessions(ctx, userID)
	if err != nil {
		slog.Error("Failed to load chat sessions", "error", err)
		return nil, err
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	m.store.update(func(st *State) { st.Sessions = sessions })
	return sessions, nil
}

// LoadArchived fetches the archived list.
func (m *SessionManager) LoadArchived(ctx context.Context) ([]model.Session, error) {
	userID, err := m.store.requireUser()
	if err != nil {
		return nil, err
	}

	sessions, err := m.repo.ListArchivedSessions(ctx, userID)
	if err != nil {
		slog.Error("Failed to load archived sessions", "error", err)
		return nil, err
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	m.store.update(func(st *State) { st.ArchivedSessions = sessions })
	return sessions, nil
}

// LoadView reloads the list behind view.
func (m *SessionManager) LoadView(ctx context.Context, view ListView) ([]model.Session, error) {
	switch view {
	case ViewOngoing, "":
		return m.LoadSessions(ctx)
	case ViewArchived:
		return m.LoadArchived(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown view '%s'", app_errors.ErrValidation, view)
	}
}

// SetView switches the sidebar between the two lists. The archived list is
// fetched each time it is opened.
func (m *SessionManager) SetView(ctx context.Context, view ListView) error {
	if view != ViewOngoing && view != ViewArchived {
		return fmt.Errorf("%w: unknown view '%s'", app_errors.ErrValidation, view)
	}
	m.store.update(func(st *State) { st.View = view })
	if view == ViewArchived {
		_, err := m.LoadArchived(ctx)
		return err
	}
	return nil
}

// Select stops any animation, loads sessionID and makes it current once its
// feedback is hydrated. Loads overtaken by a newer selection are discarded.
func (m *SessionManager) Select(ctx context.Context, sessionID string) error {
	userID, err := m.store.requireUser()
	if err != nil {
		return err
	}

	token := m.store.nextSelection()
	m.animator.Cancel()

	session, err := m.repo.GetSession(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			m.store.updateSelection(token, func(st *State) {
				st.CurrentSession = nil
				st.Error = msgSessionGone
			})
			return err
		}
		slog.Error("Failed to load session", "session_id", sessionID, "error", err)
		m.store.updateSelection(token, func(st *State) { st.Error = msgLoadFailed })
		return err
	}

	if session.State == model.StateArchived {
		m.store.updateSelection(token, func(st *State) {
			st.CurrentSession = nil
			st.Error = msgSessionArchived
		})
		return fmt.Errorf("session %s: %w", sessionID, app_errors.ErrArchived)
	}

	if session.Messages == nil {
		session.Messages = []model.Message{}
	}
	if session.State == "" {
		session.State = model.StateOngoing
	}
	hydrated := m.feedback.Hydrate(ctx, userID, *session)
	if !m.store.updateSelection(token, func(st *State) { st.CurrentSession = &hydrated }) {
		slog.Debug("Discarding stale session load", "session_id", sessionID)
	}
	return nil
}

// NewSession stops any animation, creates a session titled "New Chat" and
// makes it current.
func (m *SessionManager) NewSession(ctx context.Context) (*model.Session, error) {
	userID, err := m.store.requireUser()
	if err != nil {
		return nil, err
	}

	token := m.store.nextSelection()
	m.animator.Cancel()

	session, err := m.repo.CreateSession(ctx, userID, defaultSessionTitle)
	if err != nil {
		slog.Error("Failed to create session", "error", err)
		m.store.setError(msgCreateFailed)
		return nil, err
	}
	if session.Messages == nil {
		session.Messages = []model.Message{}
	}
	if session.State == "" {
		session.State = model.StateOngoing
	}

	listEntry := *session
	listEntry.Messages = nil
	m.store.updateSelection(token, func(st *State) {
		st.CurrentSession = session
		st.Sessions = append([]model.Session{listEntry}, st.Sessions...)
	})
	slog.Info("Created new session", "session_id", session.ID)
	return session, nil
}

// Archive archives sessionID on the server, then refreshes the lists. A
// current session stays current but refuses new messages.
func (m *SessionManager) Archive(ctx context.Context, sessionID string) error {
	userID, err := m.store.requireUser()
	if err != nil {
		return err
	}

	if err := m.repo.ArchiveSession(ctx, userID, sessionID); err != nil {
		slog.Error("Failed to archive session", "session_id", sessionID, "error", err)
		m.store.setError(msgArchiveFailed)
		return err
	}

	m.store.updateSession(sessionID, func(sess *model.Session) { sess.State = model.StateArchived })
	m.reloadLists(ctx)
	return nil
}

// Restore moves sessionID back to the ongoing list and switches the sidebar
// to it.
func (m *SessionManager) Restore(ctx context.Context, sessionID string) error {
	userID, err := m.store.requireUser()
	if err != nil {
		return err
	}

	if err := m.repo.RestoreSession(ctx, userID, sessionID); err != nil {
		slog.Error("Failed to restore session", "session_id", sessionID, "error", err)
		m.store.setError(msgRestoreFailed)
		return err
	}

	m.store.updateSession(sessionID, func(sess *model.Session) { sess.State = model.StateOngoing })
	if _, err := m.LoadArchived(ctx); err != nil {
		slog.Warn("Archived list not refreshed after restore", "error", err)
	}
	m.store.update(func(st *State) { st.View = ViewOngoing })
	if _, err := m.LoadSessions(ctx); err != nil {
		slog.Warn("Session list not refreshed after restore", "error", err)
	}
	return nil
}

// Delete soft-deletes sessionID. If it was current, the current session is
// cleared.
func (m *SessionManager) Delete(ctx context.Context, sessionID string) error {
	userID, err := m.store.requireUser()
	if err != nil {
		return err
	}

	if err := m.repo.DeleteSession(ctx, userID, sessionID); err != nil {
		slog.Error("Failed to delete session", "session_id", sessionID, "error", err)
		m.store.setError(msgDeleteFailed)
		return err
	}

	if current := m.store.Snapshot().CurrentSession; current != nil && current.ID == sessionID {
		m.store.nextSelection()
		m.animator.Cancel()
		m.store.update(func(st *State) {
			if st.CurrentSession != nil && st.CurrentSession.ID == sessionID {
				st.CurrentSession = nil
			}
		})
	}
	m.reloadLists(ctx)
	return nil
}

// Rename sets a new title. Only the list shown in the sidebar is re-fetched.
func (m *SessionManager) Rename(ctx context.Context, sessionID, title string) error {
	userID, err := m.store.requireUser()
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}

	if err := m.repo.UpdateSessionTitle(ctx, userID, sessionID, title); err != nil {
		slog.Error("Failed to update title", "session_id", sessionID, "error", err)
		m.store.setError(msgRenameFailed)
		return err
	}

	rename := func(sess *model.Session) { sess.Title = title }
	m.store.update(func(st *State) {
		st.Sessions = replaceSession(st.Sessions, sessionID, rename)
		st.ArchivedSessions = replaceSession(st.ArchivedSessions, sessionID, rename)
	})
	m.store.updateSession(sessionID, rename)

	if m.store.Snapshot().View == ViewArchived {
		_, err = m.LoadArchived(ctx)
	} else {
		_, err = m.LoadSessions(ctx)
	}
	if err != nil {
		slog.Warn("List not refreshed after rename", "error", err)
	}
	return nil
}

// DismissError clears the banner.
func (m *SessionManager) DismissError() {
	m.store.setError("")
}

// reloadLists refreshes the ongoing list and, when it is on screen, the
// archived list.
func (m *SessionManager) reloadLists(ctx context.Context) {
	if _, err := m.LoadSessions(ctx); err != nil {
		slog.Warn("Session list not refreshed", "error", err)
	}
	if m.store.Snapshot().View == ViewArchived {
		if _, err := m.LoadArchived(ctx); err != nil {
			slog.Warn("Archived list not refreshed", "error", err)
		}
	}
}
