package service

import (
	"sync"

	app_errors "chatflow/client/internal/errors"
	"chatflow/client/internal/model"
)

// ListView selects which session list the sidebar shows.
type ListView string

const (
	ViewOngoing  ListView = "ongoing"
	ViewArchived ListView = "archived"
)

// TypingState describes the animation in progress.
type TypingState struct {
	MessageID string `json:"message_id"`
	Revealed  int    `json:"revealed"`
	Total     int    `json:"total"`
}

// State is one immutable snapshot of the client. Values handed out by the
// Store are never modified afterwards; every change produces a new State.
type State struct {
	UserID           string          `json:"user_id"`
	CurrentSession   *model.Session  `json:"current_session"`
	Sessions         []model.Session `json:"sessions"`
	ArchivedSessions []model.Session `json:"archived_sessions"`
	View             ListView        `json:"view"`
	IsLoading        bool            `json:"is_loading"`
	Error            string          `json:"error,omitempty"`
	Typing           *TypingState    `json:"typing,omitempty"`
}

// Store is the single in-memory state container. All writes go through
// update, which swaps in a modified copy under one mutex.
type Store struct {
	mu        sync.Mutex
	state     State
	subs      map[int]chan State
	nextSub   int
	selection uint64
	closed    bool
}

func NewStore(userID string) *Store {
	return &Store{
		state: State{
			UserID:           userID,
			Sessions:         []model.Session{},
			ArchivedSessions: []model.Session{},
			View:             ViewOngoing,
		},
		subs: make(map[int]chan State),
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel that always holds the latest snapshot. Slow
// readers skip intermediate states. The channel is closed by the returned
// unsubscribe func or by Close.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 1)
	ch <- s.state
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

// Close ends every subscription. Later subscribers get the final snapshot on
// an already closed channel.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// update applies fn to a shallow copy of the state and publishes the result.
// fn must replace, never modify in place, any slice or pointer it changes.
func (s *Store) update(fn func(st *State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	fn(&next)
	s.state = next
	s.publishLocked()
	return next
}

func (s *Store) publishLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- s.state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s.state:
			default:
			}
		}
	}
}

// userID returns the caller identity, empty when unknown.
func (s *Store) userID() string {
	return s.Snapshot().UserID
}

// requireUser returns the caller identity or, when none is known, sets the
// re-authenticate banner and returns ErrIdentityMissing.
func (s *Store) requireUser() (string, error) {
	if uid := s.userID(); uid != "" {
		return uid, nil
	}
	s.setError(msgIdentityMissing)
	return "", app_errors.ErrIdentityMissing
}

func (s *Store) setError(msg string) {
	s.update(func(st *State) { st.Error = msg })
}

func (s *Store) setLoading(loading bool) {
	s.update(func(st *State) { st.IsLoading = loading })
}

// nextSelection invalidates loads started for an earlier selection and returns
// the token of the new one.
func (s *Store) nextSelection() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection++
	return s.selection
}

// selectionToken returns the token of the latest selection.
func (s *Store) selectionToken() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// updateSelection applies fn only if no newer selection started since token
// was taken.
func (s *Store) updateSelection(token uint64, fn func(st *State)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection != token {
		return false
	}
	next := s.state
	fn(&next)
	s.state = next
	s.publishLocked()
	return true
}

// updateSession applies fn to a private copy of the current session, only when
// the current session is still sessionID. It reports whether fn ran.
func (s *Store) updateSession(sessionID string, fn func(sess *model.Session)) bool {
	applied := false
	s.update(func(st *State) {
		if st.CurrentSession == nil || st.CurrentSession.ID != sessionID {
			return
		}
		sess := st.CurrentSession.Clone()
		fn(&sess)
		st.CurrentSession = &sess
		applied = true
	})
	return applied
}

// updateMessage applies fn to a copy of the message messageID in the current
// session.
func (s *Store) updateMessage(messageID string, fn func(msg *model.Message)) bool {
	applied := false
	s.update(func(st *State) {
		if st.CurrentSession == nil {
			return
		}
		idx := st.CurrentSession.MessageIndex(messageID)
		if idx < 0 {
			return
		}
		sess := st.CurrentSession.Clone()
		fn(&sess.Messages[idx])
		st.CurrentSession = &sess
		applied = true
	})
	return applied
}

// Reveal writes the typed prefix into the placeholder message.
func (s *Store) Reveal(messageID, prefix string, revealed, total int) {
	s.update(func(st *State) {
		st.Typing = &TypingState{MessageID: messageID, Revealed: revealed, Total: total}
		if st.CurrentSession == nil {
			return
		}
		idx := st.CurrentSession.MessageIndex(messageID)
		if idx < 0 {
			return
		}
		sess := st.CurrentSession.Clone()
		sess.Messages[idx].Content = prefix
		st.CurrentSession = &sess
	})
}

// Idle clears the typing indicator for messageID.
func (s *Store) Idle(messageID string) {
	s.update(func(st *State) {
		if st.Typing != nil && st.Typing.MessageID == messageID {
			st.Typing = nil
		}
	})
}

func replaceSession(list []model.Session, id string, fn func(sess *model.Session)) []model.Session {
	out := make([]model.Session, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
		}
	}
	return out
}
