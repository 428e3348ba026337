package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	app_errors "chatflow/client/internal/errors"
	"chatflow/client/internal/llm"
	"chatflow/client/internal/model"
	"chatflow/client/internal/outbox"
)

// SendParams overrides the generation defaults for one message. Zero values
// mean "use the settings".
type SendParams struct {
	MaxNewTokens int `json:"max_new_tokens,omitempty" validate:"omitempty,min=1,max=8192"`
	NumBeams     int `json:"num_beams,omitempty" validate:"omitempty,min=1,max=10"`
}

// TurnOutcome is how a send resolved.
type TurnOutcome string

const (
	TurnPersisted        TurnOutcome = "persisted"
	TurnSaveFailed       TurnOutcome = "save_failed"
	TurnGenerationFailed TurnOutcome = "generation_failed"
	TurnCancelled        TurnOutcome = "cancelled"
)

// Turn tracks one user message and the reply it asked for.
type Turn struct {
	SessionID     string `json:"session_id"`
	UserMessageID string `json:"user_message_id"`

	mu                 sync.Mutex
	assistantMessageID string
	done               chan struct{}
	outcome            TurnOutcome
	err                error
}

func newTurn(sessionID, userMessageID string) *Turn {
	return &Turn{SessionID: sessionID, UserMessageID: userMessageID, done: make(chan struct{})}
}

// AssistantMessageID is empty until the reply placeholder has been inserted.
func (t *Turn) AssistantMessageID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.assistantMessageID
}

func (t *Turn) setAssistant(id string) {
	t.mu.Lock()
	t.assistantMessageID = id
	t.mu.Unlock()
}

// Done is closed when the turn resolved.
func (t *Turn) Done() <-chan struct{} { return t.done }

// Wait blocks until the turn resolves or ctx ends.
func (t *Turn) Wait(ctx context.Context) (TurnOutcome, error) {
	select {
	case <-t.done:
		return t.outcome, t.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (t *Turn) finish(outcome TurnOutcome, err error) {
	t.outcome = outcome
	t.err = err
	close(t.done)
}

// Dispatcher runs the send workflow: optimistic insert, generation, typing
// animation, persistence and feedback refresh.
type Dispatcher struct {
	sessions *SessionManager
	gen      llm.Generator
	outbox   outbox.Outbox
	settings *SettingsService

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup

	newID func() string
	now   func() time.Time
}

func NewDispatcher(sessions *SessionManager, gen llm.Generator, ob outbox.Outbox, settings *SettingsService) *Dispatcher {
	return &Dispatcher{
		sessions: sessions,
		gen:      gen,
		outbox:   ob,
		settings: settings,
		inflight: make(map[string]struct{}),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// SendMessage appends text as a user message to the current session (creating
// one when there is none) and starts generating the reply in the background.
// Refusals (empty text, no identity, archived session, a turn still running
// for the session) return an error before anything is mutated.
func (d *Dispatcher) SendMessage(ctx context.Context, text string, params SendParams) (*Turn, error) {
	store := d.sessions.store

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", app_errors.ErrValidation)
	}
	userID, err := store.requireUser()
	if err != nil {
		return nil, err
	}

	session := store.Snapshot().CurrentSession
	if session != nil && !CanMutate(session) {
		store.setError(msgArchivedSend)
		return nil, fmt.Errorf("session %s: %w", session.ID, app_errors.ErrArchived)
	}
	if session != nil && d.busy(session.ID) {
		return nil, fmt.Errorf("%w: a reply for session %s is still in progress", app_errors.ErrConflict, session.ID)
	}

	if session == nil {
		session, err = d.sessions.NewSession(ctx)
		if err != nil {
			return nil, err
		}
		if !CanMutate(session) {
			store.setError(msgArchivedSend)
			return nil, fmt.Errorf("session %s: %w", session.ID, app_errors.ErrArchived)
		}
	}

	if !d.acquire(session.ID) {
		return nil, fmt.Errorf("%w: a reply for session %s is still in progress", app_errors.ErrConflict, session.ID)
	}

	userMsg := model.Message{
		ID:          d.newID(),
		Type:        model.MessageUser,
		Content:     text,
		Timestamp:   d.now(),
		InputTokens: estimateInputTokens(text),
	}

	store.update(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})
	selection := store.selectionToken()
	store.updateSession(session.ID, func(sess *model.Session) {
		sess.Messages = append(sess.Messages, userMsg)
	})

	turn := newTurn(session.ID, userMsg.ID)
	slog.Info("Message queued", "session_id", session.ID, "message_id", userMsg.ID)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.runTurn(context.WithoutCancel(ctx), userID, selection, turn, userMsg, d.resolveParams(text, params))
	}()
	return turn, nil
}

// Wait blocks until every turn started so far has resolved.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) runTurn(ctx context.Context, userID string, selection uint64, turn *Turn, userMsg model.Message, req *llm.GenerateRequest) {
	store := d.sessions.store

	resp, err := d.gen.Generate(ctx, req)
	if err != nil {
		slog.Error("Generation failed", "session_id", turn.SessionID, "error", err)
		errMsg := model.Message{
			ID:        d.newID(),
			Type:      model.MessageAssistant,
			Content:   msgGenerationErrText,
			Timestamp: d.now(),
		}
		store.update(func(st *State) {
			st.IsLoading = false
			st.Error = msgSendFailed
		})
		store.updateSession(turn.SessionID, func(sess *model.Session) {
			sess.Messages = append(sess.Messages, errMsg)
		})
		d.finish(turn, TurnGenerationFailed, err)
		return
	}

	assistantMsg := model.Message{
		ID:              d.newID(),
		Type:            model.MessageAssistant,
		Content:         resp.OutputText,
		Timestamp:       d.now(),
		FeedbackSummary: model.EmptyFeedback(),
	}
	if resp.GenerationParams != nil {
		assistantMsg.Metadata = &model.MessageMetadata{GenerationParams: resp.GenerationParams}
	}
	if m := resp.PerformanceMetrics; m != nil {
		assistantMsg.OutputTokens = m.OutputTokens
		assistantMsg.GenerationTimeMs = m.GenerationTimeMs
	}
	turn.setAssistant(assistantMsg.ID)

	// A selection started since the send means the user is leaving this
	// session, even while the new one is still loading. The reply is then
	// stored without animation.
	if store.selectionToken() != selection {
		store.updateSession(turn.SessionID, func(sess *model.Session) {
			sess.Messages = append(sess.Messages, assistantMsg)
		})
		store.setLoading(false)
		slog.Info("Session switched before reply, skipping animation", "session_id", turn.SessionID)
		d.persist(ctx, userID, turn, []model.Message{userMsg, assistantMsg})
		return
	}

	placeholder := assistantMsg
	placeholder.Content = ""
	visible := store.updateSession(turn.SessionID, func(sess *model.Session) {
		sess.Messages = append(sess.Messages, placeholder)
	})
	store.setLoading(false)

	if visible {
		animator := d.sessions.animator
		run := animator.Start(resp.OutputText, assistantMsg.ID, func() {
			store.updateSession(turn.SessionID, func(sess *model.Session) {
				if idx := sess.MessageIndex(assistantMsg.ID); idx >= 0 {
					sess.Messages[idx] = assistantMsg
				}
			})
		})
		// Switches bump the token before cancelling, so either this check or
		// the switch's Cancel catches a run started mid-switch.
		if store.selectionToken() != selection {
			animator.Stop(run)
		}
		<-run.Done()
		if !run.Completed() {
			slog.Info("Reply animation cancelled, messages not saved", "session_id", turn.SessionID, "message_id", assistantMsg.ID)
			d.finish(turn, TurnCancelled, nil)
			return
		}
	}

	d.persist(ctx, userID, turn, []model.Message{userMsg, assistantMsg})
}

// persist saves the pair. A failure keeps both messages on screen and queues
// the pair in the outbox.
func (d *Dispatcher) persist(ctx context.Context, userID string, turn *Turn, messages []model.Message) {
	store := d.sessions.store

	if err := d.sessions.repo.AppendMessages(ctx, userID, turn.SessionID, messages); err != nil {
		slog.Error("Failed to save messages", "session_id", turn.SessionID, "error", err)
		store.setError(msgSaveFailed)

		pending := &model.PendingSave{
			ID:        d.newID(),
			UserID:    userID,
			SessionID: turn.SessionID,
			Messages:  messages,
			CreatedAt: d.now(),
			LastError: err.Error(),
		}
		if d.outbox != nil {
			if obErr := d.outbox.Add(ctx, pending); obErr != nil {
				slog.Error("Failed to queue pending save", "session_id", turn.SessionID, "error", obErr)
			}
		}
		d.finish(turn, TurnSaveFailed, err)
		return
	}

	d.saved(ctx, turn.SessionID, messages)
	d.finish(turn, TurnPersisted, nil)
}

// saved bumps the session's updated_at locally and refreshes the reply's
// feedback summary.
func (d *Dispatcher) saved(ctx context.Context, sessionID string, messages []model.Message) {
	store := d.sessions.store
	now := d.now()

	store.update(func(st *State) {
		st.Sessions = replaceSession(st.Sessions, sessionID, func(sess *model.Session) { sess.UpdatedAt = now })
	})
	store.updateSession(sessionID, func(sess *model.Session) { sess.UpdatedAt = now })

	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Type == model.MessageAssistant {
			_ = d.sessions.feedback.RefreshOne(ctx, messages[i].ID)
			break
		}
	}
}

// RetryPendingSaves re-issues every queued save of the current user. Saved
// records leave the outbox; failed ones stay. It returns how many were saved.
func (d *Dispatcher) RetryPendingSaves(ctx context.Context) (int, error) {
	store := d.sessions.store
	userID, err := store.requireUser()
	if err != nil {
		return 0, err
	}
	if d.outbox == nil {
		return 0, nil
	}

	pending, err := d.outbox.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("could not list pending saves: %w", err)
	}

	saved := 0
	var errs []error
	for _, p := range pending {
		if err := d.sessions.repo.AppendMessages(ctx, userID, p.SessionID, p.Messages); err != nil {
			slog.Warn("Pending save still failing", "pending_id", p.ID, "session_id", p.SessionID, "error", err)
			errs = append(errs, err)
			continue
		}
		if err := d.outbox.Remove(ctx, userID, p.ID); err != nil {
			slog.Error("Failed to remove pending save", "pending_id", p.ID, "error", err)
		}
		d.saved(ctx, p.SessionID, p.Messages)
		saved++
	}

	if len(errs) > 0 {
		store.setError(msgSaveFailed)
		return saved, errors.Join(errs...)
	}
	slog.Info("Pending saves retried", "saved", saved)
	return saved, nil
}

// PendingSaves lists the outbox of the current user.
func (d *Dispatcher) PendingSaves(ctx context.Context) ([]model.PendingSave, error) {
	userID, err := d.sessions.store.requireUser()
	if err != nil {
		return nil, err
	}
	if d.outbox == nil {
		return []model.PendingSave{}, nil
	}
	return d.outbox.List(ctx, userID)
}

func (d *Dispatcher) resolveParams(text string, params SendParams) *llm.GenerateRequest {
	settings := d.settings.Current()
	req := &llm.GenerateRequest{
		InputText:    text,
		MaxNewTokens: settings.MaxNewTokens(text),
		NumBeams:     settings.NumBeams,
	}
	if params.MaxNewTokens > 0 {
		req.MaxNewTokens = params.MaxNewTokens
	}
	if params.NumBeams > 0 {
		req.NumBeams = params.NumBeams
	}
	return req
}

// finish frees the session for the next send, then resolves the turn.
func (d *Dispatcher) finish(turn *Turn, outcome TurnOutcome, err error) {
	d.release(turn.SessionID)
	turn.finish(outcome, err)
}

func (d *Dispatcher) busy(sessionID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.inflight[sessionID]
	return ok
}

func (d *Dispatcher) acquire(sessionID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.inflight[sessionID]; ok {
		return false
	}
	d.inflight[sessionID] = struct{}{}
	return true
}

func (d *Dispatcher) release(sessionID string) {
	d.mu.Lock()
	delete(d.inflight, sessionID)
	d.mu.Unlock()
}

// estimateInputTokens approximates the token count of a user message as
// words plus a quarter of its length, at least 1.
func estimateInputTokens(text string) *int {
	n := strings.Count(text, " ") + 1 + utf8.RuneCountInString(text)/4
	if n < 1 {
		n = 1
	}
	return &n
}
