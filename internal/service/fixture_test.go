package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mock_llm "chatflow/client/internal/llm/mocks"
	"chatflow/client/internal/model"
	"chatflow/client/internal/outbox"
	mock_repo "chatflow/client/internal/repository/mocks"
	"chatflow/client/internal/service"
	"chatflow/client/internal/typing"
)

type fixture struct {
	store      *service.Store
	repo       *mock_repo.MockRepository
	gen        *mock_llm.MockGenerator
	animator   *typing.Animator
	outbox     outbox.Outbox
	feedback   *service.FeedbackService
	sessions   *service.SessionManager
	dispatcher *service.Dispatcher
}

func setup(t *testing.T, userID string, typingInterval time.Duration) *fixture {
	t.Helper()
	f := &fixture{
		store:  service.NewStore(userID),
		repo:   mock_repo.NewMockRepository(t),
		gen:    mock_llm.NewMockGenerator(t),
		outbox: outbox.NewMemoryOutbox(),
	}
	f.animator = typing.NewAnimator(typingInterval, f.store)
	f.feedback = service.NewFeedbackService(f.store, f.repo, 4)
	f.sessions = service.NewSessionManager(f.store, f.repo, f.animator, f.feedback)
	f.dispatcher = service.NewDispatcher(f.sessions, f.gen, f.outbox, nil)
	t.Cleanup(func() {
		f.animator.Cancel()
		f.dispatcher.Wait()
	})
	return f
}

// selectSession makes session current. Feedback lookups for its assistant
// messages must be mocked by the caller.
func (f *fixture) selectSession(t *testing.T, session *model.Session) {
	t.Helper()
	f.repo.On("GetSession", mock.Anything, f.store.Snapshot().UserID, session.ID).Return(session, nil).Once()
	require.NoError(t, f.sessions.Select(context.Background(), session.ID))
}

func waitTurn(t *testing.T, turn *service.Turn) (service.TurnOutcome, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	outcome, err := turn.Wait(ctx)
	require.NotErrorIs(t, err, context.DeadlineExceeded, "turn did not resolve")
	return outcome, err
}

func ptr[T any](v T) *T { return &v }
