package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "chatflow/client/internal/errors"
	"chatflow/client/internal/llm"
	"chatflow/client/internal/model"
	"chatflow/client/internal/service"
)

func helloReply() *llm.GenerateResponse {
	return &llm.GenerateResponse{
		OutputText:       "ܫܠܡܐ",
		GenerationParams: &model.GenerationParams{MaxNewTokens: 150, NumBeams: 2},
		PerformanceMetrics: &llm.PerformanceMetrics{
			OutputTokens:     ptr(4),
			GenerationTimeMs: ptr(812.5),
		},
	}
}

func pairMatcher(user, assistant string) interface{} {
	return mock.MatchedBy(func(msgs []model.Message) bool {
		return len(msgs) == 2 &&
			msgs[0].Type == model.MessageUser && msgs[0].Content == user &&
			msgs[1].Type == model.MessageAssistant && msgs[1].Content == assistant
	})
}

func TestDispatcher_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - new session, Hello, Syriac reply", func(t *testing.T) {
		// ARRANGE
		f := setup(t, "u1", time.Millisecond)
		f.repo.On("CreateSession", mock.Anything, "u1", "New Chat").
			Return(&model.Session{ID: "s1", Title: "New Chat", State: model.StateOngoing}, nil).Once()
		f.gen.On("Generate", mock.Anything, &llm.GenerateRequest{InputText: "Hello", MaxNewTokens: 150, NumBeams: 2}).
			Return(helloReply(), nil).Once()
		f.repo.On("AppendMessages", mock.Anything, "u1", "s1", pairMatcher("Hello", "ܫܠܡܐ")).Return(nil).Once()
		f.repo.On("GetFeedback", mock.Anything, "u1", mock.Anything).Return(model.EmptyFeedback(), nil).Once()

		// ACT
		turn, err := f.dispatcher.SendMessage(ctx, "Hello", service.SendParams{})
		require.NoError(t, err)
		outcome, err := waitTurn(t, turn)

		// ASSERT
		require.NoError(t, err)
		assert.Equal(t, service.TurnPersisted, outcome)

		st := f.store.Snapshot()
		require.NotNil(t, st.CurrentSession)
		msgs := st.CurrentSession.Messages
		require.Len(t, msgs, 2)
		assert.Equal(t, model.MessageUser, msgs[0].Type)
		assert.Equal(t, "Hello", msgs[0].Content)
		assert.Equal(t, turn.UserMessageID, msgs[0].ID)
		assert.Equal(t, 2, *msgs[0].InputTokens)
		assert.Equal(t, model.MessageAssistant, msgs[1].Type)
		assert.Equal(t, "ܫܠܡܐ", msgs[1].Content)
		assert.Equal(t, turn.AssistantMessageID(), msgs[1].ID)
		assert.Equal(t, 4, *msgs[1].OutputTokens)
		assert.Equal(t, 2, msgs[1].Metadata.GenerationParams.NumBeams)
		assert.NotNil(t, msgs[1].FeedbackSummary)
		assert.NotEqual(t, msgs[0].ID, msgs[1].ID)

		assert.False(t, st.IsLoading)
		assert.Empty(t, st.Error)
		assert.Nil(t, st.Typing)
		assert.False(t, st.Sessions[0].UpdatedAt.IsZero(), "list entry updated_at is bumped after save")
		f.repo.AssertNumberOfCalls(t, "AppendMessages", 1)
	})

	t.Run("Success - caller parameters override defaults", func(t *testing.T) {
		f := setup(t, "u1", time.Millisecond)
		f.selectSession(t, &model.Session{ID: "s1", State: model.StateOngoing})
		long := strings.Repeat("x", 100)
		f.gen.On("Generate", mock.Anything, &llm.GenerateRequest{InputText: long, MaxNewTokens: 250, NumBeams: 4}).
			Return(&llm.GenerateResponse{OutputText: "ok"}, nil).Once()
		f.repo.On("AppendMessages", mock.Anything, "u1", "s1", mock.Anything).Return(nil).Once()
		f.repo.On("GetFeedback", mock.Anything, "u1", mock.Anything).Return(model.EmptyFeedback(), nil).Once()

		turn, err := f.dispatcher.SendMessage(ctx, long, service.SendParams{NumBeams: 4})
		require.NoError(t, err)
		outcome, err := waitTurn(t, turn)

		require.NoError(t, err)
		assert.Equal(t, service.TurnPersisted, outcome)
	})

	t.Run("Failure - archived session is never mutated", func(t *testing.T) {
		f := setup(t, "u1", time.Millisecond)
		f.selectSession(t, &model.Session{ID: "s1", State: model.StateOngoing, Messages: []model.Message{
			{ID: "m1", Type: model.MessageUser, Content: "earlier"},
		}})
		f.repo.On("ArchiveSession", mock.Anything, "u1", "s1").Return(nil).Once()
		f.repo.On("ListSessions", mock.Anything, "u1").Return([]model.Session{}, nil).Once()
		require.NoError(t, f.sessions.Archive(ctx, "s1"))

		turn, err := f.dispatcher.SendMessage(ctx, "Hello", service.SendParams{})

		assert.Nil(t, turn)
		assert.ErrorIs(t, err, app_errors.ErrArchived)
		st := f.store.Snapshot()
		assert.Len(t, st.CurrentSession.Messages, 1)
		assert.Equal(t, "Cannot send messages to archived chats. Please restore the chat first.", st.Error)
		f.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("Failure - empty text", func(t *testing.T) {
		f := setup(t, "u1", time.Millisecond)

		_, err := f.dispatcher.SendMessage(ctx, "   ", service.SendParams{})

		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Failure - identity missing", func(t *testing.T) {
		f := setup(t, "", time.Millisecond)

		_, err := f.dispatcher.SendMessage(ctx, "Hello", service.SendParams{})

		assert.ErrorIs(t, err, app_errors.ErrIdentityMissing)
		assert.Equal(t, "User ID is missing. Please try logging out and back in.", f.store.Snapshot().Error)
	})

	t.Run("Failure - session creation fails", func(t *testing.T) {
		f := setup(t, "u1", time.Millisecond)
		f.repo.On("CreateSession", mock.Anything, "u1", "New Chat").Return(nil, app_errors.ErrUnavailable).Once()

		_, err := f.dispatcher.SendMessage(ctx, "Hello", service.SendParams{})

		assert.ErrorIs(t, err, app_errors.ErrUnavailable)
		st := f.store.Snapshot()
		assert.Nil(t, st.CurrentSession)
		assert.Equal(t, "Failed to create new session", st.Error)
	})

	t.Run("Failure - generation error keeps the user message", func(t *testing.T) {
		f := setup(t, "u1", time.Millisecond)
		f.selectSession(t, &model.Session{ID: "s1", State: model.StateOngoing})
		f.gen.On("Generate", mock.Anything, mock.Anything).Return(nil, app_errors.ErrUnavailable).Once()

		turn, err := f.dispatcher.SendMessage(ctx, "Hello", service.SendParams{})
		require.NoError(t, err)
		outcome, err := waitTurn(t, turn)

		assert.Equal(t, service.TurnGenerationFailed, outcome)
		assert.ErrorIs(t, err, app_errors.ErrUnavailable)
		st := f.store.Snapshot()
		require.Len(t, st.CurrentSession.Messages, 2)
		assert.Equal(t, "Hello", st.CurrentSession.Messages[0].Content)
		assert.Equal(t, model.MessageAssistant, st.CurrentSession.Messages[1].Type)
		assert.Equal(t, "Sorry, I encountered an error while processing your request. Please try again.", st.CurrentSession.Messages[1].Content)
		assert.Equal(t, "Failed to send message. Please try again.", st.Error)
		assert.False(t, st.IsLoading)
		f.repo.AssertNotCalled(t, "AppendMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - second send while a reply is pending", func(t *testing.T) {
		f := setup(t, "u1", time.Millisecond)
		f.selectSession(t, &model.Session{ID: "s1", State: model.StateOngoing})
		release := make(chan struct{})
		f.gen.On("Generate", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { <-release }).
			Return(nil, app_errors.ErrUnavailable).Once()

		turn, err := f.dispatcher.SendMessage(ctx, "first", service.SendParams{})
		require.NoError(t, err)

		_, err = f.dispatcher.SendMessage(ctx, "second", service.SendParams{})
		assert.ErrorIs(t, err, app_errors.ErrConflict)
		assert.Len(t, f.store.Snapshot().CurrentSession.Messages, 1, "refused send does not mutate")

		close(release)
		_, _ = waitTurn(t, turn)
	})
}

func TestDispatcher_PersistenceFailure(t *testing.T) {
	ctx := context.Background()

	// ARRANGE
	f := setup(t, "u1", time.Millisecond)
	f.selectSession(t, &model.Session{ID: "s1", State: model.StateOngoing})
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(helloReply(), nil).Once()
	f.repo.On("AppendMessages", mock.Anything, "u1", "s1", pairMatcher("Hello", "ܫܠܡܐ")).
		Return(app_errors.ErrUnavailable).Once()

	// ACT
	turn, err := f.dispatcher.SendMessage(ctx, "Hello", service.SendParams{})
	require.NoError(t, err)
	outcome, err := waitTurn(t, turn)

	// ASSERT
	assert.Equal(t, service.TurnSaveFailed, outcome)
	assert.ErrorIs(t, err, app_errors.ErrUnavailable)

	st := f.store.Snapshot()
	require.Len(t, st.CurrentSession.Messages, 2, "no rollback on save failure")
	assert.Equal(t, "ܫܠܡܐ", st.CurrentSession.Messages[1].Content)
	assert.Equal(t, "Failed to save messages", st.Error)

	pending, err := f.dispatcher.PendingSaves(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "s1", pending[0].SessionID)
	assert.Len(t, pending[0].Messages, 2)

	t.Run("RetryPendingSaves - still failing", func(t *testing.T) {
		f.repo.On("AppendMessages", mock.Anything, "u1", "s1", mock.Anything).Return(app_errors.ErrUnavailable).Once()

		saved, err := f.dispatcher.RetryPendingSaves(ctx)

		assert.Error(t, err)
		assert.Equal(t, 0, saved)
		pending, _ := f.dispatcher.PendingSaves(ctx)
		assert.Len(t, pending, 1)
	})

	t.Run("RetryPendingSaves - healthy backend empties the outbox", func(t *testing.T) {
		f.repo.On("AppendMessages", mock.Anything, "u1", "s1", pairMatcher("Hello", "ܫܠܡܐ")).Return(nil).Once()
		f.repo.On("GetFeedback", mock.Anything, "u1", mock.Anything).Return(model.EmptyFeedback(), nil).Once()

		saved, err := f.dispatcher.RetryPendingSaves(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, saved)
		pending, _ := f.dispatcher.PendingSaves(ctx)
		assert.Empty(t, pending)
	})
}

func TestDispatcher_SwitchDuringAnimation(t *testing.T) {
	ctx := context.Background()

	// ARRANGE
	f := setup(t, "u1", 20*time.Millisecond)
	f.selectSession(t, &model.Session{ID: "A", State: model.StateOngoing})
	f.gen.On("Generate", mock.Anything, mock.Anything).
		Return(&llm.GenerateResponse{OutputText: strings.Repeat("long reply ", 20)}, nil).Once()

	turn, err := f.dispatcher.SendMessage(ctx, "Hello", service.SendParams{})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		st := f.store.Snapshot()
		return st.Typing != nil && st.Typing.Revealed > 0
	}, 2*time.Second, time.Millisecond)

	// ACT
	f.selectSession(t, &model.Session{ID: "B", State: model.StateOngoing, Messages: []model.Message{
		{ID: "b1", Type: model.MessageUser, Content: "other chat"},
	}})
	outcome, err := waitTurn(t, turn)

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, service.TurnCancelled, outcome)

	time.Sleep(60 * time.Millisecond)
	st := f.store.Snapshot()
	assert.Equal(t, "B", st.CurrentSession.ID)
	require.Len(t, st.CurrentSession.Messages, 1, "no tick reaches the new session")
	assert.Equal(t, "other chat", st.CurrentSession.Messages[0].Content)
	assert.Nil(t, st.Typing)
	f.repo.AssertNotCalled(t, "AppendMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_ReplyDuringSessionLoad(t *testing.T) {
	ctx := context.Background()

	// ARRANGE
	f := setup(t, "u1", 20*time.Millisecond)
	f.selectSession(t, &model.Session{ID: "A", State: model.StateOngoing})

	generated := make(chan time.Time)
	reply := strings.Repeat("x", 30)
	f.gen.On("Generate", mock.Anything, mock.Anything).
		WaitUntil(generated).
		Return(&llm.GenerateResponse{OutputText: reply}, nil).Once()
	f.repo.On("AppendMessages", mock.Anything, "u1", "A", pairMatcher("Hello", reply)).Return(nil).Once()
	f.repo.On("GetFeedback", mock.Anything, "u1", mock.Anything).Return(model.EmptyFeedback(), nil).Once()

	loadStarted := make(chan struct{})
	loadReleased := make(chan struct{})
	sessionB := &model.Session{ID: "B", State: model.StateOngoing, Messages: []model.Message{
		{ID: "b1", Type: model.MessageUser, Content: "other chat"},
	}}
	f.repo.On("GetSession", mock.Anything, "u1", "B").
		Run(func(mock.Arguments) {
			close(loadStarted)
			<-loadReleased
		}).
		Return(sessionB, nil).Once()

	turn, err := f.dispatcher.SendMessage(ctx, "Hello", service.SendParams{})
	require.NoError(t, err)

	// ACT
	selected := make(chan error, 1)
	go func() { selected <- f.sessions.Select(ctx, "B") }()
	<-loadStarted
	close(generated)
	outcome, err := waitTurn(t, turn)

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, service.TurnPersisted, outcome)
	_, active := f.animator.Active()
	assert.False(t, active, "no animation starts while B is loading")

	close(loadReleased)
	require.NoError(t, <-selected)

	time.Sleep(60 * time.Millisecond)
	st := f.store.Snapshot()
	require.NotNil(t, st.CurrentSession)
	assert.Equal(t, "B", st.CurrentSession.ID)
	require.Len(t, st.CurrentSession.Messages, 1)
	assert.Equal(t, "other chat", st.CurrentSession.Messages[0].Content)
	assert.Nil(t, st.Typing)
	_, active = f.animator.Active()
	assert.False(t, active)
}
