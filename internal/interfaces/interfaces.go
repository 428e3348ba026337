package interfaces

import (
	"context"

	"chatflow/client/internal/model"
	"chatflow/client/internal/service"
)

// The view API depends on these contracts instead of the concrete services so
// handlers can be tested against mocks.

// SessionService defines the contract for session selection, the sidebar lists
// and the lifecycle operations.
type SessionService interface {
	Snapshot() service.State
	Subscribe() (<-chan service.State, func())
	SetIdentity(ctx context.Context, userID string) error
	LoadView(ctx context.Context, view service.ListView) ([]model.Session, error)
	SetView(ctx context.Context, view service.ListView) error
	Select(ctx context.Context, sessionID string) error
	NewSession(ctx context.Context) (*model.Session, error)
	Archive(ctx context.Context, sessionID string) error
	Restore(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
	Rename(ctx context.Context, sessionID, title string) error
	DismissError()
}

// MessageDispatcher defines the contract for sending messages and draining the
// outbox of failed saves.
type MessageDispatcher interface {
	SendMessage(ctx context.Context, text string, params service.SendParams) (*service.Turn, error)
	RetryPendingSaves(ctx context.Context) (int, error)
	PendingSaves(ctx context.Context) ([]model.PendingSave, error)
}

// FeedbackService defines the contract for reactions and ratings.
type FeedbackService interface {
	SetReaction(ctx context.Context, messageID string, reaction *model.Reaction) error
	SubmitRating(ctx context.Context, messageID string, rating int, comment string, feedbackType service.FeedbackType) error
}

// SettingsService defines the contract for the locally stored generation defaults.
type SettingsService interface {
	Get(ctx context.Context) (*service.Settings, error)
	Save(ctx context.Context, settings *service.Settings) error
}

var (
	_ SessionService    = (*service.SessionManager)(nil)
	_ MessageDispatcher = (*service.Dispatcher)(nil)
	_ FeedbackService   = (*service.FeedbackService)(nil)
	_ SettingsService   = (*service.SettingsService)(nil)
)
