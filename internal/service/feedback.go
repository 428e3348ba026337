package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	app_errors "chatflow/client/internal/errors"
	"chatflow/client/internal/model"
	"chatflow/client/internal/repository"
)

// FeedbackType classifies a rating comment.
type FeedbackType string

const (
	FeedbackGeneral                 FeedbackType = "general"
	FeedbackAccuracy                FeedbackType = "accuracy"
	FeedbackHelpfulness             FeedbackType = "helpfulness"
	FeedbackFluency                 FeedbackType = "fluency"
	FeedbackCulturalAppropriateness FeedbackType = "cultural_appropriateness"
)

func (f FeedbackType) valid() bool {
	switch f {
	case FeedbackGeneral, FeedbackAccuracy, FeedbackHelpfulness, FeedbackFluency, FeedbackCulturalAppropriateness:
		return true
	}
	return false
}

const defaultHydrateConcurrency = 8

// FeedbackService keeps the feedback summaries of assistant messages in sync
// with the remote store.
type FeedbackService struct {
	store       *Store
	repo        repository.Repository
	concurrency int
}

func NewFeedbackService(store *Store, repo repository.Repository, concurrency int) *FeedbackService {
	if concurrency <= 0 {
		concurrency = defaultHydrateConcurrency
	}
	return &FeedbackService{store: store, repo: repo, concurrency: concurrency}
}

// Hydrate returns a copy of session whose assistant messages carry their
// feedback summary. A failed fetch yields the empty summary for that message
// only.
func (f *FeedbackService) Hydrate(ctx context.Context, userID string, session model.Session) model.Session {
	out := session.Clone()
	summaries := make([]*model.FeedbackSummary, len(out.Messages))

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, msg := range out.Messages {
		if msg.Type != model.MessageAssistant {
			continue
		}
		g.Go(func() error {
			summary, err := f.repo.GetFeedback(ctx, userID, msg.ID)
			if err != nil {
				slog.Debug("Feedback fetch failed, using empty summary", "message_id", msg.ID, "error", err)
				summary = model.EmptyFeedback()
			}
			summaries[i] = summary
			return nil
		})
	}
	_ = g.Wait()

	for i, summary := range summaries {
		if summary != nil {
			out.Messages[i].FeedbackSummary = summary
		}
	}
	return out
}

// RefreshOne re-fetches one message's summary and merges it into the current
// session. Failures leave the local summary untouched.
func (f *FeedbackService) RefreshOne(ctx context.Context, messageID string) error {
	userID, err := f.store.requireUser()
	if err != nil {
		return err
	}

	summary, err := f.repo.GetFeedback(ctx, userID, messageID)
	if err != nil {
		slog.Debug("Feedback refresh failed", "message_id", messageID, "error", err)
		return err
	}

	f.store.updateMessage(messageID, func(msg *model.Message) {
		if msg.Type == model.MessageAssistant {
			msg.FeedbackSummary = summary
		}
	})
	return nil
}

// SubmitRating posts a rating and optional comment, merges it locally and then
// refreshes the summary so the server's view wins.
func (f *FeedbackService) SubmitRating(ctx context.Context, messageID string, rating int, comment string, feedbackType FeedbackType) error {
	userID, err := f.store.requireUser()
	if err != nil {
		return err
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", app_errors.ErrValidation)
	}
	if feedbackType == "" {
		feedbackType = FeedbackGeneral
	}
	if !feedbackType.valid() {
		return fmt.Errorf("%w: unknown feedback type '%s'", app_errors.ErrValidation, feedbackType)
	}
	if err := f.requireAssistant(messageID); err != nil {
		return err
	}

	var commentPtr *string
	if comment != "" {
		commentPtr = &comment
	}
	req := &repository.CommentRequest{Rating: rating, Comment: commentPtr, FeedbackType: string(feedbackType)}
	if err := f.repo.SubmitComment(ctx, userID, messageID, req); err != nil {
		slog.Error("Failed to submit rating", "message_id", messageID, "error", err)
		f.store.setError(msgRatingFailed)
		return err
	}

	f.store.updateMessage(messageID, func(msg *model.Message) {
		msg.FeedbackSummary = mergeRating(msg.FeedbackSummary, rating, commentPtr)
	})

	_ = f.RefreshOne(ctx, messageID)
	return nil
}

// SetReaction stores a like, dislike or, with nil, clears the reaction.
func (f *FeedbackService) SetReaction(ctx context.Context, messageID string, reaction *model.Reaction) error {
	userID, err := f.store.requireUser()
	if err != nil {
		return err
	}
	if reaction != nil && *reaction != model.ReactionLike && *reaction != model.ReactionDislike {
		return fmt.Errorf("%w: unknown reaction '%s'", app_errors.ErrValidation, *reaction)
	}
	if err := f.requireAssistant(messageID); err != nil {
		return err
	}

	if err := f.repo.SetReaction(ctx, userID, messageID, reaction); err != nil {
		slog.Error("Failed to update reaction", "message_id", messageID, "error", err)
		f.store.setError(msgReactionFailed)
		return err
	}

	f.store.updateMessage(messageID, func(msg *model.Message) {
		msg.Reaction = reaction
	})
	return nil
}

// requireAssistant refuses feedback on a message known to be a user message.
func (f *FeedbackService) requireAssistant(messageID string) error {
	current := f.store.Snapshot().CurrentSession
	if current == nil {
		return nil
	}
	if idx := current.MessageIndex(messageID); idx >= 0 && current.Messages[idx].Type != model.MessageAssistant {
		return fmt.Errorf("%w: feedback is only accepted on assistant messages", app_errors.ErrValidation)
	}
	return nil
}

// mergeRating applies a rating optimistically. The comment count grows only
// when a non-empty comment replaces an empty one.
func mergeRating(prev *model.FeedbackSummary, rating int, comment *string) *model.FeedbackSummary {
	if prev == nil {
		prev = model.EmptyFeedback()
	}
	had := prev.UserComment != nil && strings.TrimSpace(*prev.UserComment) != ""
	will := comment != nil && strings.TrimSpace(*comment) != ""

	next := *prev
	if will && !had {
		next.CommentsCount++
	}
	if next.AvgRating == nil {
		avg := float64(rating)
		next.AvgRating = &avg
	}
	r := rating
	next.UserRating = &r
	next.UserComment = comment
	return &next
}
