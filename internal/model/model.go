package model

import (
	"time"
)

// SessionState is the server-confirmed lifecycle state of a session.
type SessionState string

const (
	StateOngoing  SessionState = "ongoing"
	StateArchived SessionState = "archived"
	StateDeleted  SessionState = "deleted"
)

// MessageType distinguishes the two authors of a conversation.
type MessageType string

const (
	MessageUser      MessageType = "user"
	MessageAssistant MessageType = "assistant"
)

// Reaction is a thumbs up/down on an assistant message. A nil *Reaction means
// "no reaction".
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Session stores metadata about a conversation and, when loaded in full, its
// ordered messages.
type Session struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Title     string       `json:"title"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	State     SessionState `json:"state,omitempty"`
	Messages  []Message    `json:"messages"`
}

// GenerationParams echoes the parameters a reply was generated with.
type GenerationParams struct {
	MaxNewTokens int `json:"max_new_tokens"`
	NumBeams     int `json:"num_beams"`
}

// MessageMetadata carries optional generation details for assistant messages.
type MessageMetadata struct {
	GenerationParams *GenerationParams `json:"generation_params,omitempty"`
}

// Message stores a single message in a session.
type Message struct {
	ID               string           `json:"id"`
	Type             MessageType      `json:"type"`
	Content          string           `json:"content"`
	Timestamp        time.Time        `json:"timestamp"`
	Metadata         *MessageMetadata `json:"metadata,omitempty"`
	Reaction         *Reaction        `json:"reaction"`
	InputTokens      *int             `json:"input_tokens,omitempty"`
	OutputTokens     *int             `json:"output_tokens,omitempty"`
	GenerationTimeMs *float64         `json:"generation_time_ms,omitempty"`
	FeedbackSummary  *FeedbackSummary `json:"feedbackSummary,omitempty"`
}

// FeedbackSummary aggregates the ratings and comments left on one assistant
// message, plus the viewing user's own rating.
type FeedbackSummary struct {
	AvgRating     *float64 `json:"avg_rating"`
	CommentsCount int      `json:"comments_count"`
	UserRating    *int     `json:"user_rating"`
	UserComment   *string  `json:"user_comment"`
}

// EmptyFeedback is the summary used when nothing is known about a message,
// including when fetching its summary failed.
func EmptyFeedback() *FeedbackSummary {
	return &FeedbackSummary{}
}

// Clone returns a copy of the session whose message slice can be modified
// without affecting the receiver. Message fields that are pointers are shared;
// they are never mutated in place, only replaced.
func (s Session) Clone() Session {
	out := s
	if s.Messages != nil {
		out.Messages = make([]Message, len(s.Messages))
		copy(out.Messages, s.Messages)
	}
	return out
}

// MessageIndex returns the position of the message with the given id, or -1.
func (s Session) MessageIndex(id string) int {
	for i := range s.Messages {
		if s.Messages[i].ID == id {
			return i
		}
	}
	return -1
}

// PendingSave is a message pair whose persistence call failed. It waits in the
// outbox until the user asks to retry the save.
type PendingSave struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	LastError string    `json:"last_error,omitempty"`
}
