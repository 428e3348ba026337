package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"chatflow/client/internal/model"
)

type sqliteOutbox struct {
	db *sql.DB
}

// NewSQLiteOutbox stores pending saves in the pending_saves table.
func NewSQLiteOutbox(db *sql.DB) Outbox {
	return &sqliteOutbox{db: db}
}

func (o *sqliteOutbox) Add(ctx context.Context, save *model.PendingSave) error {
	messages, err := json.Marshal(save.Messages)
	if err != nil {
		return fmt.Errorf("could not marshal messages: %w", err)
	}

	query := `
		INSERT INTO pending_saves (id, user_id, session_id, messages, created_at, last_error)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = o.db.ExecContext(ctx, query,
		save.ID,
		save.UserID,
		save.SessionID,
		string(messages),
		save.CreatedAt.UTC(),
		save.LastError,
	)
	if err != nil {
		return fmt.Errorf("could not insert pending save: %w", err)
	}
	return nil
}

func (o *sqliteOutbox) List(ctx context.Context, userID string) ([]model.PendingSave, error) {
	query := `
		SELECT id, user_id, session_id, messages, created_at, last_error
		FROM pending_saves
		WHERE user_id = ?
		ORDER BY created_at ASC
	`
	rows, err := o.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	saves := []model.PendingSave{}
	for rows.Next() {
		var save model.PendingSave
		var messages string
		var createdAt time.Time
		var lastError sql.NullString

		if err := rows.Scan(&save.ID, &save.UserID, &save.SessionID, &messages, &createdAt, &lastError); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(messages), &save.Messages); err != nil {
			return nil, fmt.Errorf("could not decode messages of pending save %s: %w", save.ID, err)
		}
		save.CreatedAt = createdAt
		save.LastError = lastError.String
		saves = append(saves, save)
	}
	return saves, rows.Err()
}

func (o *sqliteOutbox) Remove(ctx context.Context, userID, id string) error {
	query := "DELETE FROM pending_saves WHERE id = ? AND user_id = ?"
	_, err := o.db.ExecContext(ctx, query, id, userID)
	return err
}
