package outbox_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatflow/client/internal/model"
	"chatflow/client/internal/outbox"
)

func pendingSave(id, userID string, createdAt time.Time) *model.PendingSave {
	return &model.PendingSave{
		ID:        id,
		UserID:    userID,
		SessionID: "s1",
		Messages: []model.Message{
			{ID: "u-" + id, Type: model.MessageUser, Content: "Hello"},
			{ID: "a-" + id, Type: model.MessageAssistant, Content: "ܫܠܡܐ"},
		},
		CreatedAt: createdAt,
		LastError: "remote service unavailable",
	}
}

func TestNew(t *testing.T) {
	t.Run("Success - memory", func(t *testing.T) {
		ob, err := outbox.New(outbox.DriverMemory)
		require.NoError(t, err)
		assert.NotNil(t, ob)
	})

	t.Run("Failure - sqlite without db", func(t *testing.T) {
		_, err := outbox.New(outbox.DriverSQLite)
		assert.ErrorIs(t, err, outbox.ErrInvalidConfig)
	})

	t.Run("Failure - redis without client", func(t *testing.T) {
		_, err := outbox.New(outbox.DriverRedis)
		assert.ErrorIs(t, err, outbox.ErrInvalidConfig)
	})

	t.Run("Failure - unknown driver", func(t *testing.T) {
		_, err := outbox.New("kafka")
		assert.ErrorIs(t, err, outbox.ErrInvalidDriver)
	})
}

func TestMemoryOutbox(t *testing.T) {
	ctx := context.Background()
	ob := outbox.NewMemoryOutbox()
	now := time.Now()

	require.NoError(t, ob.Add(ctx, pendingSave("p1", "u1", now)))
	require.NoError(t, ob.Add(ctx, pendingSave("p2", "u1", now.Add(time.Second))))
	require.NoError(t, ob.Add(ctx, pendingSave("p3", "u2", now)))

	saves, err := ob.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, "p1", saves[0].ID)

	require.NoError(t, ob.Remove(ctx, "u1", "p1"))
	saves, err = ob.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, "p2", saves[0].ID)

	other, err := ob.List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, other, 1, "users do not see each other's saves")
}

func setupSQLiteOutbox(t *testing.T) (outbox.Outbox, *sql.DB, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	ob, err := outbox.New(outbox.DriverSQLite, outbox.WithDB(db))
	require.NoError(t, err)
	return ob, db, mockDB
}

func TestSQLiteOutbox_Add(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		ob, db, mockDB := setupSQLiteOutbox(t)
		defer func() { _ = db.Close() }()

		save := pendingSave("p1", "u1", now)
		messages, err := json.Marshal(save.Messages)
		require.NoError(t, err)

		mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO pending_saves")).
			WithArgs("p1", "u1", "s1", string(messages), now, "remote service unavailable").
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, ob.Add(ctx, save))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - insert error", func(t *testing.T) {
		ob, db, mockDB := setupSQLiteOutbox(t)
		defer func() { _ = db.Close() }()

		mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO pending_saves")).WillReturnError(errors.New("disk full"))

		err := ob.Add(ctx, pendingSave("p1", "u1", now))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestSQLiteOutbox_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		ob, db, mockDB := setupSQLiteOutbox(t)
		defer func() { _ = db.Close() }()

		rows := sqlmock.NewRows([]string{"id", "user_id", "session_id", "messages", "created_at", "last_error"}).
			AddRow("p1", "u1", "s1", `[{"id":"u-p1","type":"user","content":"Hello","timestamp":"2025-01-01T10:00:00Z"}]`, now, "boom").
			AddRow("p2", "u1", "s2", `[]`, now.Add(time.Minute), nil)
		mockDB.ExpectQuery(regexp.QuoteMeta("FROM pending_saves")).WithArgs("u1").WillReturnRows(rows)

		saves, err := ob.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, saves, 2)
		assert.Equal(t, "Hello", saves[0].Messages[0].Content)
		assert.Equal(t, "boom", saves[0].LastError)
		assert.Empty(t, saves[1].LastError)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - corrupt messages column", func(t *testing.T) {
		ob, db, mockDB := setupSQLiteOutbox(t)
		defer func() { _ = db.Close() }()

		rows := sqlmock.NewRows([]string{"id", "user_id", "session_id", "messages", "created_at", "last_error"}).
			AddRow("p1", "u1", "s1", `not json`, now, nil)
		mockDB.ExpectQuery(regexp.QuoteMeta("FROM pending_saves")).WithArgs("u1").WillReturnRows(rows)

		_, err := ob.List(ctx, "u1")
		assert.Error(t, err)
	})
}

func TestSQLiteOutbox_Remove(t *testing.T) {
	ob, db, mockDB := setupSQLiteOutbox(t)
	defer func() { _ = db.Close() }()

	mockDB.ExpectExec(regexp.QuoteMeta("DELETE FROM pending_saves WHERE id = ? AND user_id = ?")).
		WithArgs("p1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, ob.Remove(context.Background(), "u1", "p1"))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRedisOutbox_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer func() { _ = rdb.Close() }()

	ob, err := outbox.New(outbox.DriverRedis, outbox.WithRedisClient(rdb))
	require.NoError(t, err)

	assert.Error(t, ob.Add(context.Background(), pendingSave("p1", "u1", time.Now())))
	_, err = ob.List(context.Background(), "u1")
	assert.Error(t, err)
}

// TestRedisOutbox runs against a live server when OUTBOX_TEST_REDIS_ADDR is set.
func TestRedisOutbox(t *testing.T) {
	addr := os.Getenv("OUTBOX_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("OUTBOX_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer func() { _ = rdb.Close() }()

	userID := "outbox-test-" + time.Now().Format("150405.000000")
	defer rdb.Del(ctx, "outbox:"+userID, "outbox:"+userID+":order")

	ob := outbox.NewRedisOutbox(rdb)
	now := time.Now()
	require.NoError(t, ob.Add(ctx, pendingSave("p2", userID, now.Add(time.Second))))
	require.NoError(t, ob.Add(ctx, pendingSave("p1", userID, now)))

	saves, err := ob.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, "p1", saves[0].ID, "ordered by creation time")
	assert.Equal(t, "ܫܠܡܐ", saves[0].Messages[1].Content)

	require.NoError(t, ob.Remove(ctx, userID, "p1"))
	saves, err = ob.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, "p2", saves[0].ID)
}
