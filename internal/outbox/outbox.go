// Package outbox keeps message pairs whose persistence call failed until the
// user asks to save them again.
package outbox

import (
	"context"
	"database/sql"
	"errors"

	"github.com/redis/go-redis/v9"

	"chatflow/client/internal/model"
)

// Driver names the storage backing an Outbox.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverSQLite Driver = "sqlite"
	DriverRedis  Driver = "redis"
)

var (
	ErrInvalidDriver = errors.New("outbox: invalid driver")
	ErrInvalidConfig = errors.New("outbox: invalid configuration")
)

// Outbox stores pending saves per user, oldest first.
type Outbox interface {
	Add(ctx context.Context, save *model.PendingSave) error
	List(ctx context.Context, userID string) ([]model.PendingSave, error)
	Remove(ctx context.Context, userID, id string) error
}

// Option configures New.
type Option func(*options)

type options struct {
	db  *sql.DB
	rdb *redis.Client
}

// WithDB sets the database used by the sqlite driver.
func WithDB(db *sql.DB) Option {
	return func(o *options) { o.db = db }
}

// WithRedisClient sets the client used by the redis driver.
func WithRedisClient(rdb *redis.Client) Option {
	return func(o *options) { o.rdb = rdb }
}

// New returns the Outbox for driver.
func New(driver Driver, opts ...Option) (Outbox, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	switch driver {
	case DriverMemory:
		return NewMemoryOutbox(), nil
	case DriverSQLite:
		if o.db == nil {
			return nil, ErrInvalidConfig
		}
		return NewSQLiteOutbox(o.db), nil
	case DriverRedis:
		if o.rdb == nil {
			return nil, ErrInvalidConfig
		}
		return NewRedisOutbox(o.rdb), nil
	default:
		return nil, ErrInvalidDriver
	}
}
