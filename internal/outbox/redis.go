package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"chatflow/client/internal/model"
)

type redisOutbox struct {
	rdb *redis.Client
}

// NewRedisOutbox stores each user's pending saves in a hash, ordered by a
// sorted set scored on creation time.
func NewRedisOutbox(rdb *redis.Client) Outbox {
	return &redisOutbox{rdb: rdb}
}

// Key Generation Helpers
func (o *redisOutbox) savesKey(userID string) string { return fmt.Sprintf("outbox:%s", userID) }
func (o *redisOutbox) orderKey(userID string) string { return fmt.Sprintf("outbox:%s:order", userID) }

func (o *redisOutbox) Add(ctx context.Context, save *model.PendingSave) error {
	val, err := json.Marshal(save)
	if err != nil {
		return fmt.Errorf("could not marshal pending save: %w", err)
	}
	pipe := o.rdb.TxPipeline()
	pipe.HSet(ctx, o.savesKey(save.UserID), save.ID, val)
	pipe.ZAdd(ctx, o.orderKey(save.UserID), redis.Z{Score: float64(save.CreatedAt.UnixNano()), Member: save.ID})
	_, err = pipe.Exec(ctx)
	return err
}

func (o *redisOutbox) List(ctx context.Context, userID string) ([]model.PendingSave, error) {
	ids, err := o.rdb.ZRange(ctx, o.orderKey(userID), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.PendingSave{}, nil
		}
		return nil, err
	}
	if len(ids) == 0 {
		return []model.PendingSave{}, nil
	}

	vals, err := o.rdb.HMGet(ctx, o.savesKey(userID), ids...).Result()
	if err != nil {
		return nil, err
	}
	saves := make([]model.PendingSave, 0, len(vals))
	for _, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var save model.PendingSave
		if err := json.Unmarshal([]byte(raw), &save); err == nil {
			saves = append(saves, save)
		}
	}
	return saves, nil
}

func (o *redisOutbox) Remove(ctx context.Context, userID, id string) error {
	pipe := o.rdb.TxPipeline()
	pipe.HDel(ctx, o.savesKey(userID), id)
	pipe.ZRem(ctx, o.orderKey(userID), id)
	_, err := pipe.Exec(ctx)
	return err
}
