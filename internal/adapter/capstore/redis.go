package capstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a CapStore backed by a shared redis instance, for deployments
// where several serving instances must agree on display records.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an already-connected client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func redisKey(userID string, bannerID int64) string {
	return fmt.Sprintf("banner:last_shown:%s:%d", userID, bannerID)
}

func (r *Redis) LastShown(ctx context.Context, userID string, bannerID int64) (time.Time, bool, error) {
	val, err := r.client.Get(ctx, redisKey(userID, bannerID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed display record %q: %w", val, err)
	}
	return t, true, nil
}

// SetLastShown stores the instant without expiry: a "once" banner must stay
// suppressed indefinitely, so the records cannot be TTL-managed.
func (r *Redis) SetLastShown(ctx context.Context, userID string, bannerID int64, shownAt time.Time) error {
	return r.client.Set(ctx, redisKey(userID, bannerID), shownAt.UTC().Format(time.RFC3339Nano), 0).Err()
}
