package feedback

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// SeenStore keeps, per guest, how many answered items they have
// acknowledged. It lives server side so the unread badge survives
// device switches.
type SeenStore interface {
	SeenCount(ctx context.Context, uid string) (int, error)
	SetSeen(ctx context.Context, uid string, count int) error
}

// RedisSeenStore stores the marker under feedback:seen:{uid}.
type RedisSeenStore struct {
	client *redis.Client
}

// NewRedisSeenStore creates a Redis-backed seen store.
func NewRedisSeenStore(client *redis.Client) *RedisSeenStore {
	return &RedisSeenStore{client: client}
}

func seenKey(uid string) string {
	return "feedback:seen:" + uid
}

// SeenCount returns the stored marker, zero when the guest has never
// opened the widget.
func (s *RedisSeenStore) SeenCount(ctx context.Context, uid string) (int, error) {
	v, err := s.client.Get(ctx, seenKey(uid)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get seen marker: %w", err)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// SetSeen stores the marker.
func (s *RedisSeenStore) SetSeen(ctx context.Context, uid string, count int) error {
	if err := s.client.Set(ctx, seenKey(uid), count, 0).Err(); err != nil {
		return fmt.Errorf("set seen marker: %w", err)
	}
	return nil
}

// Unread computes the badge count from the number of answered items
// and the guest's seen marker. A stale marker larger than the answered
// count (item deleted after being seen) clamps to zero.
func Unread(answered, seen int) int {
	if seen >= answered {
		return 0
	}
	return answered - seen
}
