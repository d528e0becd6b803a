package strikes

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps strike counters and block flags in Redis so blocks survive
// restarts and are shared across instances. Keys:
//
//	strikes:<user>  counter, expires after Policy.Window
//	blocked:<user>  flag, expires after Policy.BlockDuration
type RedisStore struct {
	client *redis.Client
	policy Policy
}

func NewRedisStore(client *redis.Client, policy Policy) *RedisStore {
	return &RedisStore{client: client, policy: policy}
}

func (s *RedisStore) Register(ctx context.Context, userID string) (int, bool, error) {
	key := "strikes:" + userID
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, false, err
	}
	if count == 1 {
		// window starts at the first strike
		if err := s.client.Expire(ctx, key, s.policy.Window).Err(); err != nil {
			return int(count), false, err
		}
	}
	if int(count) >= s.policy.Limit {
		if err := s.client.Set(ctx, "blocked:"+userID, 1, s.policy.BlockDuration).Err(); err != nil {
			return int(count), false, err
		}
		return int(count), true, nil
	}
	return int(count), false, nil
}

func (s *RedisStore) IsBlocked(ctx context.Context, userID string) (bool, error) {
	n, err := s.client.Exists(ctx, "blocked:"+userID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
