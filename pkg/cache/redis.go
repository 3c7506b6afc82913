package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis implements Store on a go-redis client. Entries carry no TTL;
// consistency relies on invalidation-on-write.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}

func (r *Redis) DeleteByPrefix(ctx context.Context, prefix string) error {
	keys, err := r.rdb.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return err
	}
	return r.Delete(ctx, keys...)
}
