package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	s, err := rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, rdb *redis.Client, key string, v any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// Result reports how Aside satisfied a read.
type Result string

const (
	Hit   Result = "hit"
	Miss  Result = "miss"
	Error Result = "error"
)

// Aside tries Redis first; on a miss it calls fetch, which must populate dest,
// then stores dest with ttl. Cache failures degrade to a plain fetch and are
// reported through the returned Result, never as an error.
func Aside(ctx context.Context, rdb *redis.Client, key string, dest any, ttl time.Duration, fetch func() error) (Result, error) {
	result := Miss
	found, err := GetJSON(ctx, rdb, key, dest)
	if err != nil {
		result = Error
	} else if found {
		return Hit, nil
	}

	if err := fetch(); err != nil {
		return result, err
	}

	if err := SetJSON(ctx, rdb, key, dest, ttl); err != nil {
		result = Error
	}
	return result, nil
}
