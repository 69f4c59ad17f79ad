package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Namespace prefixes for the two copies of each entry: the live copy carries
// the TTL and is what invalidation deletes; the stale copy has no TTL and
// backs the stale-while-error fallback.
const (
	livePrefix  = "rodmar:q:"
	stalePrefix = "rodmar:s:"
)

// ErrMiss is returned by Get when neither a live nor (for GetStale) a stale
// copy exists.
var ErrMiss = errors.New("cache miss")

// Store is the shared query cache. Invalidation is idempotent: deleting an
// absent key is a no-op, so over-invalidating is always safe.
type Store interface {
	// Get unmarshals the live copy into dest. Returns ErrMiss when absent.
	Get(ctx context.Context, key Key, dest any) error
	// GetStale unmarshals the last-known-good copy, regardless of TTL.
	GetStale(ctx context.Context, key Key, dest any) error
	// Set writes both the live copy (with ttl) and the stale shadow copy.
	Set(ctx context.Context, key Key, value any, ttl time.Duration) error
	// Invalidate removes the live copies of the given keys.
	Invalidate(ctx context.Context, keys ...Key) error
	// InvalidateMatching removes every live copy whose key satisfies the
	// predicate (tuple match, empty slots match anything).
	InvalidateMatching(ctx context.Context, pred Key) error
}

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps a go-redis client as a Store.
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

var _ Store = (*redisStore)(nil)

func (s *redisStore) Get(ctx context.Context, key Key, dest any) error {
	data, err := s.rdb.Get(ctx, livePrefix+key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache get %s: %w", key, err)
	}
	return json.Unmarshal(data, dest)
}

func (s *redisStore) GetStale(ctx context.Context, key Key, dest any) error {
	data, err := s.rdb.Get(ctx, stalePrefix+key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache get stale %s: %w", key, err)
	}
	return json.Unmarshal(data, dest)
}

func (s *redisStore) Set(ctx context.Context, key Key, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, livePrefix+key.String(), data, ttl)
	pipe.Set(ctx, stalePrefix+key.String(), data, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Invalidate(ctx context.Context, keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = livePrefix + k.String()
	}
	if err := s.rdb.Del(ctx, names...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (s *redisStore) InvalidateMatching(ctx context.Context, pred Key) error {
	var cursor uint64
	pattern := livePrefix + pred.Pattern()
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache invalidate matching %s: %w", pattern, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
