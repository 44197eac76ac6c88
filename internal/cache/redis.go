package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the hot cache tier. It stores the same payload/timestamp
// envelope as the durable tier so freshness decisions still belong to the
// caller; the Redis expiry is only an upper bound matching the family's TTL,
// keeping the hot tier from outliving the durable entry's usefulness.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	maxTTL time.Duration
	logger *slog.Logger
}

type redisEnvelope struct {
	Payload  []byte `json:"payload"`
	StoredAt int64  `json:"storedAt"`
}

func NewRedisStore(client redis.UniversalClient, prefix string, maxTTL time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		maxTTL: maxTTL,
		logger: logger,
	}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error("hot cache read failed, treating as miss", "key", key, "error", err)
		}
		return nil, time.Time{}, false
	}

	var envelope redisEnvelope

	err = json.Unmarshal(data, &envelope)
	if err != nil {
		r.logger.Error("hot cache entry undecodable, treating as miss", "key", key, "error", err)
		return nil, time.Time{}, false
	}

	return envelope.Payload, time.UnixMilli(envelope.StoredAt), true
}

func (r *RedisStore) Put(ctx context.Context, key string, payload []byte, now time.Time) {
	data, err := json.Marshal(redisEnvelope{Payload: payload, StoredAt: now.UnixMilli()})
	if err != nil {
		r.logger.Error("hot cache write failed", "key", key, "error", err)
		return
	}

	err = r.client.Set(ctx, r.prefix+key, data, r.maxTTL).Err()
	if err != nil {
		r.logger.Error("hot cache write failed", "key", key, "error", err)
	}
}
