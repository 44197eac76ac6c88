package cache

import (
	"context"
	"time"
)

// TieredStore reads through a hot tier into a durable one, backfilling the
// hot tier on a durable hit with the entry's original timestamp so freshness
// is judged identically on both tiers.
type TieredStore struct {
	hot     Store
	durable Store
}

func NewTieredStore(hot, durable Store) *TieredStore {
	return &TieredStore{
		hot:     hot,
		durable: durable,
	}
}

func (t *TieredStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool) {
	payload, storedAt, ok := t.hot.Get(ctx, key)
	if ok {
		return payload, storedAt, true
	}

	payload, storedAt, ok = t.durable.Get(ctx, key)
	if !ok {
		return nil, time.Time{}, false
	}

	t.hot.Put(ctx, key, payload, storedAt)

	return payload, storedAt, true
}

func (t *TieredStore) Put(ctx context.Context, key string, payload []byte, now time.Time) {
	t.durable.Put(ctx, key, payload, now)
	t.hot.Put(ctx, key, payload, now)
}
