package mocks

import (
	"context"
	"time"
)

type MockCacheStore struct {
	GetFunc func(ctx context.Context, key string) ([]byte, time.Time, bool)
	PutFunc func(ctx context.Context, key string, payload []byte, now time.Time)
}

func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool) {
	if m.GetFunc == nil {
		return nil, time.Time{}, false
	}
	return m.GetFunc(ctx, key)
}

func (m *MockCacheStore) Put(ctx context.Context, key string, payload []byte, now time.Time) {
	if m.PutFunc != nil {
		m.PutFunc(ctx, key, payload, now)
	}
}
