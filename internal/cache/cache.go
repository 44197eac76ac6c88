// Package cache is the persistent key/value store for normalized provider
// responses. Entries carry their write timestamp; freshness is decided by the
// caller, which compares the entry's age against the TTL of its operation
// class. Entries are never proactively deleted.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TTLs by operation class. Descriptive metadata is near-immutable, so search,
// details and identifier mappings share a long window; availability windows
// change weekly.
const (
	SearchTTL    = 90 * 24 * time.Hour
	DetailsTTL   = SearchTTL
	IDMapTTL     = SearchTTL
	StreamingTTL = 7 * 24 * time.Hour
)

// Store is a key/value cache with upsert semantics (last write wins, one
// entry per key). Get never fails the caller: a backing-store error is logged
// by the implementation and surfaces as a miss. Put failures after a
// successful provider call are likewise logged and swallowed.
type Store interface {
	Get(ctx context.Context, key string) (payload []byte, storedAt time.Time, ok bool)
	Put(ctx context.Context, key string, payload []byte, now time.Time)
}

// Fresh reports whether an entry written at storedAt is still within ttl.
func Fresh(storedAt time.Time, ttl time.Duration, now time.Time) bool {
	return now.Sub(storedAt) < ttl
}

// SearchKey is case-insensitive in the query so that repeated searches that
// differ only in casing share one entry.
func SearchKey(query, year string) string {
	return fmt.Sprintf("search:%s:%s", strings.ToLower(strings.TrimSpace(query)), year)
}

func DetailsKey(imdbID string) string {
	return "details:" + imdbID
}

// IDMapKey caches the mapping from a primary-provider title id to the
// canonical identifier. Search and trending share this namespace, so either
// path can reuse a mapping resolved by the other.
func IDMapKey(titleID int) string {
	return "idmap:" + strconv.Itoa(titleID)
}

func StreamingKey(imdbID string) string {
	return "stream:" + imdbID
}
