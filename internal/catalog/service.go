// Package catalog is the external data aggregation layer: it resolves
// searches, trending lists, title details and streaming availability against
// the upstream providers, merges their differently-shaped output into the
// domain types and serves repeated requests from the cache store. The
// service holds no per-request state; all durable state lives in the cache.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/DavideRizzari/movieverse/internal/cache"
	"github.com/DavideRizzari/movieverse/internal/domain"
)

const (
	// maxSearchResults bounds a search response, and with it the number of
	// identifier sub-lookups a single request can fan out.
	maxSearchResults = 5

	// trendingSize bounds the per-call trending subset.
	trendingSize = 12

	// searchLanguage is the fixed display language asked of the primary
	// provider.
	searchLanguage = "it-IT"
)

type Service struct {
	logger       *slog.Logger
	queries      cache.Store
	streams      cache.Store
	primary      domain.TitleProvider
	fallback     domain.FallbackProvider
	availability domain.AvailabilityProvider
	translator   domain.Translator
}

type Config struct {
	Logger *slog.Logger

	// QueryStore caches search aggregates, details and identifier mappings;
	// StreamStore caches raw availability maps.
	QueryStore  cache.Store
	StreamStore cache.Store

	Primary      domain.TitleProvider
	Fallback     domain.FallbackProvider
	Availability domain.AvailabilityProvider
	Translator   domain.Translator
}

func NewService(cfg Config) *Service {
	return &Service{
		logger:       cfg.Logger,
		queries:      cfg.QueryStore,
		streams:      cfg.StreamStore,
		primary:      cfg.Primary,
		fallback:     cfg.Fallback,
		availability: cfg.Availability,
		translator:   cfg.Translator,
	}
}

// getFresh returns a cache entry only when it is younger than ttl. Stale and
// missing entries look the same to callers; stale rows stay in place until
// the next successful write overwrites them.
func (s *Service) getFresh(ctx context.Context, store cache.Store, key string, ttl time.Duration, dst any) bool {
	payload, storedAt, ok := store.Get(ctx, key)
	if !ok || !cache.Fresh(storedAt, ttl, time.Now()) {
		return false
	}

	err := json.Unmarshal(payload, dst)
	if err != nil {
		s.logger.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return false
	}

	return true
}

func (s *Service) put(ctx context.Context, store cache.Store, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("failed to encode cache entry", "key", key, "error", err)
		return
	}

	store.Put(ctx, key, payload, time.Now())
}
