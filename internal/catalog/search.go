package catalog

import (
	"context"

	"github.com/DavideRizzari/movieverse/internal/cache"
	"github.com/DavideRizzari/movieverse/internal/domain"
)

// Search resolves a free-text query to at most five summaries. Providers are
// tried in fixed order: primary (with per-item identifier sub-lookups), then
// the fallback with a best-effort translated query, then the fallback once
// more with the original query if translation changed it. The aggregate is
// cached only on success, so a failed resolution is retried by the next call
// rather than pinned for the TTL window.
func (s *Service) Search(ctx context.Context, query, year string) ([]domain.MovieSummary, error) {
	key := cache.SearchKey(query, year)

	var cached []domain.MovieSummary
	if s.getFresh(ctx, s.queries, key, cache.SearchTTL, &cached) {
		return cached, nil
	}

	if results, ok := s.searchPrimary(ctx, query); ok {
		s.put(ctx, s.queries, key, results)
		return results, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if results, ok := s.searchFallback(ctx, query, year); ok {
		s.put(ctx, s.queries, key, results)
		return results, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info("search exhausted all providers", "query", query)

	return []domain.MovieSummary{}, nil
}

func (s *Service) searchPrimary(ctx context.Context, query string) ([]domain.MovieSummary, bool) {
	if !s.primary.Enabled() {
		return nil, false
	}

	titles, err := s.primary.SearchByTitle(ctx, query, searchLanguage)
	if err != nil {
		s.logger.Warn("primary provider search failed", "query", query, "error", err)
		return nil, false
	}

	if len(titles) == 0 {
		return nil, false
	}

	if len(titles) > maxSearchResults {
		titles = titles[:maxSearchResults]
	}

	summaries := s.resolveExternalIDs(ctx, titles)
	if len(summaries) == 0 {
		s.logger.Info("primary provider results had no resolvable identifiers", "query", query)
		return nil, false
	}

	return summaries, true
}

func (s *Service) searchFallback(ctx context.Context, query, year string) ([]domain.MovieSummary, bool) {
	translated := s.translator.Translate(ctx, query)

	if results, ok := s.queryFallback(ctx, translated, year); ok {
		return results, true
	}

	// Last resort: the untranslated query, once, in case translation
	// mangled a title that the fallback provider knows verbatim.
	if translated != query {
		if results, ok := s.queryFallback(ctx, query, year); ok {
			return results, true
		}
	}

	return nil, false
}

func (s *Service) queryFallback(ctx context.Context, query, year string) ([]domain.MovieSummary, bool) {
	results, err := s.fallback.SearchByTitle(ctx, query, year)
	if err != nil {
		s.logger.Warn("fallback provider search failed", "query", query, "error", err)
		return nil, false
	}

	usable := make([]domain.MovieSummary, 0, len(results))
	for _, result := range results {
		if result.ImdbID == "" {
			continue
		}
		usable = append(usable, result)
		if len(usable) == maxSearchResults {
			break
		}
	}

	if len(usable) == 0 {
		return nil, false
	}

	return usable, true
}
