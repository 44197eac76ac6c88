package catalog

import (
	"context"
	"math/rand"

	"github.com/DavideRizzari/movieverse/internal/domain"
)

// Trending returns a shuffled, size-bounded subset of the provider's daily
// trending window. The aggregate is deliberately not cached so repeat calls
// surface different titles, but each identifier sub-lookup goes through the
// same idmap cache namespace as search. An empty result means "temporarily
// unavailable", never an error.
func (s *Service) Trending(ctx context.Context) ([]domain.MovieSummary, error) {
	if !s.primary.Enabled() {
		return []domain.MovieSummary{}, nil
	}

	titles, err := s.primary.TrendingDaily(ctx, searchLanguage)
	if err != nil {
		s.logger.Warn("trending fetch failed", "error", err)
		return []domain.MovieSummary{}, nil
	}

	if len(titles) == 0 {
		s.logger.Info("trending window is empty")
		return []domain.MovieSummary{}, nil
	}

	// Shuffle a per-call copy; the service itself stays stateless.
	shuffled := make([]domain.ProviderTitle, len(titles))
	copy(shuffled, titles)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > trendingSize {
		shuffled = shuffled[:trendingSize]
	}

	summaries := s.resolveExternalIDs(ctx, shuffled)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
