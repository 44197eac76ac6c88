package catalog

import (
	"context"
	"errors"

	"github.com/DavideRizzari/movieverse/internal/cache"
	"github.com/DavideRizzari/movieverse/internal/domain"
)

// Details resolves the full record for a canonical identifier. The fallback
// provider is authoritative here; the primary is never consulted. Unknown
// identifiers and provider failures both surface as ErrRecordNotFound so the
// transport layer maps them to a single absent response.
func (s *Service) Details(ctx context.Context, imdbID string) (*domain.MovieDetails, error) {
	key := cache.DetailsKey(imdbID)

	var cached domain.MovieDetails
	if s.getFresh(ctx, s.queries, key, cache.DetailsTTL, &cached) {
		return &cached, nil
	}

	details, err := s.fallback.DetailsByID(ctx, imdbID)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			s.logger.Warn("details lookup failed", "imdbID", imdbID, "error", err)
		}
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		return nil, domain.ErrRecordNotFound
	}

	s.put(ctx, s.queries, key, details)

	return details, nil
}
