package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DavideRizzari/movieverse/internal/cache"
	"github.com/DavideRizzari/movieverse/internal/domain"
	"golang.org/x/sync/errgroup"
)

// idMapping is the cached payload of one identifier sub-lookup.
type idMapping struct {
	ImdbID string `json:"imdb_id"`
}

// resolveExternalIDs issues the identifier sub-lookup for every title
// concurrently and joins the results back to their originating positions, so
// the output preserves input order regardless of completion order. Titles
// whose lookup fails or resolves to nothing are dropped in place, not
// retried.
func (s *Service) resolveExternalIDs(ctx context.Context, titles []domain.ProviderTitle) []domain.MovieSummary {
	ids := make([]string, len(titles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSearchResults)

	for i, title := range titles {
		i, title := i, title
		g.Go(func() error {
			ids[i] = s.externalIDFor(gctx, title.ID)
			return nil
		})
	}

	// Sub-lookup failures surface as empty ids, never as errors.
	_ = g.Wait()

	summaries := make([]domain.MovieSummary, 0, len(titles))

	for i, title := range titles {
		if ids[i] == "" {
			continue
		}

		summaries = append(summaries, domain.MovieSummary{
			Title:     title.Title,
			Year:      title.Year,
			ImdbID:    ids[i],
			Kind:      domain.KindMovie,
			PosterURL: title.PosterURL,
		})
	}

	return summaries
}

// externalIDFor maps a primary-provider title id to the canonical identifier
// through the shared idmap cache namespace. Only successful mappings are
// cached; a title without an identifier is re-asked next time it shows up.
func (s *Service) externalIDFor(ctx context.Context, titleID int) string {
	key := cache.IDMapKey(titleID)

	var mapping idMapping
	if s.getFresh(ctx, s.queries, key, cache.IDMapTTL, &mapping) && mapping.ImdbID != "" {
		return mapping.ImdbID
	}

	imdbID, err := s.primary.ExternalIDFor(ctx, titleID)
	if err != nil {
		s.logger.Warn("identifier sub-lookup failed", "titleID", titleID, "error", err)
		return ""
	}

	if imdbID == "" {
		return ""
	}

	payload, err := json.Marshal(idMapping{ImdbID: imdbID})
	if err == nil {
		s.queries.Put(ctx, key, payload, time.Now())
	}

	return imdbID
}
