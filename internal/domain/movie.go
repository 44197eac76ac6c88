package domain

import "context"

// FieldUnavailable is the placeholder the upstream providers use for fields
// they cannot supply (year without a release date, missing poster, ...). It
// is preserved end to end so the presentation layer can rely on it.
const FieldUnavailable = "N/A"

const KindMovie = "movie"

// MovieSummary is the shared output shape of the search and trending
// resolvers. ImdbID is the canonical cross-provider identifier and the join
// key for every other subsystem; a summary without one is never surfaced.
type MovieSummary struct {
	Title     string
	Year      string
	ImdbID    string
	Kind      string
	PosterURL string
}

// MovieDetails is the full per-title record served by the details lookup.
type MovieDetails struct {
	Title      string
	Year       string
	Rated      string
	Released   string
	Runtime    string
	Genre      string
	Director   string
	Actors     string
	Plot       string
	PosterURL  string
	ImdbRating string
	ImdbID     string
	Kind       string
}

// MovieCatalog is the aggregation layer consumed by the HTTP handlers. Every
// operation is total: provider failures degrade to empty results or
// ErrRecordNotFound, never to a transport error.
type MovieCatalog interface {
	Search(ctx context.Context, query, year string) ([]MovieSummary, error)
	Trending(ctx context.Context) ([]MovieSummary, error)
	Details(ctx context.Context, imdbID string) (*MovieDetails, error)
	Availability(ctx context.Context, imdbID string) (*RegionOffers, error)
}
