package domain

import "context"

// ProviderTitle is one raw item from the primary provider's search or
// trending endpoints, normalized at the client boundary but not yet joined
// to a canonical identifier.
type ProviderTitle struct {
	ID        int
	Title     string
	Year      string
	PosterURL string
}

// TitleProvider is the primary metadata provider (search, trending and
// identifier mapping). Enabled reports whether the provider is configured;
// a disabled provider is skipped, not an error.
type TitleProvider interface {
	Enabled() bool
	SearchByTitle(ctx context.Context, query, language string) ([]ProviderTitle, error)
	TrendingDaily(ctx context.Context, language string) ([]ProviderTitle, error)
	ExternalIDFor(ctx context.Context, titleID int) (string, error)
}

// FallbackProvider is the secondary search provider, keyed directly by the
// canonical identifier scheme so its results need no mapping step.
type FallbackProvider interface {
	SearchByTitle(ctx context.Context, query, year string) ([]MovieSummary, error)
	DetailsByID(ctx context.Context, imdbID string) (*MovieDetails, error)
}

// AvailabilityProvider returns per-region streaming availability for one
// title. An empty (or nil) map means the provider knows nothing about the
// title.
type AvailabilityProvider interface {
	AvailabilityFor(ctx context.Context, imdbID string) (StreamingAvailability, error)
}

// Translator is a best-effort helper: on any failure the original text
// passes through unchanged, so it never returns an error.
type Translator interface {
	Translate(ctx context.Context, text string) string
}
