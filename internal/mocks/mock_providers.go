package mocks

import (
	"context"
	"sync/atomic"

	"github.com/DavideRizzari/movieverse/internal/domain"
)

type MockTitleProvider struct {
	domain.TitleProvider
	EnabledFunc       func() bool
	SearchByTitleFunc func(ctx context.Context, query, language string) ([]domain.ProviderTitle, error)
	TrendingDailyFunc func(ctx context.Context, language string) ([]domain.ProviderTitle, error)
	ExternalIDForFunc func(ctx context.Context, titleID int) (string, error)

	SearchCalls     atomic.Int64
	TrendingCalls   atomic.Int64
	ExternalIDCalls atomic.Int64
}

func (m *MockTitleProvider) Enabled() bool {
	if m.EnabledFunc == nil {
		return true
	}
	return m.EnabledFunc()
}

func (m *MockTitleProvider) SearchByTitle(ctx context.Context, query, language string) ([]domain.ProviderTitle, error) {
	m.SearchCalls.Add(1)
	return m.SearchByTitleFunc(ctx, query, language)
}

func (m *MockTitleProvider) TrendingDaily(ctx context.Context, language string) ([]domain.ProviderTitle, error) {
	m.TrendingCalls.Add(1)
	return m.TrendingDailyFunc(ctx, language)
}

func (m *MockTitleProvider) ExternalIDFor(ctx context.Context, titleID int) (string, error) {
	m.ExternalIDCalls.Add(1)
	return m.ExternalIDForFunc(ctx, titleID)
}

type MockFallbackProvider struct {
	domain.FallbackProvider
	SearchByTitleFunc func(ctx context.Context, query, year string) ([]domain.MovieSummary, error)
	DetailsByIDFunc   func(ctx context.Context, imdbID string) (*domain.MovieDetails, error)

	SearchCalls  atomic.Int64
	DetailsCalls atomic.Int64
}

func (m *MockFallbackProvider) SearchByTitle(ctx context.Context, query, year string) ([]domain.MovieSummary, error) {
	m.SearchCalls.Add(1)
	return m.SearchByTitleFunc(ctx, query, year)
}

func (m *MockFallbackProvider) DetailsByID(ctx context.Context, imdbID string) (*domain.MovieDetails, error) {
	m.DetailsCalls.Add(1)
	return m.DetailsByIDFunc(ctx, imdbID)
}

type MockAvailabilityProvider struct {
	domain.AvailabilityProvider
	AvailabilityForFunc func(ctx context.Context, imdbID string) (domain.StreamingAvailability, error)

	Calls atomic.Int64
}

func (m *MockAvailabilityProvider) AvailabilityFor(ctx context.Context, imdbID string) (domain.StreamingAvailability, error) {
	m.Calls.Add(1)
	return m.AvailabilityForFunc(ctx, imdbID)
}

// MockTranslator echoes its input unless TranslateFunc is set, matching the
// pass-through contract of the real client.
type MockTranslator struct {
	domain.Translator
	TranslateFunc func(ctx context.Context, text string) string
}

func (m *MockTranslator) Translate(ctx context.Context, text string) string {
	if m.TranslateFunc == nil {
		return text
	}
	return m.TranslateFunc(ctx, text)
}
