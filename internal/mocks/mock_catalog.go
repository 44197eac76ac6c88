package mocks

import (
	"context"

	"github.com/DavideRizzari/movieverse/internal/domain"
)

type MockCatalog struct {
	domain.MovieCatalog
	SearchFunc       func(ctx context.Context, query, year string) ([]domain.MovieSummary, error)
	TrendingFunc     func(ctx context.Context) ([]domain.MovieSummary, error)
	DetailsFunc      func(ctx context.Context, imdbID string) (*domain.MovieDetails, error)
	AvailabilityFunc func(ctx context.Context, imdbID string) (*domain.RegionOffers, error)
}

func (m *MockCatalog) Search(ctx context.Context, query, year string) ([]domain.MovieSummary, error) {
	return m.SearchFunc(ctx, query, year)
}

func (m *MockCatalog) Trending(ctx context.Context) ([]domain.MovieSummary, error) {
	return m.TrendingFunc(ctx)
}

func (m *MockCatalog) Details(ctx context.Context, imdbID string) (*domain.MovieDetails, error) {
	return m.DetailsFunc(ctx, imdbID)
}

func (m *MockCatalog) Availability(ctx context.Context, imdbID string) (*domain.RegionOffers, error) {
	return m.AvailabilityFunc(ctx, imdbID)
}
