package catalog

import (
	"io"
	"log/slog"

	"github.com/DavideRizzari/movieverse/internal/cache"
	"github.com/DavideRizzari/movieverse/internal/mocks"
)

type testFixture struct {
	service      *Service
	queries      *cache.MemoryStore
	streams      *cache.MemoryStore
	primary      *mocks.MockTitleProvider
	fallback     *mocks.MockFallbackProvider
	availability *mocks.MockAvailabilityProvider
	translator   *mocks.MockTranslator
}

func newTestFixture(opts ...func(*testFixture)) *testFixture {
	f := &testFixture{
		queries:      cache.NewMemoryStore(),
		streams:      cache.NewMemoryStore(),
		primary:      &mocks.MockTitleProvider{},
		fallback:     &mocks.MockFallbackProvider{},
		availability: &mocks.MockAvailabilityProvider{},
		translator:   &mocks.MockTranslator{},
	}

	for _, opt := range opts {
		opt(f)
	}

	f.service = NewService(Config{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		QueryStore:   f.queries,
		StreamStore:  f.streams,
		Primary:      f.primary,
		Fallback:     f.fallback,
		Availability: f.availability,
		Translator:   f.translator,
	})

	return f
}
