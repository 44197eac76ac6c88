package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DavideRizzari/movieverse/internal/cache"
	"github.com/DavideRizzari/movieverse/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func primaryTitles(n int) []domain.ProviderTitle {
	titles := make([]domain.ProviderTitle, n)
	for i := range titles {
		titles[i] = domain.ProviderTitle{
			ID:        100 + i,
			Title:     fmt.Sprintf("Movie %d", i),
			Year:      "2020",
			PosterURL: "N/A",
		}
	}
	return titles
}

func TestSearchPrimaryProvider(t *testing.T) {
	f := newTestFixture()

	f.primary.SearchByTitleFunc = func(ctx context.Context, query, language string) ([]domain.ProviderTitle, error) {
		if language != "it-IT" {
			t.Errorf("language = %v, want it-IT", language)
		}
		return primaryTitles(20), nil
	}
	f.primary.ExternalIDForFunc = func(ctx context.Context, titleID int) (string, error) {
		return fmt.Sprintf("tt%07d", titleID), nil
	}

	got, err := f.service.Search(context.Background(), "matrix", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []domain.MovieSummary{
		{Title: "Movie 0", Year: "2020", ImdbID: "tt0000100", Kind: "movie", PosterURL: "N/A"},
		{Title: "Movie 1", Year: "2020", ImdbID: "tt0000101", Kind: "movie", PosterURL: "N/A"},
		{Title: "Movie 2", Year: "2020", ImdbID: "tt0000102", Kind: "movie", PosterURL: "N/A"},
		{Title: "Movie 3", Year: "2020", ImdbID: "tt0000103", Kind: "movie", PosterURL: "N/A"},
		{Title: "Movie 4", Year: "2020", ImdbID: "tt0000104", Kind: "movie", PosterURL: "N/A"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}

	if calls := f.primary.ExternalIDCalls.Load(); calls != 5 {
		t.Errorf("identifier sub-lookups = %d, want 5", calls)
	}

	// One aggregate entry plus one identifier mapping per result.
	if f.queries.Len() != 6 {
		t.Errorf("cache entries = %d, want 6", f.queries.Len())
	}

	if calls := f.fallback.SearchCalls.Load(); calls != 0 {
		t.Errorf("fallback calls = %d, want 0", calls)
	}
}

func TestSearchCacheHit(t *testing.T) {
	f := newTestFixture()

	f.primary.SearchByTitleFunc = func(ctx context.Context, query, language string) ([]domain.ProviderTitle, error) {
		return primaryTitles(2), nil
	}
	f.primary.ExternalIDForFunc = func(ctx context.Context, titleID int) (string, error) {
		return fmt.Sprintf("tt%07d", titleID), nil
	}

	first, err := f.service.Search(context.Background(), "Matrix", "1999")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// Same query with different casing must be served from the cache.
	second, err := f.service.Search(context.Background(), "mAtRiX", "1999")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached result mismatch (-first +second):\n%s", diff)
	}

	if calls := f.primary.SearchCalls.Load(); calls != 1 {
		t.Errorf("primary search calls = %d, want 1", calls)
	}
}

func TestSearchExpiredEntryRefetched(t *testing.T) {
	f := newTestFixture()

	f.queries.Put(context.Background(), cache.SearchKey("matrix", ""),
		[]byte(`[{"Title":"Stale"}]`), time.Now().Add(-91*24*time.Hour))

	f.primary.SearchByTitleFunc = func(ctx context.Context, query, language string) ([]domain.ProviderTitle, error) {
		return primaryTitles(1), nil
	}
	f.primary.ExternalIDForFunc = func(ctx context.Context, titleID int) (string, error) {
		return "tt0000100", nil
	}

	got, err := f.service.Search(context.Background(), "matrix", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if calls := f.primary.SearchCalls.Load(); calls != 1 {
		t.Errorf("primary search calls = %d, want 1", calls)
	}
	if len(got) != 1 || got[0].Title != "Movie 0" {
		t.Errorf("Search() = %v, want the refetched result", got)
	}
}

func TestSearchDropsFailedSubLookups(t *testing.T) {
	f := newTestFixture()

	f.primary.SearchByTitleFunc = func(ctx context.Context, query, language string) ([]domain.ProviderTitle, error) {
		return primaryTitles(3), nil
	}
	f.primary.ExternalIDForFunc = func(ctx context.Context, titleID int) (string, error) {
		switch titleID {
		case 101:
			return "", errors.New("boom")
		case 102:
			return "", nil
		default:
			return fmt.Sprintf("tt%07d", titleID), nil
		}
	}

	got, err := f.service.Search(context.Background(), "matrix", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []domain.MovieSummary{
		{Title: "Movie 0", Year: "2020", ImdbID: "tt0000100", Kind: "movie", PosterURL: "N/A"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchFallbackChain(t *testing.T) {
	tests := []struct {
		name          string
		translate     func(text string) string
		fallbackFunc  func(query string) ([]domain.MovieSummary, error)
		wantTitles    []string
		wantFallbacks int64
	}{
		{
			name:      "translated query succeeds",
			translate: func(text string) string { return "Matrix" },
			fallbackFunc: func(query string) ([]domain.MovieSummary, error) {
				if query == "Matrix" {
					return []domain.MovieSummary{{Title: "The Matrix", ImdbID: "tt0133093"}}, nil
				}
				return nil, nil
			},
			wantTitles:    []string{"The Matrix"},
			wantFallbacks: 1,
		},
		{
			name:      "original query retried when translation finds nothing",
			translate: func(text string) string { return "garbled" },
			fallbackFunc: func(query string) ([]domain.MovieSummary, error) {
				if query == "Matrice" {
					return []domain.MovieSummary{{Title: "Matrice", ImdbID: "tt0000001"}}, nil
				}
				return nil, nil
			},
			wantTitles:    []string{"Matrice"},
			wantFallbacks: 2,
		},
		{
			name:      "translation passthrough queries once",
			translate: func(text string) string { return text },
			fallbackFunc: func(query string) ([]domain.MovieSummary, error) {
				return nil, nil
			},
			wantTitles:    nil,
			wantFallbacks: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFixture()

			f.primary.SearchByTitleFunc = func(ctx context.Context, query, language string) ([]domain.ProviderTitle, error) {
				return nil, errors.New("primary down")
			}
			f.translator.TranslateFunc = func(ctx context.Context, text string) string {
				return tt.translate(text)
			}
			f.fallback.SearchByTitleFunc = func(ctx context.Context, query, year string) ([]domain.MovieSummary, error) {
				return tt.fallbackFunc(query)
			}

			got, err := f.service.Search(context.Background(), "Matrice", "")
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			var gotTitles []string
			for _, movie := range got {
				gotTitles = append(gotTitles, movie.Title)
			}

			if diff := cmp.Diff(tt.wantTitles, gotTitles); diff != "" {
				t.Errorf("Search() mismatch (-want +got):\n%s", diff)
			}

			if calls := f.fallback.SearchCalls.Load(); calls != tt.wantFallbacks {
				t.Errorf("fallback calls = %d, want %d", calls, tt.wantFallbacks)
			}
		})
	}
}

func TestSearchFallbackSkipsResultsWithoutIdentifier(t *testing.T) {
	f := newTestFixture()

	f.primary.EnabledFunc = func() bool { return false }
	f.fallback.SearchByTitleFunc = func(ctx context.Context, query, year string) ([]domain.MovieSummary, error) {
		return []domain.MovieSummary{
			{Title: "No ID"},
			{Title: "Good", ImdbID: "tt0000001"},
		}, nil
	}

	got, err := f.service.Search(context.Background(), "something", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(got) != 1 || got[0].Title != "Good" {
		t.Errorf("Search() = %v, want only the identified result", got)
	}
}

func TestSearchAllProvidersFail(t *testing.T) {
	f := newTestFixture()

	f.primary.SearchByTitleFunc = func(ctx context.Context, query, language string) ([]domain.ProviderTitle, error) {
		return nil, errors.New("primary down")
	}
	f.fallback.SearchByTitleFunc = func(ctx context.Context, query, year string) ([]domain.MovieSummary, error) {
		return nil, errors.New("fallback down")
	}

	got, err := f.service.Search(context.Background(), "matrix", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(got) != 0 {
		t.Errorf("Search() = %v, want empty", got)
	}

	// Failed resolutions must not be pinned into the cache.
	if f.queries.Len() != 0 {
		t.Errorf("cache entries = %d, want 0", f.queries.Len())
	}
}
