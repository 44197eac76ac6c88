package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DavideRizzari/movieverse/internal/cache"
	"github.com/DavideRizzari/movieverse/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func TestAvailabilityRegionPriority(t *testing.T) {
	tests := []struct {
		name         string
		availability domain.StreamingAvailability
		wantRegion   string
	}{
		{
			name: "highest priority region wins",
			availability: domain.StreamingAvailability{
				"us": {{ServiceID: "netflix"}},
				"de": {{ServiceID: "netflix"}},
			},
			wantRegion: "de",
		},
		{
			name: "priority region with only duplicate-free offers",
			availability: domain.StreamingAvailability{
				"it": {{ServiceID: "prime"}},
				"us": {{ServiceID: "netflix"}},
			},
			wantRegion: "it",
		},
		{
			name: "unlisted regions fall back to lexical order",
			availability: domain.StreamingAvailability{
				"jp": {{ServiceID: "netflix"}},
				"br": {{ServiceID: "netflix"}},
			},
			wantRegion: "br",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFixture()
			f.availability.AvailabilityForFunc = func(ctx context.Context, imdbID string) (domain.StreamingAvailability, error) {
				return tt.availability, nil
			}

			got, err := f.service.Availability(context.Background(), "tt0133093")
			if err != nil {
				t.Fatalf("Availability() error = %v", err)
			}

			if got.Region != tt.wantRegion {
				t.Errorf("Availability() region = %v, want %v", got.Region, tt.wantRegion)
			}
		})
	}
}

func TestAvailabilityDeduplicatesServices(t *testing.T) {
	f := newTestFixture()

	f.availability.AvailabilityForFunc = func(ctx context.Context, imdbID string) (domain.StreamingAvailability, error) {
		return domain.StreamingAvailability{
			"it": {
				{ServiceID: "netflix", ServiceName: "Netflix", DeepLink: "https://netflix.example/sub"},
				{ServiceID: "netflix", ServiceName: "Netflix", DeepLink: "https://netflix.example/rent"},
				{ServiceID: "prime", ServiceName: "Prime Video", DeepLink: "https://prime.example"},
			},
		}, nil
	}

	got, err := f.service.Availability(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("Availability() error = %v", err)
	}

	want := &domain.RegionOffers{
		Region: "it",
		Offers: []domain.StreamingOffer{
			{ServiceID: "netflix", ServiceName: "Netflix", DeepLink: "https://netflix.example/sub", Region: "it"},
			{ServiceID: "prime", ServiceName: "Prime Video", DeepLink: "https://prime.example", Region: "it"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Availability() mismatch (-want +got):\n%s", diff)
	}
}

func TestAvailabilityAbsentNotCached(t *testing.T) {
	tests := []struct {
		name string
		fn   func(ctx context.Context, imdbID string) (domain.StreamingAvailability, error)
	}{
		{
			name: "provider has no data",
			fn: func(ctx context.Context, imdbID string) (domain.StreamingAvailability, error) {
				return nil, nil
			},
		},
		{
			name: "provider failure",
			fn: func(ctx context.Context, imdbID string) (domain.StreamingAvailability, error) {
				return nil, errors.New("rapidapi down")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFixture()
			f.availability.AvailabilityForFunc = tt.fn

			_, err := f.service.Availability(context.Background(), "tt0133093")
			if !errors.Is(err, domain.ErrRecordNotFound) {
				t.Fatalf("Availability() error = %v, want ErrRecordNotFound", err)
			}

			if f.streams.Len() != 0 {
				t.Errorf("cache entries = %d, want 0", f.streams.Len())
			}

			// Absent results are retried on the next request.
			_, err = f.service.Availability(context.Background(), "tt0133093")
			if !errors.Is(err, domain.ErrRecordNotFound) {
				t.Fatalf("Availability() error = %v, want ErrRecordNotFound", err)
			}

			if calls := f.availability.Calls.Load(); calls != 2 {
				t.Errorf("provider calls = %d, want 2", calls)
			}
		})
	}
}

func TestAvailabilityCachesFullRegionMap(t *testing.T) {
	f := newTestFixture()

	f.availability.AvailabilityForFunc = func(ctx context.Context, imdbID string) (domain.StreamingAvailability, error) {
		return domain.StreamingAvailability{
			"it": {{ServiceID: "netflix"}},
			"us": {{ServiceID: "hulu"}},
		}, nil
	}

	_, err := f.service.Availability(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("Availability() error = %v", err)
	}

	payload, _, ok := f.streams.Get(context.Background(), cache.StreamingKey("tt0133093"))
	if !ok {
		t.Fatal("expected a cached availability entry")
	}

	var cached domain.StreamingAvailability
	if err := json.Unmarshal(payload, &cached); err != nil {
		t.Fatalf("failed to decode cached entry: %v", err)
	}

	if len(cached) != 2 {
		t.Errorf("cached regions = %d, want the full map (2)", len(cached))
	}
}

func TestAvailabilityCacheHitRecomputesSelection(t *testing.T) {
	f := newTestFixture()

	availability := domain.StreamingAvailability{
		"fr": {
			{ServiceID: "canal", ServiceName: "Canal+"},
			{ServiceID: "canal", ServiceName: "Canal+"},
		},
	}
	payload, err := json.Marshal(availability)
	if err != nil {
		t.Fatal(err)
	}
	f.streams.Put(context.Background(), cache.StreamingKey("tt0133093"), payload, time.Now())

	got, err := f.service.Availability(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("Availability() error = %v", err)
	}

	if calls := f.availability.Calls.Load(); calls != 0 {
		t.Errorf("provider calls = %d, want 0", calls)
	}

	if got.Region != "fr" || len(got.Offers) != 1 {
		t.Errorf("Availability() = %+v, want one deduplicated fr offer", got)
	}
}

func TestAvailabilityExpiredEntryRefetched(t *testing.T) {
	f := newTestFixture()

	stale, err := json.Marshal(domain.StreamingAvailability{"us": {{ServiceID: "stale"}}})
	if err != nil {
		t.Fatal(err)
	}
	f.streams.Put(context.Background(), cache.StreamingKey("tt0133093"), stale, time.Now().Add(-8*24*time.Hour))

	f.availability.AvailabilityForFunc = func(ctx context.Context, imdbID string) (domain.StreamingAvailability, error) {
		return domain.StreamingAvailability{"it": {{ServiceID: "netflix"}}}, nil
	}

	got, err := f.service.Availability(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("Availability() error = %v", err)
	}

	if calls := f.availability.Calls.Load(); calls != 1 {
		t.Errorf("provider calls = %d, want 1", calls)
	}
	if got.Region != "it" {
		t.Errorf("Availability() region = %v, want it", got.Region)
	}
}
