package catalog

import (
	"context"
	"slices"

	"github.com/DavideRizzari/movieverse/internal/cache"
	"github.com/DavideRizzari/movieverse/internal/domain"
)

// regionPriority orders the regions a caller is assumed to care about. The
// first region present in a title's availability map wins; regions outside
// the list are considered only when none of these match.
var regionPriority = []string{"it", "fr", "es", "de", "gb", "us"}

// Availability resolves streaming offers for one title. The cache holds the
// provider's full availability map, so region selection and deduplication are
// recomputed on every call, hits included. A title with no offers anywhere is
// reported as ErrRecordNotFound and deliberately left out of the cache: a
// missing catalog entry is the one result likely to change soon.
func (s *Service) Availability(ctx context.Context, imdbID string) (*domain.RegionOffers, error) {
	key := cache.StreamingKey(imdbID)

	var cached domain.StreamingAvailability
	if s.getFresh(ctx, s.streams, key, cache.StreamingTTL, &cached) {
		if offers := chooseRegion(cached); offers != nil {
			return offers, nil
		}
		return nil, domain.ErrRecordNotFound
	}

	availability, err := s.availability.AvailabilityFor(ctx, imdbID)
	if err != nil {
		s.logger.Warn("availability lookup failed", "imdbID", imdbID, "error", err)
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		return nil, domain.ErrRecordNotFound
	}

	offers := chooseRegion(availability)
	if offers == nil {
		return nil, domain.ErrRecordNotFound
	}

	s.put(ctx, s.streams, key, availability)

	return offers, nil
}

// chooseRegion picks the highest-priority region that has at least one offer
// left after deduplication. Regions outside the priority list are tried in
// lexical order so the choice is stable for a given availability map.
func chooseRegion(availability domain.StreamingAvailability) *domain.RegionOffers {
	tried := make(map[string]bool, len(regionPriority))

	for _, region := range regionPriority {
		tried[region] = true
		if offers := dedupeOffers(region, availability[region]); len(offers) > 0 {
			return &domain.RegionOffers{Region: region, Offers: offers}
		}
	}

	regions := make([]string, 0, len(availability))
	for region := range availability {
		regions = append(regions, region)
	}
	slices.Sort(regions)

	for _, region := range regions {
		if tried[region] {
			continue
		}
		if offers := dedupeOffers(region, availability[region]); len(offers) > 0 {
			return &domain.RegionOffers{Region: region, Offers: offers}
		}
	}

	return nil
}

// dedupeOffers collapses a region's offers to one per service, keeping the
// first occurrence. Providers report the same service once per plan
// (subscription, rent, buy); callers only care whether the title is there.
func dedupeOffers(region string, offers []domain.StreamingOffer) []domain.StreamingOffer {
	if len(offers) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(offers))
	deduped := make([]domain.StreamingOffer, 0, len(offers))

	for _, offer := range offers {
		if offer.ServiceID == "" || seen[offer.ServiceID] {
			continue
		}
		seen[offer.ServiceID] = true
		offer.Region = region
		deduped = append(deduped, offer)
	}

	return deduped
}
