package domain

// StreamingOffer is a single service offering a title in one region.
type StreamingOffer struct {
	ServiceID      string
	ServiceName    string
	ServiceLogoURL string
	DeepLink       string
	Region         string
}

// StreamingAvailability is the provider-shaped availability map: region code
// to the ordered list of offers the provider returned for that region. The
// full map is what gets cached; callers only ever see one chosen region.
type StreamingAvailability map[string][]StreamingOffer

// RegionOffers is the resolved output of the streaming resolver: the best
// region according to the priority list and its deduplicated offers. Within
// Offers, ServiceID is unique (first occurrence wins).
type RegionOffers struct {
	Region string
	Offers []StreamingOffer
}
