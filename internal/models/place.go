package models

// LatLng is a plain coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceResult is the normalized shape of a single location returned by search endpoints.
type PlaceResult struct {
	PlaceID          string   `json:"placeId"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Location         *LatLng  `json:"location,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"userRatingsTotal,omitempty"`
	Types            []string `json:"types"`
	BusinessStatus   string   `json:"businessStatus,omitempty"`
	PriceLevel       *int     `json:"priceLevel,omitempty"`
	PhotoURL         string   `json:"photoUrl,omitempty"`
	GoogleMapsURL    string   `json:"googleMapsUrl"`
	EmbedMapURL      string   `json:"embedMapUrl"`
}

// OpeningHours summarizes a place's schedule.
type OpeningHours struct {
	OpenNow     *bool    `json:"openNow,omitempty"`
	WeekdayText []string `json:"weekdayText"`
}

// Review is a single user review attached to a place.
type Review struct {
	AuthorName   string `json:"authorName"`
	Rating       int    `json:"rating"`
	Text         string `json:"text"`
	Time         int64  `json:"time"`
	RelativeTime string `json:"relativeTime,omitempty"`
}

// MaxReviews caps the number of reviews returned in place details.
const MaxReviews = 5

// PlaceDetails extends PlaceResult with contact data, hours and reviews.
type PlaceDetails struct {
	PlaceResult
	PhoneNumber  string        `json:"phoneNumber,omitempty"`
	Website      string        `json:"website,omitempty"`
	OpeningHours *OpeningHours `json:"openingHours,omitempty"`
	Reviews      []Review      `json:"reviews"`
}

// Default search radii in meters.
const (
	DefaultSearchRadius = 5000
	DefaultNearbyRadius = 1500
)

// SearchPlacesRequest is the body of POST /search-places.
type SearchPlacesRequest struct {
	Query    string `json:"query" validate:"required,max=500"`
	Location string `json:"location,omitempty"`
	Radius   *int   `json:"radius,omitempty" validate:"omitempty,min=1,max=50000"`
	Type     string `json:"type,omitempty"`
}

// ApplyDefaults fills optional fields that were omitted by the client.
func (r *SearchPlacesRequest) ApplyDefaults() {
	if r.Radius == nil {
		radius := DefaultSearchRadius
		r.Radius = &radius
	}
}

// NearbyPlacesRequest is the body of POST /nearby-places.
type NearbyPlacesRequest struct {
	Location string `json:"location" validate:"required"`
	Radius   *int   `json:"radius,omitempty" validate:"omitempty,min=1,max=50000"`
	Type     string `json:"type,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
}

// ApplyDefaults fills optional fields that were omitted by the client.
func (r *NearbyPlacesRequest) ApplyDefaults() {
	if r.Radius == nil {
		radius := DefaultNearbyRadius
		r.Radius = &radius
	}
}

// PlaceDetailsRequest is the body of POST /place-details.
type PlaceDetailsRequest struct {
	PlaceID string `json:"placeId" validate:"required"`
}
