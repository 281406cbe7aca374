package maps

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"maps-proxy/internal/models"
)

const (
	mapsWebBaseURL = "https://www.google.com/maps"
	photoMaxWidth  = 400

	unknownName        = "Unknown"
	addressUnavailable = "Address not available"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// latLngAccessor matches client types that expose coordinates through methods
// instead of fields.
type latLngAccessor interface {
	Lat() float64
	Lng() float64
}

// toLatLng turns any supported coordinate shape into a plain pair.
// It reports false when src carries no coordinates.
func toLatLng(src any) (models.LatLng, bool) {
	switch v := src.(type) {
	case nil:
		return models.LatLng{}, false
	case models.LatLng:
		return v, true
	case *models.LatLng:
		if v == nil {
			return models.LatLng{}, false
		}
		return *v, true
	case GoogleLatLng:
		return models.LatLng{Lat: float64(v.Lat), Lng: float64(v.Lng)}, true
	case *GoogleLatLng:
		if v == nil {
			return models.LatLng{}, false
		}
		return models.LatLng{Lat: float64(v.Lat), Lng: float64(v.Lng)}, true
	case latLngAccessor:
		return models.LatLng{Lat: v.Lat(), Lng: v.Lng()}, true
	default:
		return models.LatLng{}, false
	}
}

func formatLatLng(ll models.LatLng) string {
	return strconv.FormatFloat(ll.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(ll.Lng, 'f', -1, 64)
}

// stripHTML removes every <...> token and any angle bracket left unpaired.
func stripHTML(s string) string {
	s = htmlTag.ReplaceAllString(s, "")
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	return strings.TrimSpace(s)
}

// placeMapsURL is the clickable Google Maps link for a place.
func placeMapsURL(placeID string, loc *models.LatLng, name string) string {
	if placeID != "" {
		return mapsWebBaseURL + "/place/?q=place_id:" + url.QueryEscape(placeID)
	}
	query := name
	if loc != nil {
		query = formatLatLng(*loc)
	}
	return mapsWebBaseURL + "/search/?api=1&query=" + url.QueryEscape(query)
}

// placeEmbedURL is the iframe-embeddable map for a place.
func placeEmbedURL(apiKey, placeID string, loc *models.LatLng, name string) string {
	var query string
	switch {
	case placeID != "":
		query = "place_id:" + placeID
	case loc != nil:
		query = formatLatLng(*loc)
	default:
		query = name
	}
	return mapsWebBaseURL + "/embed/v1/place?key=" + url.QueryEscape(apiKey) + "&q=" + url.QueryEscape(query)
}

// directionsMapsURL is the clickable Google Maps directions link.
func directionsMapsURL(origin, destination, mode string) string {
	u := mapsWebBaseURL + "/dir/?api=1&origin=" + url.QueryEscape(origin) +
		"&destination=" + url.QueryEscape(destination)
	if mode != "" {
		u += "&travelmode=" + url.QueryEscape(mode)
	}
	return u
}

// directionsEmbedURL is the iframe-embeddable directions map.
func directionsEmbedURL(apiKey, origin, destination, mode string) string {
	u := mapsWebBaseURL + "/embed/v1/directions?key=" + url.QueryEscape(apiKey) +
		"&origin=" + url.QueryEscape(origin) +
		"&destination=" + url.QueryEscape(destination)
	if mode != "" {
		u += "&mode=" + url.QueryEscape(mode)
	}
	return u
}

func photoURL(baseURL, apiKey, reference string) string {
	return baseURL + "/maps/api/place/photo?maxwidth=" + strconv.Itoa(photoMaxWidth) +
		"&photo_reference=" + url.QueryEscape(reference) +
		"&key=" + url.QueryEscape(apiKey)
}

func (s *Service) normalizePlace(p GooglePlace) models.PlaceResult {
	out := models.PlaceResult{
		PlaceID:          p.PlaceID,
		Name:             p.Name,
		Address:          p.FormattedAddress,
		Rating:           p.Rating,
		UserRatingsTotal: p.UserRatingsTotal,
		Types:            p.Types,
		BusinessStatus:   p.BusinessStatus,
		PriceLevel:       p.PriceLevel,
	}
	if out.Name == "" {
		out.Name = unknownName
	}
	if out.Address == "" {
		out.Address = p.Vicinity
	}
	if out.Address == "" {
		out.Address = addressUnavailable
	}
	if out.Types == nil {
		out.Types = []string{}
	}

	if p.Geometry != nil {
		if ll, ok := toLatLng(p.Geometry.Location); ok {
			out.Location = &ll
		}
	}

	if len(p.Photos) > 0 && p.Photos[0].PhotoReference != "" {
		out.PhotoURL = photoURL(s.photoBaseURL, s.apiKey, p.Photos[0].PhotoReference)
	}

	out.GoogleMapsURL = placeMapsURL(out.PlaceID, out.Location, out.Name)
	out.EmbedMapURL = placeEmbedURL(s.apiKey, out.PlaceID, out.Location, out.Name)
	return out
}

func (s *Service) normalizePlaces(in []GooglePlace) []models.PlaceResult {
	out := make([]models.PlaceResult, 0, len(in))
	for _, p := range in {
		out = append(out, s.normalizePlace(p))
	}
	return out
}

func (s *Service) normalizeDetails(p GooglePlace) *models.PlaceDetails {
	out := &models.PlaceDetails{
		PlaceResult: s.normalizePlace(p),
		PhoneNumber: p.FormattedPhoneNumber,
		Website:     p.Website,
		Reviews:     []models.Review{},
	}

	if p.OpeningHours != nil {
		weekday := p.OpeningHours.WeekdayText
		if weekday == nil {
			weekday = []string{}
		}
		out.OpeningHours = &models.OpeningHours{
			OpenNow:     p.OpeningHours.OpenNow,
			WeekdayText: weekday,
		}
	}

	reviews := p.Reviews
	if len(reviews) > models.MaxReviews {
		reviews = reviews[:models.MaxReviews]
	}
	for _, r := range reviews {
		out.Reviews = append(out.Reviews, models.Review{
			AuthorName:   r.AuthorName,
			Rating:       r.Rating,
			Text:         r.Text,
			Time:         r.Time,
			RelativeTime: r.RelativeTimeDescription,
		})
	}
	return out
}

// normalizeDirections uses only the first leg of route; other legs and
// alternate routes are discarded by the caller.
func (s *Service) normalizeDirections(route GoogleRoute, origin, destination, mode string) *models.DirectionsResult {
	leg := route.Legs[0]
	out := &models.DirectionsResult{
		Summary:       route.Summary,
		Distance:      models.TextValue{Text: leg.Distance.Text, Value: leg.Distance.Value},
		Duration:      models.TextValue{Text: leg.Duration.Text, Value: leg.Duration.Value},
		StartAddress:  leg.StartAddress,
		EndAddress:    leg.EndAddress,
		Steps:         make([]models.DirectionsStep, 0, len(leg.Steps)),
		GoogleMapsURL: directionsMapsURL(origin, destination, mode),
		EmbedMapURL:   directionsEmbedURL(s.apiKey, origin, destination, mode),
	}
	for _, step := range leg.Steps {
		out.Steps = append(out.Steps, models.DirectionsStep{
			Instruction: stripHTML(step.HTMLInstructions),
			Distance:    step.Distance.Text,
			Duration:    step.Duration.Text,
		})
	}
	return out
}
