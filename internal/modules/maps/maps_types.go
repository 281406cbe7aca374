package maps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Provider status values the gateway cares about.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

// GooglePlacesResponse is the envelope of textsearch and nearbysearch.
type GooglePlacesResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Results      []GooglePlace `json:"results"`
}

// GooglePlaceDetailsResponse is the envelope of place/details.
type GooglePlaceDetailsResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	Result       GooglePlace `json:"result"`
}

// GooglePlace covers both search results and details results; details-only
// fields are simply absent in search payloads.
type GooglePlace struct {
	PlaceID          string          `json:"place_id"`
	Name             string          `json:"name"`
	FormattedAddress string          `json:"formatted_address"`
	Vicinity         string          `json:"vicinity"`
	Geometry         *GoogleGeometry `json:"geometry,omitempty"`
	Rating           *float64        `json:"rating,omitempty"`
	UserRatingsTotal *int            `json:"user_ratings_total,omitempty"`
	Types            []string        `json:"types"`
	BusinessStatus   string          `json:"business_status"`
	PriceLevel       *int            `json:"price_level,omitempty"`
	Photos           []GooglePhoto   `json:"photos,omitempty"`

	FormattedPhoneNumber string              `json:"formatted_phone_number"`
	Website              string              `json:"website"`
	OpeningHours         *GoogleOpeningHours `json:"opening_hours,omitempty"`
	Reviews              []GoogleReview      `json:"reviews,omitempty"`
}

type GoogleGeometry struct {
	Location *GoogleLatLng `json:"location,omitempty"`
}

// GoogleLatLng tolerates coordinates sent as JSON numbers or numeric strings.
type GoogleLatLng struct {
	Lat FlexFloat `json:"lat"`
	Lng FlexFloat `json:"lng"`
}

type GooglePhoto struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type GoogleOpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text"`
}

type GoogleReview struct {
	AuthorName              string `json:"author_name"`
	Rating                  int    `json:"rating"`
	Text                    string `json:"text"`
	Time                    int64  `json:"time"`
	RelativeTimeDescription string `json:"relative_time_description"`
}

// GoogleDirectionsResponse is the envelope of directions/json.
type GoogleDirectionsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Routes       []GoogleRoute `json:"routes"`
}

type GoogleRoute struct {
	Summary string      `json:"summary"`
	Legs    []GoogleLeg `json:"legs"`
}

type GoogleLeg struct {
	Distance     GoogleTextValue `json:"distance"`
	Duration     GoogleTextValue `json:"duration"`
	StartAddress string          `json:"start_address"`
	EndAddress   string          `json:"end_address"`
	Steps        []GoogleStep    `json:"steps"`
}

type GoogleStep struct {
	HTMLInstructions string          `json:"html_instructions"`
	Distance         GoogleTextValue `json:"distance"`
	Duration         GoogleTextValue `json:"duration"`
}

type GoogleTextValue struct {
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

// FlexFloat decodes a JSON number or a quoted number.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", s, err)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}
