package models

// DirectionsRequest is the input for computing a route between two locations.
type DirectionsRequest struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Mode        string `json:"mode,omitempty" validate:"omitempty,oneof=driving walking bicycling transit"`
}

// DefaultTravelMode is used when a directions request omits the mode.
const DefaultTravelMode = "driving"

// ApplyDefaults fills optional fields that were omitted by the client.
func (r *DirectionsRequest) ApplyDefaults() {
	if r.Mode == "" {
		r.Mode = DefaultTravelMode
	}
}

// TextValue pairs a human readable value with its raw number
// (meters for distance, seconds for duration).
type TextValue struct {
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

// DirectionsStep is a single turn-by-turn instruction with markup stripped.
type DirectionsStep struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
}

// DirectionsResult is built from the first leg of the first route only.
type DirectionsResult struct {
	Summary       string           `json:"summary"`
	Distance      TextValue        `json:"distance"`
	Duration      TextValue        `json:"duration"`
	StartAddress  string           `json:"startAddress"`
	EndAddress    string           `json:"endAddress"`
	Steps         []DirectionsStep `json:"steps"`
	GoogleMapsURL string           `json:"googleMapsUrl"`
	EmbedMapURL   string           `json:"embedMapUrl"`
}
