package maps

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"maps-proxy/internal/models"
)

type accessorPoint struct{ lat, lng float64 }

func (p accessorPoint) Lat() float64 { return p.lat }
func (p accessorPoint) Lng() float64 { return p.lng }

func TestToLatLng(t *testing.T) {
	var nilGoogle *GoogleLatLng
	tests := []struct {
		name string
		in   any
		want models.LatLng
		ok   bool
	}{
		{name: "plain", in: models.LatLng{Lat: 1, Lng: 2}, want: models.LatLng{Lat: 1, Lng: 2}, ok: true},
		{name: "pointer", in: &models.LatLng{Lat: 3, Lng: 4}, want: models.LatLng{Lat: 3, Lng: 4}, ok: true},
		{name: "provider", in: &GoogleLatLng{Lat: 5, Lng: 6}, want: models.LatLng{Lat: 5, Lng: 6}, ok: true},
		{name: "accessor", in: accessorPoint{lat: -6.2, lng: 106.8}, want: models.LatLng{Lat: -6.2, Lng: 106.8}, ok: true},
		{name: "nil", in: nil, ok: false},
		{name: "typed nil", in: nilGoogle, ok: false},
		{name: "unsupported", in: "1,2", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toLatLng(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("toLatLng(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFlexFloat(t *testing.T) {
	var ll GoogleLatLng
	if err := json.Unmarshal([]byte(`{"lat":"-6.5","lng":106.25}`), &ll); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ll.Lat != -6.5 || ll.Lng != 106.25 {
		t.Fatalf("unexpected %+v", ll)
	}

	if err := json.Unmarshal([]byte(`{"lat":"north"}`), &ll); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
}

func TestStripHTML(t *testing.T) {
	tests := map[string]string{
		"Head <b>north</b> on <b>Broadway</b>":         "Head north on Broadway",
		`<div style="font-size:0.9em">Toll road</div>`: "Toll road",
		"Turn <b>left</b> ":                            "Turn left",
		"a < b":                                        "a  b",
		"Continue > 2 km":                              "Continue  2 km",
		"Keep <wbr/>right":                             "Keep right",
		"Plain":                                        "Plain",
		"&amp; stays":                                  "&amp; stays",
	}
	for in, want := range tests {
		got := stripHTML(in)
		if got != want {
			t.Fatalf("stripHTML(%q) = %q, want %q", in, got, want)
		}
		if strings.ContainsAny(got, "<>") {
			t.Fatalf("stripHTML(%q) left an angle bracket: %q", in, got)
		}
	}
}

func TestPlaceURLs(t *testing.T) {
	loc := &models.LatLng{Lat: -6.2, Lng: 106.8}
	tests := []struct {
		name      string
		placeID   string
		loc       *models.LatLng
		place     string
		wantMaps  string
		wantQuery string
	}{
		{
			name:      "place id",
			placeID:   "ChIJ abc",
			loc:       loc,
			place:     "Cafe",
			wantMaps:  "https://www.google.com/maps/place/?q=place_id:ChIJ+abc",
			wantQuery: "place_id:ChIJ abc",
		},
		{
			name:      "coordinates only",
			loc:       loc,
			place:     "Cafe",
			wantMaps:  "https://www.google.com/maps/search/?api=1&query=-6.2%2C106.8",
			wantQuery: "-6.2,106.8",
		},
		{
			name:      "name only",
			place:     "Warung & Co",
			wantMaps:  "https://www.google.com/maps/search/?api=1&query=Warung+%26+Co",
			wantQuery: "Warung & Co",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := placeMapsURL(tt.placeID, tt.loc, tt.place); got != tt.wantMaps {
				t.Fatalf("maps URL = %q, want %q", got, tt.wantMaps)
			}

			embed := placeEmbedURL("k&y", tt.placeID, tt.loc, tt.place)
			u, err := url.Parse(embed)
			if err != nil {
				t.Fatalf("parse embed URL: %v", err)
			}
			if u.Path != "/maps/embed/v1/place" {
				t.Fatalf("unexpected embed path %q", u.Path)
			}
			if u.Query().Get("key") != "k&y" || u.Query().Get("q") != tt.wantQuery {
				t.Fatalf("unexpected embed query %v", u.Query())
			}
		})
	}
}

func TestDirectionsURLs(t *testing.T) {
	link := directionsMapsURL("Times Square", "Central Park", "walking")
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if u.Path != "/maps/dir/" || q.Get("api") != "1" || q.Get("origin") != "Times Square" ||
		q.Get("destination") != "Central Park" || q.Get("travelmode") != "walking" {
		t.Fatalf("unexpected directions URL %q", link)
	}

	embed := directionsEmbedURL("k", "A", "B", "")
	u, err = url.Parse(embed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Query().Has("mode") {
		t.Fatalf("expected no mode when empty, got %q", embed)
	}
	if u.Query().Get("key") != "k" || u.Query().Get("origin") != "A" || u.Query().Get("destination") != "B" {
		t.Fatalf("unexpected embed URL %q", embed)
	}
}

func TestNormalizeDirections_UsesFirstLegOnly(t *testing.T) {
	svc := &Service{apiKey: "k"}
	route := GoogleRoute{
		Summary: "I-95",
		Legs: []GoogleLeg{
			{Distance: GoogleTextValue{Text: "1 km", Value: 1000}, Steps: []GoogleStep{{HTMLInstructions: "<b>Go</b>"}}},
			{Distance: GoogleTextValue{Text: "9 km", Value: 9000}},
		},
	}

	res := svc.normalizeDirections(route, "A", "B", "driving")
	if res.Distance.Value != 1000 || len(res.Steps) != 1 || res.Steps[0].Instruction != "Go" {
		t.Fatalf("unexpected result %+v", res)
	}
}
