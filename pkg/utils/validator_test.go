package utils

import (
	"errors"
	"strings"
	"testing"

	"maps-proxy/internal/models"
)

func intPtr(v int) *int { return &v }

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *models.ValidationError, got %T (%v)", err, err)
	}
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidate_SearchPlacesRadiusOutOfRange(t *testing.T) {
	for _, radius := range []int{0, -1, 50001, 100000} {
		req := models.SearchPlacesRequest{Query: "coffee", Radius: intPtr(radius)}
		fields := fieldsOf(t, GetValidator().Validate(req))
		if _, ok := fields["radius"]; !ok {
			t.Fatalf("radius=%d: expected radius field error, got %v", radius, fields)
		}
	}
}

func TestValidate_SearchPlacesRadiusBoundsAccepted(t *testing.T) {
	for _, radius := range []int{1, 5000, 50000} {
		req := models.SearchPlacesRequest{Query: "coffee", Radius: intPtr(radius)}
		if err := GetValidator().Validate(req); err != nil {
			t.Fatalf("radius=%d: unexpected error %v", radius, err)
		}
	}
}

func TestValidate_SearchPlacesOmittedRadiusGetsDefault(t *testing.T) {
	req := models.SearchPlacesRequest{Query: "coffee"}
	if err := GetValidator().Validate(req); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	req.ApplyDefaults()
	if req.Radius == nil || *req.Radius != 5000 {
		t.Fatalf("expected default radius 5000, got %v", req.Radius)
	}
}

func TestValidate_QueryLength(t *testing.T) {
	req := models.SearchPlacesRequest{Query: strings.Repeat("a", 501)}
	fields := fieldsOf(t, GetValidator().Validate(req))
	if _, ok := fields["query"]; !ok {
		t.Fatalf("expected query error, got %v", fields)
	}

	req.Query = strings.Repeat("a", 500)
	if err := GetValidator().Validate(req); err != nil {
		t.Fatalf("500 chars should pass, got %v", err)
	}
}

func TestValidate_ReportsEveryViolatedField(t *testing.T) {
	req := models.DirectionsRequest{Mode: "flying"}
	fields := fieldsOf(t, GetValidator().Validate(req))

	for _, name := range []string{"origin", "destination", "mode"} {
		if _, ok := fields[name]; !ok {
			t.Fatalf("expected %s to be reported, got %v", name, fields)
		}
	}
	if !strings.Contains(fields["mode"], "driving, walking, bicycling, transit") {
		t.Fatalf("unexpected mode message %q", fields["mode"])
	}
}

func TestValidate_DirectionsDefaultsToDriving(t *testing.T) {
	req := models.DirectionsRequest{Origin: "Times Square", Destination: "Central Park"}
	if err := GetValidator().Validate(req); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	req.ApplyDefaults()
	if req.Mode != "driving" {
		t.Fatalf("expected driving, got %q", req.Mode)
	}
}

func TestValidate_NearbyPlaces(t *testing.T) {
	fields := fieldsOf(t, GetValidator().Validate(models.NearbyPlacesRequest{}))
	if _, ok := fields["location"]; !ok {
		t.Fatalf("expected location error, got %v", fields)
	}

	req := models.NearbyPlacesRequest{Location: "-6.2,106.8"}
	if err := GetValidator().Validate(req); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	req.ApplyDefaults()
	if *req.Radius != 1500 {
		t.Fatalf("expected default radius 1500, got %d", *req.Radius)
	}
}

func TestValidate_PlaceDetailsRequiresPlaceID(t *testing.T) {
	fields := fieldsOf(t, GetValidator().Validate(models.PlaceDetailsRequest{}))
	if msg, ok := fields["placeId"]; !ok || msg != "placeId is required" {
		t.Fatalf("expected placeId required, got %v", fields)
	}
}
