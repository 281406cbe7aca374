package maps

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"maps-proxy/internal/models"
	"maps-proxy/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the maps endpoints.
// Errors are returned to echo and rendered by the central error handler.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new maps handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// bindAndValidate decodes the JSON body into req and runs the schema checks.
// A value of the wrong JSON type is reported against its field and merged
// with the validator's findings on whatever else was decoded. Only a body that
// is not JSON at all is reported as "body".
func bindAndValidate(c echo.Context, req interface{}) error {
	var typeErr *models.FieldError
	if err := c.Bind(req); err != nil {
		var ute *json.UnmarshalTypeError
		if !errors.As(err, &ute) || ute.Field == "" {
			c.Logger().Debugf("bind failed: %v", err)
			return models.NewValidationError("body", "request body must be valid JSON")
		}
		typeErr = &models.FieldError{Field: ute.Field, Message: describeTypeError(ute)}
	}

	err := c.Validate(req)
	if typeErr == nil {
		return err
	}

	out := &models.ValidationError{Fields: []models.FieldError{*typeErr}}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			if f.Field != typeErr.Field {
				out.Fields = append(out.Fields, f)
			}
		}
	} else if err != nil {
		return err
	}
	return out
}

func describeTypeError(ute *json.UnmarshalTypeError) string {
	t := ute.Type
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return fmt.Sprintf("%s has an invalid type", ute.Field)
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%s must be an integer", ute.Field)
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%s must be a number", ute.Field)
	case reflect.String:
		return fmt.Sprintf("%s must be a string", ute.Field)
	default:
		return fmt.Sprintf("%s has an invalid type", ute.Field)
	}
}

// SearchPlaces handles POST /search-places.
func (h *Handler) SearchPlaces(c echo.Context) error {
	var req models.SearchPlacesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	req.ApplyDefaults()

	places, err := h.svc.SearchPlaces(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, http.StatusOK, places)
}

// NearbyPlaces handles POST /nearby-places.
func (h *Handler) NearbyPlaces(c echo.Context) error {
	var req models.NearbyPlacesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	req.ApplyDefaults()

	places, err := h.svc.NearbyPlaces(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, http.StatusOK, places)
}

// PlaceDetails handles POST /place-details.
func (h *Handler) PlaceDetails(c echo.Context) error {
	var req models.PlaceDetailsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	details, err := h.svc.PlaceDetails(c.Request().Context(), req.PlaceID)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, http.StatusOK, details)
}

// GetDirections handles POST /directions.
func (h *Handler) GetDirections(c echo.Context) error {
	var req models.DirectionsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	req.ApplyDefaults()

	directions, err := h.svc.GetDirections(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, http.StatusOK, directions)
}
