package maps

import (
	"context"
	"errors"

	"maps-proxy/internal/models"

	"github.com/labstack/echo/v4"
)

// ServiceInterface defines the maps gateway operations.
type ServiceInterface interface {
	SearchPlaces(ctx context.Context, req models.SearchPlacesRequest) ([]models.PlaceResult, error)
	NearbyPlaces(ctx context.Context, req models.NearbyPlacesRequest) ([]models.PlaceResult, error)
	PlaceDetails(ctx context.Context, placeID string) (*models.PlaceDetails, error)
	GetDirections(ctx context.Context, req models.DirectionsRequest) (*models.DirectionsResult, error)
}

// Service calls the upstream provider and normalizes what comes back.
// It holds no per-request state and is shared by all handlers.
type Service struct {
	client       *Client
	apiKey       string
	photoBaseURL string
	logger       echo.Logger
}

// NewService creates a new maps gateway. apiKey is the credential embedded in
// embed and photo URLs.
func NewService(client *Client, apiKey string, logger echo.Logger) *Service {
	return &Service{
		client:       client,
		apiKey:       apiKey,
		photoBaseURL: client.BaseURL(),
		logger:       logger,
	}
}

// SearchPlaces runs a text search. ZERO_RESULTS is an empty list, not an error.
func (s *Service) SearchPlaces(ctx context.Context, req models.SearchPlacesRequest) ([]models.PlaceResult, error) {
	const op = "searchPlaces"

	// Text search only honours radius together with a location bias.
	radius := 0
	if req.Location != "" {
		radius = models.DefaultSearchRadius
		if req.Radius != nil {
			radius = *req.Radius
		}
	}

	resp, err := s.client.TextSearch(ctx, req.Query, req.Location, radius, req.Type)
	if err != nil {
		return nil, s.fail(op, err)
	}
	switch resp.Status {
	case StatusOK:
		return s.normalizePlaces(resp.Results), nil
	case StatusZeroResults:
		return []models.PlaceResult{}, nil
	default:
		return nil, s.fail(op, &models.UpstreamError{Op: op, Status: resp.Status, Message: resp.ErrorMessage})
	}
}

// NearbyPlaces runs a radius-bounded search around a coordinate.
func (s *Service) NearbyPlaces(ctx context.Context, req models.NearbyPlacesRequest) ([]models.PlaceResult, error) {
	const op = "nearbyPlaces"

	radius := models.DefaultNearbyRadius
	if req.Radius != nil {
		radius = *req.Radius
	}

	resp, err := s.client.NearbySearch(ctx, req.Location, radius, req.Type, req.Keyword)
	if err != nil {
		return nil, s.fail(op, err)
	}
	switch resp.Status {
	case StatusOK:
		return s.normalizePlaces(resp.Results), nil
	case StatusZeroResults:
		return []models.PlaceResult{}, nil
	default:
		return nil, s.fail(op, &models.UpstreamError{Op: op, Status: resp.Status, Message: resp.ErrorMessage})
	}
}

// PlaceDetails fetches one place. Only OK is success.
func (s *Service) PlaceDetails(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	const op = "placeDetails"

	resp, err := s.client.Details(ctx, placeID)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if resp.Status != StatusOK {
		return nil, s.fail(op, &models.UpstreamError{Op: op, Status: resp.Status, Message: resp.ErrorMessage})
	}
	return s.normalizeDetails(resp.Result), nil
}

// GetDirections computes a route and keeps only its first leg.
func (s *Service) GetDirections(ctx context.Context, req models.DirectionsRequest) (*models.DirectionsResult, error) {
	const op = "getDirections"

	resp, err := s.client.Directions(ctx, req.Origin, req.Destination, req.Mode)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if resp.Status != StatusOK {
		return nil, s.fail(op, &models.UpstreamError{Op: op, Status: resp.Status, Message: resp.ErrorMessage})
	}
	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return nil, s.fail(op, &models.UpstreamError{Op: op, Status: StatusZeroResults, Message: "no route returned"})
	}
	return s.normalizeDirections(resp.Routes[0], req.Origin, req.Destination, req.Mode), nil
}

// fail logs an upstream failure with its context and hands it back unchanged.
func (s *Service) fail(op string, err error) error {
	var ue *models.UpstreamError
	if errors.As(err, &ue) {
		s.logger.Errorj(map[string]interface{}{
			"op":      op,
			"message": ue.Error(),
			"status":  ue.Status,
			"payload": ue.Payload,
			"cause":   errString(ue.Err),
		})
		return err
	}
	s.logger.Errorf("maps.%s: %v", op, err)
	return err
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
