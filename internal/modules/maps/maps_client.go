package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maps-proxy/internal/models"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Google Maps Platform web service host.
const DefaultBaseURL = "https://maps.googleapis.com"

// placeDetailsFields is the allowlist requested from place/details so that
// payloads stay bounded.
var placeDetailsFields = []string{
	"place_id",
	"name",
	"formatted_address",
	"geometry",
	"rating",
	"user_ratings_total",
	"price_level",
	"types",
	"business_status",
	"formatted_phone_number",
	"website",
	"opening_hours",
	"reviews",
	"photos",
}

const maxErrorPayload = 4 << 10

// ClientOptions configure the upstream client.
type ClientOptions struct {
	BaseURL string
	// Timeout bounds every upstream call. Zero means 10s.
	Timeout time.Duration
	// QPS throttles outbound calls. Zero means unlimited.
	QPS float64
	// HTTPClient overrides the default client (Timeout is then ignored).
	HTTPClient *http.Client
}

// Client talks to the Google Maps Platform JSON web services.
// It is safe for concurrent use and is meant to be built once per process.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new upstream client.
func NewClient(apiKey string, opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	burst := 0
	if opts.QPS > 0 {
		limit = rate.Limit(opts.QPS)
		burst = int(opts.QPS)
		if burst < 1 {
			burst = 1
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// BaseURL returns the upstream host the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// TextSearch calls place/textsearch.
func (c *Client) TextSearch(ctx context.Context, query, location string, radius int, placeType string) (*GooglePlacesResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	if location != "" {
		params.Set("location", location)
	}
	if radius > 0 {
		params.Set("radius", strconv.Itoa(radius))
	}
	if placeType != "" {
		params.Set("type", placeType)
	}

	var out GooglePlacesResponse
	if err := c.get(ctx, "searchPlaces", "/maps/api/place/textsearch/json", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NearbySearch calls place/nearbysearch.
func (c *Client) NearbySearch(ctx context.Context, location string, radius int, placeType, keyword string) (*GooglePlacesResponse, error) {
	params := url.Values{}
	params.Set("location", location)
	params.Set("radius", strconv.Itoa(radius))
	if placeType != "" {
		params.Set("type", placeType)
	}
	if keyword != "" {
		params.Set("keyword", keyword)
	}

	var out GooglePlacesResponse
	if err := c.get(ctx, "nearbyPlaces", "/maps/api/place/nearbysearch/json", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Details calls place/details with the field allowlist.
func (c *Client) Details(ctx context.Context, placeID string) (*GooglePlaceDetailsResponse, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", strings.Join(placeDetailsFields, ","))

	var out GooglePlaceDetailsResponse
	if err := c.get(ctx, "placeDetails", "/maps/api/place/details/json", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Directions calls directions/json.
func (c *Client) Directions(ctx context.Context, origin, destination, mode string) (*GoogleDirectionsResponse, error) {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	if mode != "" {
		params.Set("mode", mode)
	}

	var out GoogleDirectionsResponse
	if err := c.get(ctx, "getDirections", "/maps/api/directions/json", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get performs one GET and decodes the JSON body into out. Every failure comes
// back as *models.UpstreamError; the API key is scrubbed from causes and payloads.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return c.upstreamError(op, "REQUEST_FAILED", "upstream request was not sent", err, "")
	}

	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.upstreamError(op, "REQUEST_FAILED", "could not build upstream request", err, "")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.upstreamError(op, "REQUEST_FAILED", "request to Google Maps failed", err, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorPayload))
		return c.upstreamError(op, fmt.Sprintf("HTTP_%d", resp.StatusCode),
			"unexpected HTTP status from Google Maps", nil, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.upstreamError(op, "INVALID_RESPONSE", "could not decode Google Maps response", err, "")
	}
	return nil
}

func (c *Client) upstreamError(op, status, message string, cause error, payload string) error {
	ue := &models.UpstreamError{
		Op:      op,
		Status:  status,
		Message: message,
		Payload: c.redact(payload),
	}
	if cause != nil {
		ue.Err = errors.New(c.redact(cause.Error()))
	}
	return ue
}

func (c *Client) redact(s string) string {
	if c.apiKey == "" || s == "" {
		return s
	}
	s = strings.ReplaceAll(s, url.QueryEscape(c.apiKey), "REDACTED")
	return strings.ReplaceAll(s, c.apiKey, "REDACTED")
}
