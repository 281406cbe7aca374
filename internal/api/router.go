package api

import (
	"net/http"
	"time"

	"maps-proxy/internal/api/middleware"
	"maps-proxy/internal/models"
	"maps-proxy/internal/modules/maps"
	"maps-proxy/internal/ratelimit"
	"maps-proxy/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// BasePath prefixes every API route.
const BasePath = "/api/maps"

// Options carries what the HTTP layer needs besides the handlers.
type Options struct {
	ServiceName    string
	APIKey         string
	AllowedOrigins []string
	TrustProxy     bool
	Limiter        *ratelimit.Limiter
	// Now stamps the health check. Defaults to time.Now.
	Now func() time.Time
}

// NewServer builds the echo instance with the global middleware chain and
// the error handler. Routes are added by SetupRoutes.
func NewServer(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Validator = utils.GetValidator()
	if opts.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	return e
}

// SetupRoutes sets up all the API endpoints for the application.
// Order inside the group: rate limit, then auth, then the handler.
func SetupRoutes(e *echo.Echo, mapsHandler *maps.Handler, opts Options) {
	healthPath := BasePath + "/health"

	mapsGroup := e.Group(BasePath,
		middleware.RateLimit(opts.Limiter),
		middleware.APIKeyAuth(middleware.APIKeyConfig{
			Key:     opts.APIKey,
			Skipper: middleware.PathSkipper(healthPath),
		}),
	)
	{
		mapsGroup.GET("/health", healthHandler(opts))
		mapsGroup.POST("/search-places", mapsHandler.SearchPlaces)
		mapsGroup.POST("/nearby-places", mapsHandler.NearbyPlaces)
		mapsGroup.POST("/place-details", mapsHandler.PlaceDetails)
		mapsGroup.POST("/directions", mapsHandler.GetDirections)
	}
}

func healthHandler(opts Options) echo.HandlerFunc {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	service := opts.ServiceName
	if service == "" {
		service = "maps-proxy"
	}
	return func(c echo.Context) error {
		return utils.RespondWithJSON(c, http.StatusOK, models.HealthStatus{
			Status:    "healthy",
			Timestamp: now().UTC().Format(time.RFC3339),
			Service:   service,
		})
	}
}
