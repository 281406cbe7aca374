package middleware

import (
	"net/http"

	"maps-proxy/internal/models"
	"maps-proxy/pkg/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// APIKeyQueryParam is the query parameter accepted when no Authorization header is sent.
const APIKeyQueryParam = "api_key"

// APIKeyConfig configures the shared-secret auth gate.
type APIKeyConfig struct {
	// Key is the configured secret. Empty disables the gate.
	Key string
	// Skipper exempts requests, e.g. the health check.
	Skipper echomw.Skipper
}

// APIKeyAuth returns the auth gate middleware.
// The key is read from "Authorization: Bearer <key>" first, then from ?api_key=.
// Missing key -> 401 UNAUTHORIZED, wrong key -> 403 FORBIDDEN.
func APIKeyAuth(config APIKeyConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = echomw.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Key == "" || config.Skipper(c) {
				return next(c)
			}

			provided := utils.ExtractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if provided == "" {
				provided = c.QueryParam(APIKeyQueryParam)
			}

			if provided == "" {
				c.Logger().Warnf("auth: missing API key from %s %s", c.RealIP(), c.Request().URL.Path)
				return utils.RespondWithError(c, http.StatusUnauthorized, models.KindUnauthorized, models.ErrMissingAPIKey.Error())
			}
			if !utils.SecureCompare(provided, config.Key) {
				c.Logger().Warnf("auth: invalid API key from %s %s", c.RealIP(), c.Request().URL.Path)
				return utils.RespondWithError(c, http.StatusForbidden, models.KindForbidden, models.ErrInvalidAPIKey.Error())
			}

			return next(c)
		}
	}
}

// PathSkipper exempts exact request paths.
func PathSkipper(paths ...string) echomw.Skipper {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(c echo.Context) bool {
		_, ok := set[c.Request().URL.Path]
		return ok
	}
}
