package middleware

import (
	"net/http"
	"strconv"

	"maps-proxy/internal/models"
	"maps-proxy/internal/ratelimit"
	"maps-proxy/pkg/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// KeyFunc resolves the rate-limiting key from the request.
type KeyFunc func(c echo.Context) string

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	Limiter *ratelimit.Limiter
	KeyFunc KeyFunc
	Skipper echomw.Skipper
}

// ClientIPKey keys requests by client IP as resolved by echo's IP extractor,
// falling back to "unknown".
func ClientIPKey(c echo.Context) string {
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// RateLimit returns a rate limit middleware keyed by client IP.
func RateLimit(limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	return RateLimitWithConfig(RateLimitConfig{Limiter: limiter})
}

// RateLimitWithConfig returns a rate limit middleware. Every response gets the
// X-RateLimit-* headers; a denied request is answered with 429 and Retry-After
// before reaching any handler.
func RateLimitWithConfig(config RateLimitConfig) echo.MiddlewareFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = ClientIPKey
	}
	if config.Skipper == nil {
		config.Skipper = echomw.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Limiter == nil || config.Skipper(c) {
				return next(c)
			}

			key := config.KeyFunc(c)
			dec, err := config.Limiter.Check(c.Request().Context(), key)
			if err != nil {
				c.Logger().Errorf("rate limiter error: %v", err)
				if !dec.Allowed {
					return utils.RespondWithError(c, http.StatusServiceUnavailable,
						models.KindServiceUnavailable, "Rate limiter unavailable, please try again later.")
				}
			}

			h := c.Response().Header()
			h.Set(HeaderRateLimitLimit, strconv.FormatInt(dec.Limit, 10))
			h.Set(HeaderRateLimitRemaining, strconv.FormatInt(dec.Remaining, 10))
			h.Set(HeaderRateLimitReset, strconv.FormatInt(dec.ResetAt.Unix(), 10))

			if !dec.Allowed {
				retryAfter := dec.RetryAfterSeconds()
				h.Set(HeaderRetryAfter, strconv.Itoa(retryAfter))
				c.Logger().Warnf("rate limit exceeded for %s", key)
				return utils.RespondWithErrorInfo(c, http.StatusTooManyRequests, models.ErrorInfo{
					Error:      models.KindRateLimitExceeded,
					Message:    "Too many requests, please try again later.",
					RetryAfter: retryAfter,
				})
			}

			return next(c)
		}
	}
}
