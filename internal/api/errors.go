package api

import (
	"errors"
	"net/http"

	"maps-proxy/internal/models"
	"maps-proxy/pkg/utils"

	"github.com/labstack/echo/v4"
)

const genericErrorMessage = "An unexpected error occurred"

// classifyError maps any error reaching the top of the handler chain to an
// HTTP status and the client-visible error info.
func classifyError(err error) (int, models.ErrorInfo) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, models.ErrorInfo{
			Error:   models.KindValidation,
			Message: "Invalid request data",
			Details: verr.Fields,
		}
	}

	var uerr *models.UpstreamError
	if errors.As(err, &uerr) {
		return http.StatusBadGateway, models.ErrorInfo{
			Error:   models.KindUpstream,
			Message: uerr.Error(),
		}
	}

	if errors.Is(err, models.ErrNotFound) {
		return http.StatusNotFound, models.ErrorInfo{Error: models.KindNotFound, Message: "Route not found"}
	}

	var herr *echo.HTTPError
	if errors.As(err, &herr) {
		switch herr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return http.StatusNotFound, models.ErrorInfo{Error: models.KindNotFound, Message: "Route not found"}
		case http.StatusUnauthorized:
			return http.StatusUnauthorized, models.ErrorInfo{Error: models.KindUnauthorized, Message: models.ErrMissingAPIKey.Error()}
		case http.StatusForbidden:
			return http.StatusForbidden, models.ErrorInfo{Error: models.KindForbidden, Message: models.ErrInvalidAPIKey.Error()}
		case http.StatusTooManyRequests:
			return http.StatusTooManyRequests, models.ErrorInfo{Error: models.KindRateLimitExceeded, Message: "Too many requests, please try again later."}
		case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
			return http.StatusBadRequest, models.ErrorInfo{Error: models.KindValidation, Message: "Invalid request data"}
		}
	}

	return http.StatusInternalServerError, models.ErrorInfo{
		Error:   models.KindInternalServerError,
		Message: genericErrorMessage,
	}
}

// HTTPErrorHandler is the single place where errors become responses.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, info := classifyError(err)
	req := c.Request()
	if status >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s failed: %v", req.Method, req.URL.Path, err)
	} else {
		c.Logger().Infof("%s %s -> %d %s", req.Method, req.URL.Path, status, info.Error)
	}

	if req.Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = utils.RespondWithErrorInfo(c, status, info)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
