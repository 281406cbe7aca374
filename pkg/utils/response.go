package utils

import (
	"maps-proxy/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes a success envelope around data.
func RespondWithJSON(c echo.Context, status int, data any) error {
	return c.JSON(status, models.ApiResponse{Success: true, Data: data})
}

// RespondWithError writes an error envelope.
func RespondWithError(c echo.Context, status int, kind, message string) error {
	return RespondWithErrorInfo(c, status, models.ErrorInfo{Error: kind, Message: message})
}

// RespondWithErrorInfo writes an error envelope carrying a fully populated ErrorInfo.
func RespondWithErrorInfo(c echo.Context, status int, info models.ErrorInfo) error {
	return c.JSON(status, models.ApiResponse{Success: false, Error: &info})
}
