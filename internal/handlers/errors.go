package handlers

import (
	"errors"
	"net/http"

	"foodbanked/internal/common"
	"foodbanked/internal/services"

	"github.com/labstack/echo/v4"
)

// sendServiceError maps service-layer failures onto the shared error
// response shapes. resource names what was being looked up, for the 404
// message.
func sendServiceError(c echo.Context, err error, resource string) error {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		return common.SendValidationError(c, verr.Field, verr.Message)
	case errors.Is(err, common.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, services.ErrInvalidCredentials):
		return common.SendUnauthorizedError(c)
	case errors.Is(err, services.ErrTooManyAttempts):
		return c.JSON(http.StatusTooManyRequests, common.CreateErrorResponse("RATE_LIMITED", err.Error(), nil))
	case errors.Is(err, common.ErrInvalidTimezone):
		return c.JSON(http.StatusInternalServerError, common.CreateErrorResponse("CONFIGURATION_ERROR", "Tenant timezone misconfigured", nil))
	default:
		return common.SendServerError(c, "Internal server error")
	}
}
