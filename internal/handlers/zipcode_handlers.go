package handlers

import (
	"net/http"

	"foodbanked/internal/common"
	"foodbanked/internal/services"

	"github.com/labstack/echo/v4"
)

// ZipcodeHandlers handles service-area zipcode HTTP requests
type ZipcodeHandlers struct {
	zipcodeService services.ServiceZipcodeService
}

// NewZipcodeHandlers creates a new zipcode handlers instance
func NewZipcodeHandlers(zipcodeService services.ServiceZipcodeService) *ZipcodeHandlers {
	return &ZipcodeHandlers{zipcodeService: zipcodeService}
}

// CreateZipcodeRequest represents the service zipcode creation payload
type CreateZipcodeRequest struct {
	Zipcode string `json:"zipcode" validate:"required"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// CreateZipcode handles adding a zipcode to the service area list
func (h *ZipcodeHandlers) CreateZipcode(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateZipcodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	zip, err := h.zipcodeService.Create(ctx, tenantID, req.Zipcode, req.City, req.State)
	if err != nil {
		return sendServiceError(c, err, "Zipcode")
	}

	return c.JSON(http.StatusCreated, zip)
}

// ListZipcodes handles listing the service area
func (h *ZipcodeHandlers) ListZipcodes(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	zipcodes, err := h.zipcodeService.List(ctx, tenantID)
	if err != nil {
		return common.SendServerError(c, "Failed to list zipcodes")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"zipcodes": zipcodes,
	})
}

// DeleteZipcode handles removing a zipcode from the service area
func (h *ZipcodeHandlers) DeleteZipcode(c echo.Context) error {
	ctx := c.Request().Context()

	zipID, err := common.ValidateUUID(c.Param("id"), "zipcode ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	if err := h.zipcodeService.Delete(ctx, tenantID, zipID); err != nil {
		return sendServiceError(c, err, "Zipcode")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Zipcode removed successfully",
	})
}
