package handlers

import (
	"net/http"

	"foodbanked/internal/common"
	"foodbanked/internal/services"

	"github.com/labstack/echo/v4"
)

// FoodbankHandlers handles foodbank profile HTTP requests
type FoodbankHandlers struct {
	foodbankService services.FoodbankService
}

// NewFoodbankHandlers creates a new foodbank handlers instance
func NewFoodbankHandlers(foodbankService services.FoodbankService) *FoodbankHandlers {
	return &FoodbankHandlers{foodbankService: foodbankService}
}

// CreateFoodbank handles onboarding a foodbank for a fresh account. A
// user owns at most one foodbank.
func (h *FoodbankHandlers) CreateFoodbank(c echo.Context) error {
	ctx := c.Request().Context()

	actor, ok := common.ActorFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	if actor.Kind == common.ActorFoodbank {
		return echo.NewHTTPError(http.StatusConflict, "Account already has a foodbank")
	}

	var req services.CreateFoodbankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.UserID = actor.UserID

	foodbank, err := h.foodbankService.Create(ctx, &req)
	if err != nil {
		return sendServiceError(c, err, "Foodbank")
	}

	return c.JSON(http.StatusCreated, foodbank)
}

// GetProfile handles reading the authenticated foodbank's profile
func (h *FoodbankHandlers) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	foodbank, err := h.foodbankService.GetByID(ctx, tenantID)
	if err != nil {
		return sendServiceError(c, err, "Foodbank")
	}

	return c.JSON(http.StatusOK, foodbank)
}

// UpdateProfile handles editing the foodbank profile. Changing the
// address triggers a re-geocode; geocoder failures leave the pin unset
// rather than blocking the save.
func (h *FoodbankHandlers) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	var req services.UpdateFoodbankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.ID = tenantID

	foodbank, err := h.foodbankService.Update(ctx, &req)
	if err != nil {
		return sendServiceError(c, err, "Foodbank")
	}

	return c.JSON(http.StatusOK, foodbank)
}
