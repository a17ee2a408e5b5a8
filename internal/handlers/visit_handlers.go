package handlers

import (
	"net/http"

	"foodbanked/internal/common"
	"foodbanked/internal/services"

	"github.com/labstack/echo/v4"
)

// VisitHandlers handles visit-related HTTP requests
type VisitHandlers struct {
	visitService services.VisitService
}

// NewVisitHandlers creates a new visit handlers instance
func NewVisitHandlers(visitService services.VisitService) *VisitHandlers {
	return &VisitHandlers{visitService: visitService}
}

// RecordVisit handles recording a visit. One submission may produce two
// rows when both pantry and food truck are selected; the response
// returns every row created.
func (h *VisitHandlers) RecordVisit(c echo.Context) error {
	ctx := c.Request().Context()

	var entry services.VisitEntry
	if err := c.Bind(&entry); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	visits, err := h.visitService.Record(ctx, tenantID, &entry)
	if err != nil {
		return sendServiceError(c, err, "Foodbank")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"visits": visits,
	})
}

// ListVisitsRequest represents query parameters for listing visits.
// From/To select an inclusive date window; without them the listing
// pages newest first.
type ListVisitsRequest struct {
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// ListVisits handles listing visits
func (h *VisitHandlers) ListVisits(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListVisitsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	if req.From != "" || req.To != "" {
		from, err := common.ParseDate(req.From, "from")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		to, err := common.ParseDate(req.To, "to")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		visits, err := h.visitService.ListWindow(ctx, tenantID, from, to)
		if err != nil {
			return sendServiceError(c, err, "Visit")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"visits": visits,
			"from":   req.From,
			"to":     req.To,
		})
	}

	if req.Limit <= 0 {
		req.Limit = 25
	}
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	visits, err := h.visitService.List(ctx, tenantID, req.Limit, req.Offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list visits")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"visits": visits,
		"limit":  req.Limit,
		"offset": req.Offset,
	})
}

// GetVisit handles getting visit details by ID
func (h *VisitHandlers) GetVisit(c echo.Context) error {
	ctx := c.Request().Context()

	visitID, err := common.ValidateUUID(c.Param("id"), "visit ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	visit, err := h.visitService.GetByID(ctx, tenantID, visitID)
	if err != nil {
		return sendServiceError(c, err, "Visit")
	}

	return c.JSON(http.StatusOK, visit)
}

// UpdateVisit handles correcting a visit's entry fields. The visit date,
// type and patron snapshot are fixed at recording time.
func (h *VisitHandlers) UpdateVisit(c echo.Context) error {
	ctx := c.Request().Context()

	visitID, err := common.ValidateUUID(c.Param("id"), "visit ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var entry services.VisitEntry
	if err := c.Bind(&entry); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	visit, err := h.visitService.Update(ctx, tenantID, visitID, &entry)
	if err != nil {
		return sendServiceError(c, err, "Visit")
	}

	return c.JSON(http.StatusOK, visit)
}

// DeleteVisit handles deleting a visit
func (h *VisitHandlers) DeleteVisit(c echo.Context) error {
	ctx := c.Request().Context()

	visitID, err := common.ValidateUUID(c.Param("id"), "visit ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	if err := h.visitService.Delete(ctx, tenantID, visitID); err != nil {
		return sendServiceError(c, err, "Visit")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Visit deleted successfully",
	})
}

// ListPatronVisits handles listing a patron's visit history
func (h *VisitHandlers) ListPatronVisits(c echo.Context) error {
	ctx := c.Request().Context()

	patronID, err := common.ValidateUUID(c.Param("id"), "patron ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	visits, err := h.visitService.ListByPatron(ctx, tenantID, patronID)
	if err != nil {
		return common.SendServerError(c, "Failed to list visits")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"visits": visits,
	})
}
