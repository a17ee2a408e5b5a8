package handlers

import (
	"net/http"

	"foodbanked/internal/common"
	"foodbanked/internal/services"

	"github.com/labstack/echo/v4"
)

// ExportHandlers handles visit export HTTP requests
type ExportHandlers struct {
	exportService services.ExportService
}

// NewExportHandlers creates a new export handlers instance
func NewExportHandlers(exportService services.ExportService) *ExportHandlers {
	return &ExportHandlers{exportService: exportService}
}

// ExportVisitsRequest represents the export window parameters
type ExportVisitsRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ExportVisits handles generating a CSV export of visits and returns a
// time-limited download link.
func (h *ExportHandlers) ExportVisits(c echo.Context) error {
	ctx := c.Request().Context()

	var req ExportVisitsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	from, err := common.ParseDate(req.StartDate, "start_date")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	to, err := common.ParseDate(req.EndDate, "end_date")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	result, err := h.exportService.ExportVisits(ctx, tenantID, from, to)
	if err != nil {
		return sendServiceError(c, err, "Foodbank")
	}

	return c.JSON(http.StatusOK, result)
}
