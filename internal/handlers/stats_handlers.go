package handlers

import (
	"net/http"

	"foodbanked/internal/analytics"
	"foodbanked/internal/common"

	"github.com/labstack/echo/v4"
)

// StatsHandlers serves the dashboard and reporting rollups
type StatsHandlers struct {
	analyticsService *analytics.Service
}

// NewStatsHandlers creates a new stats handlers instance
func NewStatsHandlers(analyticsService *analytics.Service) *StatsHandlers {
	return &StatsHandlers{analyticsService: analyticsService}
}

// Dashboard handles the post-login summary counts
func (h *StatsHandlers) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	summary, err := h.analyticsService.Dashboard(ctx, tenantID)
	if err != nil {
		return sendServiceError(c, err, "Foodbank")
	}

	return c.JSON(http.StatusOK, summary)
}

// StatsRequest represents query parameters for the stats window.
// Without parameters the window is month-to-date; window=ytd switches to
// year-to-date; explicit from/to dates override both.
type StatsRequest struct {
	Window string `query:"window"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// Stats handles windowed visit statistics
func (h *StatsHandlers) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	var req StatsRequest
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
		if to.Before(from) {
			return echo.NewHTTPError(http.StatusBadRequest, "to must not be before from")
		}
		stats, err := h.analyticsService.Window(ctx, tenantID, from, to)
		if err != nil {
			return sendServiceError(c, err, "Foodbank")
		}
		return c.JSON(http.StatusOK, stats)
	}

	var stats *analytics.WindowStats
	var err error
	switch req.Window {
	case "", "mtd":
		stats, err = h.analyticsService.MonthToDate(ctx, tenantID)
	case "ytd":
		stats, err = h.analyticsService.YearToDate(ctx, tenantID)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown window, expected mtd or ytd")
	}
	if err != nil {
		return sendServiceError(c, err, "Foodbank")
	}

	return c.JSON(http.StatusOK, stats)
}
