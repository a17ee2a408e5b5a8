package handlers

import (
	"net/http"

	"foodbanked/internal/analytics"
	"foodbanked/internal/common"
	"foodbanked/internal/services"

	"github.com/labstack/echo/v4"
)

// OrganizationHandlers handles organization admin HTTP requests
type OrganizationHandlers struct {
	orgService       services.OrganizationService
	analyticsService *analytics.Service
}

// NewOrganizationHandlers creates a new organization handlers instance
func NewOrganizationHandlers(orgService services.OrganizationService, analyticsService *analytics.Service) *OrganizationHandlers {
	return &OrganizationHandlers{
		orgService:       orgService,
		analyticsService: analyticsService,
	}
}

// GetOrganization handles reading the administered organization
func (h *OrganizationHandlers) GetOrganization(c echo.Context) error {
	ctx := c.Request().Context()

	orgID, ok := common.OrganizationIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Organization not found")
	}

	org, err := h.orgService.GetByID(ctx, orgID)
	if err != nil {
		return sendServiceError(c, err, "Organization")
	}

	return c.JSON(http.StatusOK, org)
}

// UpdateOrganization handles editing the organization profile
func (h *OrganizationHandlers) UpdateOrganization(c echo.Context) error {
	ctx := c.Request().Context()

	orgID, ok := common.OrganizationIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Organization not found")
	}

	var req services.UpdateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.ID = orgID

	org, err := h.orgService.Update(ctx, &req)
	if err != nil {
		return sendServiceError(c, err, "Organization")
	}

	return c.JSON(http.StatusOK, org)
}

// ListMembers handles listing the organization's member foodbanks
func (h *OrganizationHandlers) ListMembers(c echo.Context) error {
	ctx := c.Request().Context()

	orgID, ok := common.OrganizationIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Organization not found")
	}

	members, err := h.orgService.ListMembers(ctx, orgID)
	if err != nil {
		return common.SendServerError(c, "Failed to list members")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"members": members,
	})
}

// Stats handles the month-to-date rollup across all member foodbanks
func (h *OrganizationHandlers) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	orgID, ok := common.OrganizationIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Organization not found")
	}

	stats, err := h.analyticsService.ForOrganization(ctx, orgID)
	if err != nil {
		return sendServiceError(c, err, "Organization")
	}

	return c.JSON(http.StatusOK, stats)
}
