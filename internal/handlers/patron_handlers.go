package handlers

import (
	"net/http"

	"foodbanked/internal/common"
	"foodbanked/internal/models"
	"foodbanked/internal/services"

	"github.com/labstack/echo/v4"
)

// PatronHandlers handles patron directory HTTP requests
type PatronHandlers struct {
	patronService services.PatronService
}

// NewPatronHandlers creates a new patron handlers instance
func NewPatronHandlers(patronService services.PatronService) *PatronHandlers {
	return &PatronHandlers{patronService: patronService}
}

// CreatePatron handles adding a patron to the directory
func (h *PatronHandlers) CreatePatron(c echo.Context) error {
	ctx := c.Request().Context()

	var input services.PatronInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	patron, err := h.patronService.Create(ctx, tenantID, &input)
	if err != nil {
		return sendServiceError(c, err, "Patron")
	}

	return c.JSON(http.StatusCreated, patron)
}

// ListPatronsRequest represents query parameters for the patron list
type ListPatronsRequest struct {
	Query  string `query:"q"`
	Letter string `query:"letter"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// ListPatrons handles browsing and searching the patron directory.
// Passing q or letter switches from plain listing to filtered search.
func (h *PatronHandlers) ListPatrons(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListPatronsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if req.Limit > 200 {
		req.Limit = 200
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	var patrons []*models.Patron
	var err error
	if req.Query != "" || req.Letter != "" {
		filter := &models.PatronSearchFilter{
			Query:  req.Query,
			Letter: req.Letter,
			Limit:  req.Limit,
			Offset: req.Offset,
		}
		patrons, err = h.patronService.Search(ctx, tenantID, filter)
	} else {
		patrons, err = h.patronService.List(ctx, tenantID, req.Limit, req.Offset)
	}
	if err != nil {
		return common.SendServerError(c, "Failed to list patrons")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"patrons": patrons,
		"limit":   req.Limit,
		"offset":  req.Offset,
	})
}

// LookupPatrons handles type-ahead patron suggestions for the visit form
func (h *PatronHandlers) LookupPatrons(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter q is required")
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	suggestions, err := h.patronService.Lookup(ctx, tenantID, query)
	if err != nil {
		return common.SendServerError(c, "Failed to look up patrons")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}

// GetPatron handles getting patron details by ID
func (h *PatronHandlers) GetPatron(c echo.Context) error {
	ctx := c.Request().Context()

	patronID, err := common.ValidateUUID(c.Param("id"), "patron ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	patron, err := h.patronService.GetByID(ctx, tenantID, patronID)
	if err != nil {
		return sendServiceError(c, err, "Patron")
	}

	return c.JSON(http.StatusOK, patron)
}

// UpdatePatron handles editing patron details
func (h *PatronHandlers) UpdatePatron(c echo.Context) error {
	ctx := c.Request().Context()

	patronID, err := common.ValidateUUID(c.Param("id"), "patron ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var input services.PatronInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	patron, err := h.patronService.Update(ctx, tenantID, patronID, &input)
	if err != nil {
		return sendServiceError(c, err, "Patron")
	}

	return c.JSON(http.StatusOK, patron)
}

// DeletePatron handles removing a patron. Their past visits stay on the
// books as anonymous records.
func (h *PatronHandlers) DeletePatron(c echo.Context) error {
	ctx := c.Request().Context()

	patronID, err := common.ValidateUUID(c.Param("id"), "patron ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.FoodbankIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Foodbank not found")
	}

	if err := h.patronService.Delete(ctx, tenantID, patronID); err != nil {
		return sendServiceError(c, err, "Patron")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Patron deleted successfully",
	})
}
