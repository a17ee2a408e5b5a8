package handlers

import (
	"net/http"

	"foodbanked/internal/common"
	"foodbanked/internal/models"
	"foodbanked/internal/services"

	"github.com/labstack/echo/v4"
)

// LocationHandlers serves the public, unauthenticated locations
// directory. Only opted-in, geocoded profiles appear, and only public
// fields leave the server.
type LocationHandlers struct {
	foodbankService services.FoodbankService
	orgService      services.OrganizationService
}

// NewLocationHandlers creates a new location handlers instance
func NewLocationHandlers(foodbankService services.FoodbankService, orgService services.OrganizationService) *LocationHandlers {
	return &LocationHandlers{
		foodbankService: foodbankService,
		orgService:      orgService,
	}
}

// PublicLocation is the directory projection of a foodbank profile.
type PublicLocation struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Zipcode     string  `json:"zipcode"`
	Phone       string  `json:"phone"`
	Description *string `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// PublicOrganization is the directory projection of an organization.
type PublicOrganization struct {
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	Region    *string  `json:"region,omitempty"`
	Website   *string  `json:"website,omitempty"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// ListLocations handles the public foodbank directory
func (h *LocationHandlers) ListLocations(c echo.Context) error {
	ctx := c.Request().Context()

	foodbanks, err := h.foodbankService.ListPublic(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to list locations")
	}

	locations := make([]*PublicLocation, 0, len(foodbanks))
	for _, fb := range foodbanks {
		locations = append(locations, publicLocation(fb))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"locations": locations,
	})
}

// ListOrganizations handles the public organization directory
func (h *LocationHandlers) ListOrganizations(c echo.Context) error {
	ctx := c.Request().Context()

	orgs, err := h.orgService.ListPublic(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to list organizations")
	}

	public := make([]*PublicOrganization, 0, len(orgs))
	for _, org := range orgs {
		public = append(public, publicOrganization(org))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"organizations": public,
	})
}

// GetOrganization handles the public organization page, looked up by
// slug, with its member foodbank locations.
func (h *LocationHandlers) GetOrganization(c echo.Context) error {
	ctx := c.Request().Context()

	slug := c.Param("slug")
	org, err := h.orgService.GetBySlug(ctx, slug)
	if err != nil {
		return sendServiceError(c, err, "Organization")
	}

	members, err := h.orgService.ListMembers(ctx, org.ID)
	if err != nil {
		return common.SendServerError(c, "Failed to list members")
	}

	locations := make([]*PublicLocation, 0, len(members))
	for _, fb := range members {
		if !fb.IsPublic || !fb.Geocoded() {
			continue
		}
		locations = append(locations, publicLocation(fb))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"organization": publicOrganization(org),
		"locations":    locations,
	})
}

func publicLocation(fb *models.Foodbank) *PublicLocation {
	loc := &PublicLocation{
		Name:        fb.Name,
		Address:     fb.Address,
		City:        fb.City,
		State:       fb.State,
		Zipcode:     fb.Zipcode,
		Phone:       fb.Phone,
		Description: fb.Description,
	}
	if fb.Latitude != nil {
		loc.Latitude = *fb.Latitude
	}
	if fb.Longitude != nil {
		loc.Longitude = *fb.Longitude
	}
	return loc
}

func publicOrganization(org *models.Organization) *PublicOrganization {
	return &PublicOrganization{
		Name:      org.Name,
		Slug:      org.Slug,
		Region:    org.Region,
		Website:   org.Website,
		City:      org.City,
		State:     org.State,
		Latitude:  org.Latitude,
		Longitude: org.Longitude,
	}
}
