package services

import (
	"context"
	"log"
	"strings"
	"time"

	"foodbanked/internal/common"
	"foodbanked/internal/geocoding"
	"foodbanked/internal/models"
	"foodbanked/internal/repositories"

	"github.com/google/uuid"
)

// OrganizationService manages umbrella organizations and their member
// foodbank listings.
type OrganizationService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*models.Organization, error)
	GetForUser(ctx context.Context, userID uuid.UUID) (*models.Organization, error)
	Update(ctx context.Context, req *UpdateOrganizationRequest) (*models.Organization, error)
	ListMembers(ctx context.Context, organizationID uuid.UUID) ([]*models.Foodbank, error)
	ListPublic(ctx context.Context) ([]*models.Organization, error)
	RetryGeocoding(ctx context.Context) error
}

type organizationService struct {
	orgRepo      repositories.OrganizationRepository
	foodbankRepo repositories.FoodbankRepository
	geocoder     geocoding.Client
}

func NewOrganizationService(orgRepo repositories.OrganizationRepository, foodbankRepo repositories.FoodbankRepository, geocoder geocoding.Client) OrganizationService {
	return &organizationService{
		orgRepo:      orgRepo,
		foodbankRepo: foodbankRepo,
		geocoder:     geocoder,
	}
}

type UpdateOrganizationRequest struct {
	ID       uuid.UUID `json:"-"`
	Name     string    `json:"name" validate:"required"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
	State    string    `json:"state"`
	Zipcode  string    `json:"zipcode"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	Timezone string    `json:"timezone"`
	Region   *string   `json:"region,omitempty"`
	Website  *string   `json:"website,omitempty"`
}

func (s *organizationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	if slug == "" {
		return nil, common.ErrNotFound
	}
	return s.orgRepo.GetBySlug(ctx, slug)
}

// GetForUser resolves the organization a user administers.
func (s *organizationService) GetForUser(ctx context.Context, userID uuid.UUID) (*models.Organization, error) {
	admin, err := s.orgRepo.GetAdminByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.orgRepo.GetByID(ctx, admin.OrganizationID)
}

func (s *organizationService) Update(ctx context.Context, req *UpdateOrganizationRequest) (*models.Organization, error) {
	existing, err := s.orgRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, common.NewValidationError("name", "name is required")
	}
	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, common.NewValidationError("timezone", "unknown timezone "+tz)
	}

	addressChanged := existing.Address != req.Address ||
		existing.City != req.City ||
		existing.State != req.State ||
		existing.Zipcode != req.Zipcode

	existing.Name = req.Name
	existing.Address = req.Address
	existing.City = req.City
	existing.State = req.State
	existing.Zipcode = req.Zipcode
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Timezone = tz
	existing.Region = req.Region
	existing.Website = req.Website

	if addressChanged {
		existing.Latitude = nil
		existing.Longitude = nil
		s.geocode(ctx, existing)
	}

	if err := s.orgRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *organizationService) ListMembers(ctx context.Context, organizationID uuid.UUID) ([]*models.Foodbank, error) {
	return s.foodbankRepo.ListByOrganization(ctx, organizationID)
}

func (s *organizationService) ListPublic(ctx context.Context) ([]*models.Organization, error) {
	return s.orgRepo.ListPublic(ctx)
}

func (s *organizationService) RetryGeocoding(ctx context.Context) error {
	pending, err := s.orgRepo.ListMissingCoordinates(ctx, geocodeRetryBatch)
	if err != nil {
		return err
	}
	for _, org := range pending {
		if org.Address == "" && org.City == "" && org.Zipcode == "" {
			continue
		}
		s.geocode(ctx, org)
		if org.Latitude == nil || org.Longitude == nil {
			continue
		}
		if err := s.orgRepo.Update(ctx, org); err != nil {
			log.Printf("Failed to save coordinates for organization %s: %v", org.ID, err)
		}
	}
	return nil
}

func (s *organizationService) geocode(ctx context.Context, org *models.Organization) {
	coords, err := s.geocoder.Geocode(ctx, org.Address, org.City, org.State, org.Zipcode)
	if err != nil {
		log.Printf("Geocoding failed for organization %s: %v", org.ID, err)
		return
	}
	if coords == nil {
		return
	}
	org.Latitude = &coords.Latitude
	org.Longitude = &coords.Longitude
}
