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

// geocodeRetryBatch caps how many stale rows one retry pass touches,
// keeping each run well under Nominatim's request budget.
const geocodeRetryBatch = 25

// FoodbankService manages foodbank profiles. Address edits trigger a
// re-geocode; a geocoder outage never blocks the profile save.
type FoodbankService interface {
	Create(ctx context.Context, req *CreateFoodbankRequest) (*models.Foodbank, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Foodbank, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Foodbank, error)
	Update(ctx context.Context, req *UpdateFoodbankRequest) (*models.Foodbank, error)
	ListPublic(ctx context.Context) ([]*models.Foodbank, error)
	RetryGeocoding(ctx context.Context) error
}

type foodbankService struct {
	foodbankRepo repositories.FoodbankRepository
	orgRepo      repositories.OrganizationRepository
	geocoder     geocoding.Client
}

func NewFoodbankService(foodbankRepo repositories.FoodbankRepository, orgRepo repositories.OrganizationRepository, geocoder geocoding.Client) FoodbankService {
	return &foodbankService{
		foodbankRepo: foodbankRepo,
		orgRepo:      orgRepo,
		geocoder:     geocoder,
	}
}

type CreateFoodbankRequest struct {
	UserID           uuid.UUID  `json:"-"`
	OrganizationID   *uuid.UUID `json:"organization_id,omitempty"`
	Name             string     `json:"name" validate:"required"`
	Address          string     `json:"address"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Zipcode          string     `json:"zipcode"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	Timezone         string     `json:"timezone"`
	FoodTruckEnabled bool       `json:"food_truck_enabled"`
	AllowByName      bool       `json:"allow_by_name"`
	AllowAnonymous   bool       `json:"allow_anonymous"`
	Description      *string    `json:"description,omitempty"`
	IsPublic         bool       `json:"is_public"`
}

type UpdateFoodbankRequest struct {
	ID               uuid.UUID `json:"-"`
	Name             string    `json:"name" validate:"required"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Zipcode          string    `json:"zipcode"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Timezone         string    `json:"timezone"`
	FoodTruckEnabled bool      `json:"food_truck_enabled"`
	AllowByName      bool      `json:"allow_by_name"`
	AllowAnonymous   bool      `json:"allow_anonymous"`
	Description      *string   `json:"description,omitempty"`
	IsPublic         bool      `json:"is_public"`
}

func (s *foodbankService) Create(ctx context.Context, req *CreateFoodbankRequest) (*models.Foodbank, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, common.NewValidationError("name", "name is required")
	}
	tz := req.Timezone
	if tz == "" {
		tz = models.DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, common.NewValidationError("timezone", "unknown timezone "+tz)
	}

	foodbank := &models.Foodbank{
		ID:               uuid.New(),
		UserID:           req.UserID,
		OrganizationID:   req.OrganizationID,
		Name:             req.Name,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		Zipcode:          req.Zipcode,
		Phone:            req.Phone,
		Email:            req.Email,
		Timezone:         tz,
		FoodTruckEnabled: req.FoodTruckEnabled,
		AllowByName:      req.AllowByName,
		AllowAnonymous:   req.AllowAnonymous,
		Description:      req.Description,
		IsPublic:         req.IsPublic,
	}

	s.geocode(ctx, foodbank)

	if err := s.foodbankRepo.Create(ctx, foodbank); err != nil {
		return nil, err
	}
	return foodbank, nil
}

func (s *foodbankService) GetByID(ctx context.Context, id uuid.UUID) (*models.Foodbank, error) {
	return s.foodbankRepo.GetByID(ctx, id)
}

func (s *foodbankService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Foodbank, error) {
	return s.foodbankRepo.GetByUserID(ctx, userID)
}

func (s *foodbankService) Update(ctx context.Context, req *UpdateFoodbankRequest) (*models.Foodbank, error) {
	existing, err := s.foodbankRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, common.NewValidationError("name", "name is required")
	}
	tz := req.Timezone
	if tz == "" {
		tz = models.DefaultTimezone
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
	existing.FoodTruckEnabled = req.FoodTruckEnabled
	existing.AllowByName = req.AllowByName
	existing.AllowAnonymous = req.AllowAnonymous
	existing.Description = req.Description
	existing.IsPublic = req.IsPublic

	if addressChanged {
		// Stale coordinates are worse than none: clear them before the
		// lookup so a geocoder failure leaves the pin absent, not wrong.
		existing.Latitude = nil
		existing.Longitude = nil
		s.geocode(ctx, existing)
	}

	if err := s.foodbankRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ListPublic returns geocoded, publicly listed foodbanks for the open
// locations directory.
func (s *foodbankService) ListPublic(ctx context.Context) ([]*models.Foodbank, error) {
	return s.foodbankRepo.ListPublic(ctx)
}

// RetryGeocoding re-attempts coordinate lookup for every foodbank with
// an address but no coordinates. Run periodically by the scheduler.
func (s *foodbankService) RetryGeocoding(ctx context.Context) error {
	pending, err := s.foodbankRepo.ListMissingCoordinates(ctx, geocodeRetryBatch)
	if err != nil {
		return err
	}
	for _, foodbank := range pending {
		if !foodbank.HasAddress() {
			continue
		}
		s.geocode(ctx, foodbank)
		if !foodbank.Geocoded() {
			continue
		}
		if err := s.foodbankRepo.Update(ctx, foodbank); err != nil {
			log.Printf("Failed to save coordinates for foodbank %s: %v", foodbank.ID, err)
		}
	}
	return nil
}

func (s *foodbankService) geocode(ctx context.Context, foodbank *models.Foodbank) {
	coords, err := s.geocoder.Geocode(ctx, foodbank.Address, foodbank.City, foodbank.State, foodbank.Zipcode)
	if err != nil {
		log.Printf("Geocoding failed for foodbank %s: %v", foodbank.ID, err)
		return
	}
	if coords == nil {
		return
	}
	foodbank.Latitude = &coords.Latitude
	foodbank.Longitude = &coords.Longitude
}
