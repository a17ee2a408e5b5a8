package services

import (
	"context"
	"strings"

	"foodbanked/internal/common"
	"foodbanked/internal/models"
	"foodbanked/internal/repositories"

	"github.com/google/uuid"
)

// ServiceZipcodeService manages the informational list of zip codes a
// foodbank serves. The list never gates visit recording.
type ServiceZipcodeService interface {
	Create(ctx context.Context, tenantID uuid.UUID, zipcode, city, state string) (*models.ServiceZipcode, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.ServiceZipcode, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type serviceZipcodeService struct {
	zipcodeRepo repositories.ServiceZipcodeRepository
}

func NewServiceZipcodeService(zipcodeRepo repositories.ServiceZipcodeRepository) ServiceZipcodeService {
	return &serviceZipcodeService{zipcodeRepo: zipcodeRepo}
}

func (s *serviceZipcodeService) Create(ctx context.Context, tenantID uuid.UUID, zipcode, city, state string) (*models.ServiceZipcode, error) {
	zipcode = strings.TrimSpace(zipcode)
	if zipcode == "" {
		return nil, common.NewValidationError("zipcode", "zipcode is required")
	}
	if len(zipcode) > 10 {
		return nil, common.NewValidationError("zipcode", "zipcode must be at most 10 characters")
	}

	existing, err := s.zipcodeRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for _, z := range existing {
		if z.Zipcode == zipcode {
			return nil, common.NewValidationError("zipcode", "zipcode is already listed")
		}
	}

	zip := &models.ServiceZipcode{
		ID:       uuid.New(),
		TenantID: tenantID,
		Zipcode:  zipcode,
		City:     city,
		State:    state,
	}
	if err := s.zipcodeRepo.Create(ctx, zip); err != nil {
		return nil, err
	}
	return zip, nil
}

func (s *serviceZipcodeService) List(ctx context.Context, tenantID uuid.UUID) ([]*models.ServiceZipcode, error) {
	return s.zipcodeRepo.ListByTenant(ctx, tenantID)
}

func (s *serviceZipcodeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.zipcodeRepo.Delete(ctx, tenantID, id)
}
