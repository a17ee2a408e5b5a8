package services

import (
	"context"
	"strings"

	"foodbanked/internal/common"
	"foodbanked/internal/models"
	"foodbanked/internal/repositories"

	"github.com/google/uuid"
)

// PatronInput carries the editable patron fields.
type PatronInput struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Zipcode   string  `json:"zipcode"`
	Phone     *string `json:"phone"`
	Comments  *string `json:"comments"`
}

// PatronSuggestion is the lightweight lookup shape the visit form's
// autocomplete consumes.
type PatronSuggestion struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Zipcode   string    `json:"zipcode"`
}

type PatronService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input *PatronInput) (*models.Patron, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Patron, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input *PatronInput) (*models.Patron, error)
	// Delete removes the patron; visits referencing it are detached
	// (patron set to null), never deleted.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Patron, error)
	Search(ctx context.Context, tenantID uuid.UUID, filter *models.PatronSearchFilter) ([]*models.Patron, error)
	Lookup(ctx context.Context, tenantID uuid.UUID, query string) ([]*PatronSuggestion, error)
}

type patronService struct {
	patronRepo repositories.PatronRepository
}

func NewPatronService(patronRepo repositories.PatronRepository) PatronService {
	return &patronService{patronRepo: patronRepo}
}

func (s *patronService) Create(ctx context.Context, tenantID uuid.UUID, input *PatronInput) (*models.Patron, error) {
	if err := validatePatron(input); err != nil {
		return nil, err
	}

	patron := &models.Patron{
		ID:        uuid.New(),
		TenantID:  tenantID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Address:   input.Address,
		City:      input.City,
		State:     input.State,
		Zipcode:   strings.TrimSpace(input.Zipcode),
		Phone:     input.Phone,
		Comments:  input.Comments,
	}
	if err := s.patronRepo.Create(ctx, patron); err != nil {
		return nil, err
	}
	return patron, nil
}

func (s *patronService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Patron, error) {
	return s.patronRepo.GetByID(ctx, tenantID, id)
}

func (s *patronService) Update(ctx context.Context, tenantID, id uuid.UUID, input *PatronInput) (*models.Patron, error) {
	if err := validatePatron(input); err != nil {
		return nil, err
	}

	patron, err := s.patronRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	patron.FirstName = strings.TrimSpace(input.FirstName)
	patron.LastName = strings.TrimSpace(input.LastName)
	patron.Address = input.Address
	patron.City = input.City
	patron.State = input.State
	patron.Zipcode = strings.TrimSpace(input.Zipcode)
	patron.Phone = input.Phone
	patron.Comments = input.Comments

	if err := s.patronRepo.Update(ctx, patron); err != nil {
		return nil, err
	}
	return patron, nil
}

func (s *patronService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.patronRepo.Delete(ctx, tenantID, id)
}

func (s *patronService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Patron, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.patronRepo.List(ctx, tenantID, limit, offset)
}

func (s *patronService) Search(ctx context.Context, tenantID uuid.UUID, filter *models.PatronSearchFilter) ([]*models.Patron, error) {
	return s.patronRepo.Search(ctx, tenantID, filter)
}

func (s *patronService) Lookup(ctx context.Context, tenantID uuid.UUID, query string) ([]*PatronSuggestion, error) {
	patrons, err := s.patronRepo.Search(ctx, tenantID, &models.PatronSearchFilter{Query: query, Limit: 10})
	if err != nil {
		return nil, err
	}

	suggestions := make([]*PatronSuggestion, 0, len(patrons))
	for _, p := range patrons {
		suggestions = append(suggestions, &PatronSuggestion{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Zipcode:   p.Zipcode,
		})
	}
	return suggestions, nil
}

func validatePatron(input *PatronInput) error {
	if strings.TrimSpace(input.FirstName) == "" {
		return common.NewValidationError("first_name", "first name is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		return common.NewValidationError("last_name", "last name is required")
	}
	if strings.TrimSpace(input.Zipcode) == "" {
		return common.NewValidationError("zipcode", "zip code is required")
	}
	if len(strings.TrimSpace(input.Zipcode)) > 10 {
		return common.NewValidationError("zipcode", "zip code cannot exceed 10 characters")
	}
	return nil
}
