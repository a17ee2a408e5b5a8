package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodbanked/internal/common"
	"foodbanked/internal/localday"
	"foodbanked/internal/models"
	"foodbanked/internal/repositories"

	"github.com/google/uuid"
)

// VisitEntry is one validated form submission. A single entry may fan
// out into two visit rows when the foodbank runs both a pantry and a
// food truck.
type VisitEntry struct {
	Zipcode             string     `json:"zipcode"`
	City                *string    `json:"city"`
	State               *string    `json:"state"`
	HouseholdSize       int        `json:"household_size"`
	Age0To18            int        `json:"age_0_18"`
	Age19To59           int        `json:"age_19_59"`
	Age60Plus           int        `json:"age_60_plus"`
	FirstVisitThisMonth bool       `json:"first_visit_this_month"`
	Comments            *string    `json:"comments"`
	PatronID            *uuid.UUID `json:"patron_id"`
	Pantry              bool       `json:"pantry"`
	FoodTruck           bool       `json:"food_truck"`
}

type VisitService interface {
	// Record validates entry and persists one or two visit rows in a
	// single transaction, dated to the foodbank's local today.
	Record(ctx context.Context, tenantID uuid.UUID, entry *VisitEntry) ([]*models.Visit, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Visit, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, entry *VisitEntry) (*models.Visit, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Visit, error)
	ListWindow(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*models.Visit, error)
	ListByPatron(ctx context.Context, tenantID, patronID uuid.UUID) ([]*models.Visit, error)
}

type visitService struct {
	visitRepo    repositories.VisitRepository
	patronRepo   repositories.PatronRepository
	foodbankRepo repositories.FoodbankRepository
	now          func() time.Time
}

func NewVisitService(visitRepo repositories.VisitRepository, patronRepo repositories.PatronRepository, foodbankRepo repositories.FoodbankRepository) VisitService {
	return &visitService{
		visitRepo:    visitRepo,
		patronRepo:   patronRepo,
		foodbankRepo: foodbankRepo,
		now:          time.Now,
	}
}

func (s *visitService) Record(ctx context.Context, tenantID uuid.UUID, entry *VisitEntry) ([]*models.Visit, error) {
	foodbank, err := s.foodbankRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	foodTruckRows, err := visitTypes(foodbank, entry)
	if err != nil {
		return nil, err
	}

	// The visit date is the foodbank's local calendar day, not the
	// commit instant: entries near local midnight bucket with the
	// pantry's operating calendar, not server UTC.
	visitDate, err := localday.Today(foodbank.Timezone, s.now())
	if err != nil {
		return nil, err
	}

	base := &models.Visit{
		TenantID:            tenantID,
		VisitDate:           visitDate,
		Zipcode:             strings.TrimSpace(entry.Zipcode),
		City:                entry.City,
		State:               entry.State,
		HouseholdSize:       entry.HouseholdSize,
		Age0To18:            entry.Age0To18,
		Age19To59:           entry.Age19To59,
		Age60Plus:           entry.Age60Plus,
		FirstVisitThisMonth: entry.FirstVisitThisMonth,
		Comments:            entry.Comments,
	}

	s.attachPatron(ctx, tenantID, entry.PatronID, base)

	visits := make([]*models.Visit, 0, len(foodTruckRows))
	for _, isFoodTruck := range foodTruckRows {
		visit := *base
		visit.ID = uuid.New()
		visit.IsFoodTruck = isFoodTruck
		visits = append(visits, &visit)
	}

	if err := s.visitRepo.CreateBatch(ctx, visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// attachPatron links the patron and snapshots identity fields as of this
// instant. An id that does not resolve within the tenant's scope (wrong
// tenant or deleted) silently records an anonymous visit.
func (s *visitService) attachPatron(ctx context.Context, tenantID uuid.UUID, patronID *uuid.UUID, visit *models.Visit) {
	if patronID == nil {
		return
	}
	patron, err := s.patronRepo.GetByID(ctx, tenantID, *patronID)
	if err != nil {
		return
	}
	visit.PatronID = &patron.ID
	visit.PatronFirstName = &patron.FirstName
	visit.PatronLastName = &patron.LastName
	visit.PatronAddress = patron.Address
	visit.PatronCity = patron.City
	visit.PatronState = patron.State
	visit.PatronZipcode = &patron.Zipcode
}

func (s *visitService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Visit, error) {
	return s.visitRepo.GetByID(ctx, tenantID, id)
}

// Update edits the entry fields of an existing visit. The visit date,
// visit type and the patron snapshot are fixed at creation and are not
// re-validated here.
func (s *visitService) Update(ctx context.Context, tenantID, id uuid.UUID, entry *VisitEntry) (*models.Visit, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	visit, err := s.visitRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	visit.Zipcode = strings.TrimSpace(entry.Zipcode)
	visit.City = entry.City
	visit.State = entry.State
	visit.HouseholdSize = entry.HouseholdSize
	visit.Age0To18 = entry.Age0To18
	visit.Age19To59 = entry.Age19To59
	visit.Age60Plus = entry.Age60Plus
	visit.FirstVisitThisMonth = entry.FirstVisitThisMonth
	visit.Comments = entry.Comments

	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

func (s *visitService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.visitRepo.Delete(ctx, tenantID, id)
}

func (s *visitService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Visit, error) {
	return s.visitRepo.List(ctx, tenantID, limit, offset)
}

// ListWindow returns visits dated within the inclusive range, oldest
// first.
func (s *visitService) ListWindow(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*models.Visit, error) {
	if to.Before(from) {
		return nil, common.NewValidationError("to", "end date must not be before start date")
	}
	return s.visitRepo.ListBetween(ctx, tenantID, from, to)
}

func (s *visitService) ListByPatron(ctx context.Context, tenantID, patronID uuid.UUID) ([]*models.Visit, error) {
	return s.visitRepo.ListByPatron(ctx, tenantID, patronID)
}

func validateEntry(entry *VisitEntry) error {
	if strings.TrimSpace(entry.Zipcode) == "" {
		return common.NewValidationError("zipcode", "zip code is required")
	}
	if len(strings.TrimSpace(entry.Zipcode)) > 10 {
		return common.NewValidationError("zipcode", "zip code cannot exceed 10 characters")
	}
	if entry.HouseholdSize < 1 {
		return common.NewValidationError("household_size", "household size must be at least 1")
	}
	if entry.Age0To18 < 0 || entry.Age19To59 < 0 || entry.Age60Plus < 0 {
		return common.NewValidationError("age_groups", "age group counts cannot be negative")
	}

	totalAges := entry.Age0To18 + entry.Age19To59 + entry.Age60Plus
	if totalAges != entry.HouseholdSize {
		return common.NewValidationError("age_groups",
			fmt.Sprintf("age groups must add up to household size (%d); currently adds to %d", entry.HouseholdSize, totalAges))
	}
	return nil
}

// visitTypes resolves the fan-out. A foodbank without food-truck mode
// always records exactly one pantry visit regardless of submitted flags;
// with it enabled the caller must pick at least one type, and picking
// both yields two rows.
func visitTypes(foodbank *models.Foodbank, entry *VisitEntry) ([]bool, error) {
	if !foodbank.FoodTruckEnabled {
		return []bool{false}, nil
	}
	if !entry.Pantry && !entry.FoodTruck {
		return nil, common.NewValidationError("visit_type", "at least one visit type is required")
	}

	var rows []bool
	if entry.Pantry {
		rows = append(rows, false)
	}
	if entry.FoodTruck {
		rows = append(rows, true)
	}
	return rows, nil
}
