package repositories

import (
	"context"
	"errors"

	"foodbanked/internal/common"
	"foodbanked/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FoodbankRepository interface {
	Create(ctx context.Context, foodbank *models.Foodbank) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Foodbank, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Foodbank, error)
	Update(ctx context.Context, foodbank *models.Foodbank) error
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.Foodbank, error)
	ListPublic(ctx context.Context) ([]*models.Foodbank, error)
	ListMissingCoordinates(ctx context.Context, limit int) ([]*models.Foodbank, error)
}

type foodbankRepo struct {
	db Database
}

func NewFoodbankRepo(db Database) FoodbankRepository {
	return &foodbankRepo{db: db}
}

const foodbankColumns = `id, user_id, organization_id, name, address, city, state, zipcode, phone, email,
	timezone, food_truck_enabled, allow_by_name, allow_anonymous, description, is_public,
	latitude, longitude, created_at, updated_at`

func scanFoodbank(row pgx.Row) (*models.Foodbank, error) {
	fb := &models.Foodbank{}
	err := row.Scan(&fb.ID, &fb.UserID, &fb.OrganizationID, &fb.Name, &fb.Address, &fb.City, &fb.State,
		&fb.Zipcode, &fb.Phone, &fb.Email, &fb.Timezone, &fb.FoodTruckEnabled, &fb.AllowByName,
		&fb.AllowAnonymous, &fb.Description, &fb.IsPublic, &fb.Latitude, &fb.Longitude,
		&fb.CreatedAt, &fb.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fb, nil
}

func (r *foodbankRepo) Create(ctx context.Context, foodbank *models.Foodbank) error {
	query := `
		INSERT INTO foodbanks (id, user_id, organization_id, name, address, city, state, zipcode, phone, email,
			timezone, food_truck_enabled, allow_by_name, allow_anonymous, description, is_public,
			latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, foodbank.ID, foodbank.UserID, foodbank.OrganizationID, foodbank.Name,
		foodbank.Address, foodbank.City, foodbank.State, foodbank.Zipcode, foodbank.Phone, foodbank.Email,
		foodbank.Timezone, foodbank.FoodTruckEnabled, foodbank.AllowByName, foodbank.AllowAnonymous,
		foodbank.Description, foodbank.IsPublic, foodbank.Latitude, foodbank.Longitude)
	return err
}

func (r *foodbankRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Foodbank, error) {
	query := `SELECT ` + foodbankColumns + ` FROM foodbanks WHERE id = $1`
	return scanFoodbank(r.db.QueryRow(ctx, query, id))
}

func (r *foodbankRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Foodbank, error) {
	query := `SELECT ` + foodbankColumns + ` FROM foodbanks WHERE user_id = $1`
	return scanFoodbank(r.db.QueryRow(ctx, query, userID))
}

func (r *foodbankRepo) Update(ctx context.Context, foodbank *models.Foodbank) error {
	query := `
		UPDATE foodbanks
		SET organization_id = $1, name = $2, address = $3, city = $4, state = $5, zipcode = $6,
			phone = $7, email = $8, timezone = $9, food_truck_enabled = $10, allow_by_name = $11,
			allow_anonymous = $12, description = $13, is_public = $14, latitude = $15, longitude = $16,
			updated_at = NOW()
		WHERE id = $17
	`
	_, err := r.db.Exec(ctx, query, foodbank.OrganizationID, foodbank.Name, foodbank.Address, foodbank.City,
		foodbank.State, foodbank.Zipcode, foodbank.Phone, foodbank.Email, foodbank.Timezone,
		foodbank.FoodTruckEnabled, foodbank.AllowByName, foodbank.AllowAnonymous, foodbank.Description,
		foodbank.IsPublic, foodbank.Latitude, foodbank.Longitude, foodbank.ID)
	return err
}

func (r *foodbankRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.Foodbank, error) {
	query := `SELECT ` + foodbankColumns + ` FROM foodbanks WHERE organization_id = $1 ORDER BY name`
	return r.list(ctx, query, organizationID)
}

func (r *foodbankRepo) ListPublic(ctx context.Context) ([]*models.Foodbank, error) {
	query := `SELECT ` + foodbankColumns + `
		FROM foodbanks
		WHERE is_public = TRUE AND latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY name`
	return r.list(ctx, query)
}

func (r *foodbankRepo) ListMissingCoordinates(ctx context.Context, limit int) ([]*models.Foodbank, error) {
	query := `SELECT ` + foodbankColumns + `
		FROM foodbanks
		WHERE (latitude IS NULL OR longitude IS NULL)
			AND (address <> '' OR city <> '' OR state <> '' OR zipcode <> '')
		ORDER BY updated_at
		LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *foodbankRepo) list(ctx context.Context, query string, args ...any) ([]*models.Foodbank, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foodbanks []*models.Foodbank
	for rows.Next() {
		fb, err := scanFoodbank(rows)
		if err != nil {
			return nil, err
		}
		foodbanks = append(foodbanks, fb)
	}
	return foodbanks, rows.Err()
}
