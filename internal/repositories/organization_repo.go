package repositories

import (
	"context"
	"errors"

	"foodbanked/internal/common"
	"foodbanked/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrganizationRepository interface {
	Create(ctx context.Context, organization *models.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*models.Organization, error)
	Update(ctx context.Context, organization *models.Organization) error
	ListPublic(ctx context.Context) ([]*models.Organization, error)
	ListMissingCoordinates(ctx context.Context, limit int) ([]*models.Organization, error)
	GetAdminByUserID(ctx context.Context, userID uuid.UUID) (*models.OrganizationAdmin, error)
}

type organizationRepo struct {
	db Database
}

func NewOrganizationRepo(db Database) OrganizationRepository {
	return &organizationRepo{db: db}
}

const organizationColumns = `id, name, slug, region, address, city, state, zipcode, phone, email, website,
	timezone, description, is_public, latitude, longitude, created_at, updated_at`

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	org := &models.Organization{}
	err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.Region, &org.Address, &org.City, &org.State,
		&org.Zipcode, &org.Phone, &org.Email, &org.Website, &org.Timezone, &org.Description,
		&org.IsPublic, &org.Latitude, &org.Longitude, &org.CreatedAt, &org.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (r *organizationRepo) Create(ctx context.Context, organization *models.Organization) error {
	query := `
		INSERT INTO organizations (id, name, slug, region, address, city, state, zipcode, phone, email,
			website, timezone, description, is_public, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, organization.ID, organization.Name, organization.Slug, organization.Region,
		organization.Address, organization.City, organization.State, organization.Zipcode, organization.Phone,
		organization.Email, organization.Website, organization.Timezone, organization.Description,
		organization.IsPublic, organization.Latitude, organization.Longitude)
	return err
}

func (r *organizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	return scanOrganization(r.db.QueryRow(ctx, query, id))
}

func (r *organizationRepo) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1`
	return scanOrganization(r.db.QueryRow(ctx, query, slug))
}

func (r *organizationRepo) Update(ctx context.Context, organization *models.Organization) error {
	query := `
		UPDATE organizations
		SET name = $1, slug = $2, region = $3, address = $4, city = $5, state = $6, zipcode = $7,
			phone = $8, email = $9, website = $10, timezone = $11, description = $12, is_public = $13,
			latitude = $14, longitude = $15, updated_at = NOW()
		WHERE id = $16
	`
	_, err := r.db.Exec(ctx, query, organization.Name, organization.Slug, organization.Region,
		organization.Address, organization.City, organization.State, organization.Zipcode,
		organization.Phone, organization.Email, organization.Website, organization.Timezone,
		organization.Description, organization.IsPublic, organization.Latitude, organization.Longitude,
		organization.ID)
	return err
}

func (r *organizationRepo) ListPublic(ctx context.Context) ([]*models.Organization, error) {
	query := `SELECT ` + organizationColumns + `
		FROM organizations
		WHERE is_public = TRUE AND latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY name`
	return r.list(ctx, query)
}

func (r *organizationRepo) ListMissingCoordinates(ctx context.Context, limit int) ([]*models.Organization, error) {
	query := `SELECT ` + organizationColumns + `
		FROM organizations
		WHERE (latitude IS NULL OR longitude IS NULL)
			AND (address <> '' OR city <> '' OR state <> '' OR zipcode <> '')
		ORDER BY updated_at
		LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *organizationRepo) GetAdminByUserID(ctx context.Context, userID uuid.UUID) (*models.OrganizationAdmin, error) {
	admin := &models.OrganizationAdmin{}
	query := `
		SELECT id, user_id, organization_id, created_at
		FROM organization_admins
		WHERE user_id = $1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&admin.ID, &admin.UserID, &admin.OrganizationID, &admin.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *organizationRepo) list(ctx context.Context, query string, args ...any) ([]*models.Organization, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var organizations []*models.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		organizations = append(organizations, org)
	}
	return organizations, rows.Err()
}
