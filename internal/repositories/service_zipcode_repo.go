package repositories

import (
	"context"
	"errors"

	"foodbanked/internal/common"
	"foodbanked/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ServiceZipcodeRepository interface {
	Create(ctx context.Context, zipcode *models.ServiceZipcode) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ServiceZipcode, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.ServiceZipcode, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type serviceZipcodeRepo struct {
	db Database
}

func NewServiceZipcodeRepo(db Database) ServiceZipcodeRepository {
	return &serviceZipcodeRepo{db: db}
}

func (r *serviceZipcodeRepo) Create(ctx context.Context, zipcode *models.ServiceZipcode) error {
	query := `
		INSERT INTO service_zipcodes (id, tenant_id, zipcode, city, state, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, zipcode.ID, zipcode.TenantID, zipcode.Zipcode, zipcode.City, zipcode.State)
	return err
}

func (r *serviceZipcodeRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ServiceZipcode, error) {
	zip := &models.ServiceZipcode{}
	query := `
		SELECT id, tenant_id, zipcode, city, state, created_at
		FROM service_zipcodes
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&zip.ID, &zip.TenantID, &zip.Zipcode, &zip.City, &zip.State, &zip.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return zip, nil
}

func (r *serviceZipcodeRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.ServiceZipcode, error) {
	query := `
		SELECT id, tenant_id, zipcode, city, state, created_at
		FROM service_zipcodes
		WHERE tenant_id = $1
		ORDER BY zipcode
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zipcodes []*models.ServiceZipcode
	for rows.Next() {
		zip := &models.ServiceZipcode{}
		if err := rows.Scan(&zip.ID, &zip.TenantID, &zip.Zipcode, &zip.City, &zip.State, &zip.CreatedAt); err != nil {
			return nil, err
		}
		zipcodes = append(zipcodes, zip)
	}
	return zipcodes, rows.Err()
}

func (r *serviceZipcodeRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM service_zipcodes WHERE tenant_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
