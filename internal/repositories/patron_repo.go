package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"foodbanked/internal/common"
	"foodbanked/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PatronRepository interface {
	Create(ctx context.Context, patron *models.Patron) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Patron, error)
	Update(ctx context.Context, patron *models.Patron) error
	// Delete removes the patron and nulls the patron reference on any
	// visits pointing at it, in one transaction. Visit snapshot fields
	// are left untouched.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Patron, error)
	Search(ctx context.Context, tenantID uuid.UUID, filter *models.PatronSearchFilter) ([]*models.Patron, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
}

type patronRepo struct {
	db Database
}

func NewPatronRepo(db Database) PatronRepository {
	return &patronRepo{db: db}
}

const patronColumns = `id, tenant_id, first_name, last_name, address, city, state, zipcode, phone, comments,
	created_at, updated_at`

func scanPatron(row pgx.Row) (*models.Patron, error) {
	p := &models.Patron{}
	err := row.Scan(&p.ID, &p.TenantID, &p.FirstName, &p.LastName, &p.Address, &p.City, &p.State,
		&p.Zipcode, &p.Phone, &p.Comments, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *patronRepo) Create(ctx context.Context, patron *models.Patron) error {
	query := `
		INSERT INTO patrons (id, tenant_id, first_name, last_name, address, city, state, zipcode, phone,
			comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, patron.ID, patron.TenantID, patron.FirstName, patron.LastName,
		patron.Address, patron.City, patron.State, patron.Zipcode, patron.Phone, patron.Comments)
	return err
}

func (r *patronRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Patron, error) {
	query := `SELECT ` + patronColumns + ` FROM patrons WHERE tenant_id = $1 AND id = $2`
	return scanPatron(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *patronRepo) Update(ctx context.Context, patron *models.Patron) error {
	query := `
		UPDATE patrons
		SET first_name = $1, last_name = $2, address = $3, city = $4, state = $5, zipcode = $6,
			phone = $7, comments = $8, updated_at = NOW()
		WHERE tenant_id = $9 AND id = $10
	`
	tag, err := r.db.Exec(ctx, query, patron.FirstName, patron.LastName, patron.Address, patron.City,
		patron.State, patron.Zipcode, patron.Phone, patron.Comments, patron.TenantID, patron.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *patronRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	detach := `UPDATE visits SET patron_id = NULL WHERE tenant_id = $1 AND patron_id = $2`
	if _, err := tx.Exec(ctx, detach, tenantID, id); err != nil {
		return err
	}

	del := `DELETE FROM patrons WHERE tenant_id = $1 AND id = $2`
	tag, err := tx.Exec(ctx, del, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *patronRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Patron, error) {
	query := `SELECT ` + patronColumns + `
		FROM patrons
		WHERE tenant_id = $1
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, tenantID, limit, offset)
}

func (r *patronRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.PatronSearchFilter) ([]*models.Patron, error) {
	query := `SELECT ` + patronColumns + ` FROM patrons WHERE tenant_id = $1`
	args := []any{tenantID}

	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		n := len(args)
		query += ` AND (first_name ILIKE $` + strconv.Itoa(n) +
			` OR last_name ILIKE $` + strconv.Itoa(n) +
			` OR address ILIKE $` + strconv.Itoa(n) +
			` OR zipcode ILIKE $` + strconv.Itoa(n) +
			` OR phone ILIKE $` + strconv.Itoa(n) + `)`
	}
	if letter := strings.TrimSpace(filter.Letter); letter != "" {
		args = append(args, letter+"%")
		query += ` AND last_name ILIKE $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY last_name, first_name`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	return r.list(ctx, query, args...)
}

func (r *patronRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM patrons WHERE tenant_id = $1`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&count)
	return count, err
}

func (r *patronRepo) list(ctx context.Context, query string, args ...any) ([]*models.Patron, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patrons []*models.Patron
	for rows.Next() {
		p, err := scanPatron(rows)
		if err != nil {
			return nil, err
		}
		patrons = append(patrons, p)
	}
	return patrons, rows.Err()
}
