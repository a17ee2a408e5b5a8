package repositories

import (
	"context"
	"errors"
	"time"

	"foodbanked/internal/common"
	"foodbanked/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VisitRepository interface {
	// CreateBatch inserts every visit in one transaction. Either all rows
	// commit or none do; a pantry + food-truck submission never leaves a
	// partial record behind.
	CreateBatch(ctx context.Context, visits []*models.Visit) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Visit, error)
	Update(ctx context.Context, visit *models.Visit) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Visit, error)
	ListBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*models.Visit, error)
	ListByPatron(ctx context.Context, tenantID, patronID uuid.UUID) ([]*models.Visit, error)
	ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]*models.Visit, error)
	CountOnDate(ctx context.Context, tenantID uuid.UUID, date time.Time) (int, error)
	CountSince(ctx context.Context, tenantID uuid.UUID, from time.Time) (int, error)
}

type visitRepo struct {
	db Database
}

func NewVisitRepo(db Database) VisitRepository {
	return &visitRepo{db: db}
}

const visitColumns = `id, tenant_id, patron_id, visit_date, is_food_truck, zipcode, city, state,
	household_size, age_0_18, age_19_59, age_60_plus, first_visit_this_month, comments,
	patron_first_name, patron_last_name, patron_address, patron_city, patron_state, patron_zipcode,
	created_at`

const visitInsert = `
	INSERT INTO visits (id, tenant_id, patron_id, visit_date, is_food_truck, zipcode, city, state,
		household_size, age_0_18, age_19_59, age_60_plus, first_visit_this_month, comments,
		patron_first_name, patron_last_name, patron_address, patron_city, patron_state, patron_zipcode,
		created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW())
`

func scanVisit(row pgx.Row) (*models.Visit, error) {
	v := &models.Visit{}
	err := row.Scan(&v.ID, &v.TenantID, &v.PatronID, &v.VisitDate, &v.IsFoodTruck, &v.Zipcode, &v.City,
		&v.State, &v.HouseholdSize, &v.Age0To18, &v.Age19To59, &v.Age60Plus, &v.FirstVisitThisMonth,
		&v.Comments, &v.PatronFirstName, &v.PatronLastName, &v.PatronAddress, &v.PatronCity,
		&v.PatronState, &v.PatronZipcode, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func visitInsertArgs(v *models.Visit) []any {
	return []any{v.ID, v.TenantID, v.PatronID, v.VisitDate, v.IsFoodTruck, v.Zipcode, v.City, v.State,
		v.HouseholdSize, v.Age0To18, v.Age19To59, v.Age60Plus, v.FirstVisitThisMonth, v.Comments,
		v.PatronFirstName, v.PatronLastName, v.PatronAddress, v.PatronCity, v.PatronState, v.PatronZipcode}
}

func (r *visitRepo) CreateBatch(ctx context.Context, visits []*models.Visit) error {
	if len(visits) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, visit := range visits {
		if _, err := tx.Exec(ctx, visitInsert, visitInsertArgs(visit)...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *visitRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE tenant_id = $1 AND id = $2`
	return scanVisit(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *visitRepo) Update(ctx context.Context, visit *models.Visit) error {
	// The edit flow only touches the entry fields. Visit date, visit type
	// and the patron snapshot are fixed at creation.
	query := `
		UPDATE visits
		SET zipcode = $1, city = $2, state = $3, household_size = $4, age_0_18 = $5, age_19_59 = $6,
			age_60_plus = $7, first_visit_this_month = $8, comments = $9
		WHERE tenant_id = $10 AND id = $11
	`
	tag, err := r.db.Exec(ctx, query, visit.Zipcode, visit.City, visit.State, visit.HouseholdSize,
		visit.Age0To18, visit.Age19To59, visit.Age60Plus, visit.FirstVisitThisMonth, visit.Comments,
		visit.TenantID, visit.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *visitRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM visits WHERE tenant_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *visitRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Visit, error) {
	query := `SELECT ` + visitColumns + `
		FROM visits
		WHERE tenant_id = $1
		ORDER BY visit_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, tenantID, limit, offset)
}

func (r *visitRepo) ListBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*models.Visit, error) {
	query := `SELECT ` + visitColumns + `
		FROM visits
		WHERE tenant_id = $1 AND visit_date >= $2 AND visit_date <= $3
		ORDER BY visit_date`
	return r.list(ctx, query, tenantID, from, to)
}

func (r *visitRepo) ListByPatron(ctx context.Context, tenantID, patronID uuid.UUID) ([]*models.Visit, error) {
	query := `SELECT ` + visitColumns + `
		FROM visits
		WHERE tenant_id = $1 AND patron_id = $2
		ORDER BY visit_date DESC`
	return r.list(ctx, query, tenantID, patronID)
}

func (r *visitRepo) ListRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]*models.Visit, error) {
	query := `SELECT ` + visitColumns + `
		FROM visits
		WHERE tenant_id = $1
		ORDER BY visit_date DESC, created_at DESC
		LIMIT $2`
	return r.list(ctx, query, tenantID, limit)
}

func (r *visitRepo) CountOnDate(ctx context.Context, tenantID uuid.UUID, date time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM visits WHERE tenant_id = $1 AND visit_date = $2`
	err := r.db.QueryRow(ctx, query, tenantID, date).Scan(&count)
	return count, err
}

func (r *visitRepo) CountSince(ctx context.Context, tenantID uuid.UUID, from time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM visits WHERE tenant_id = $1 AND visit_date >= $2`
	err := r.db.QueryRow(ctx, query, tenantID, from).Scan(&count)
	return count, err
}

func (r *visitRepo) list(ctx context.Context, query string, args ...any) ([]*models.Visit, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []*models.Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
