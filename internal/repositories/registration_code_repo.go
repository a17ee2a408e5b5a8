package repositories

import (
	"context"
	"errors"

	"foodbanked/internal/common"
	"foodbanked/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RegistrationCodeRepository interface {
	GetByCode(ctx context.Context, code string) (*models.RegistrationCode, error)
	// MarkUsed claims an unused code for userID. Returns ErrNotFound when
	// the code does not exist or was already claimed.
	MarkUsed(ctx context.Context, code string, userID uuid.UUID) error
}

type registrationCodeRepo struct {
	db Database
}

func NewRegistrationCodeRepo(db Database) RegistrationCodeRepository {
	return &registrationCodeRepo{db: db}
}

func (r *registrationCodeRepo) GetByCode(ctx context.Context, code string) (*models.RegistrationCode, error) {
	rc := &models.RegistrationCode{}
	query := `
		SELECT id, code, is_used, used_by, used_date, notes, created_date
		FROM registration_codes
		WHERE code = $1
	`
	err := r.db.QueryRow(ctx, query, code).Scan(&rc.ID, &rc.Code, &rc.IsUsed, &rc.UsedBy, &rc.UsedDate, &rc.Notes, &rc.CreatedDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func (r *registrationCodeRepo) MarkUsed(ctx context.Context, code string, userID uuid.UUID) error {
	query := `
		UPDATE registration_codes
		SET is_used = TRUE, used_by = $1, used_date = NOW()
		WHERE code = $2 AND is_used = FALSE
	`
	tag, err := r.db.Exec(ctx, query, userID, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
