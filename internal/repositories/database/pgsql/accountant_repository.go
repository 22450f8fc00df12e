package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/core/domain"
	portsrepo "github.com/apex-am/apexam_backend/internal/core/ports/repositories"
	"github.com/apex-am/apexam_backend/internal/models"
	"github.com/apex-am/apexam_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountantRepository struct {
	BaseRepository
}

func newPgxAccountantRepository(db *pgxpool.Pool) portsrepo.AccountantRepository {
	return &PgxAccountantRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.AccountantRepository = (*PgxAccountantRepository)(nil)

// accountantWithUserQuery selects accountant rows together with the
// owning user so callers get the profile and identity in one round trip.
const accountantWithUserQuery = `
    SELECT a.accountant_id, a.user_id, a.super_accountant_id, a.is_super_accountant,
           a.first_name, a.last_name, a.created_at, a.updated_at,
           u.user_id, u.username, u.email, u.role, u.is_active, u.created_at, u.updated_at
    FROM accountants a
    JOIN users u ON u.user_id = a.user_id
`

func scanAccountantWithUser(row pgx.Row) (*domain.Accountant, error) {
	var m models.Accountant
	var user struct {
		userID    string
		username  string
		email     string
		role      string
		isActive  bool
		createdAt time.Time
		updatedAt *time.Time
	}
	err := row.Scan(
		&m.AccountantID,
		&m.UserID,
		&m.SuperAccountantID,
		&m.IsSuperAccountant,
		&m.FirstName,
		&m.LastName,
		&m.CreatedAt,
		&m.UpdatedAt,
		&user.userID,
		&user.username,
		&user.email,
		&user.role,
		&user.isActive,
		&user.createdAt,
		&user.updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainAccountant(m)
	d.User = &domain.User{
		UserID:   user.userID,
		Username: user.username,
		Email:    user.email,
		Role:     domain.UserRole(user.role),
		IsActive: user.isActive,
		AuditFields: domain.AuditFields{
			CreatedAt: user.createdAt,
			UpdatedAt: user.updatedAt,
		},
	}
	return &d, nil
}

func (r *PgxAccountantRepository) queryAccountants(ctx context.Context, where string, args ...any) ([]domain.Accountant, error) {
	rows, err := r.Pool.Query(ctx, accountantWithUserQuery+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accountants: %w", err)
	}
	defer rows.Close()

	accountants := []domain.Accountant{}
	for rows.Next() {
		a, err := scanAccountantWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan accountant row: %w", err)
		}
		accountants = append(accountants, *a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating accountant rows: %w", rows.Err())
	}
	return accountants, nil
}

func (r *PgxAccountantRepository) SaveAccountant(ctx context.Context, accountant domain.Accountant) error {
	m := mapping.ToModelAccountant(accountant)
	query := `
        INSERT INTO accountants (accountant_id, user_id, super_accountant_id, is_super_accountant, first_name, last_name, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.AccountantID,
		m.UserID,
		m.SuperAccountantID,
		m.IsSuperAccountant,
		m.FirstName,
		m.LastName,
		m.CreatedAt,
	)
	if err != nil {
		if err = translateError(err); errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to save accountant: %w", err)
	}
	return nil
}

func (r *PgxAccountantRepository) FindAccountantByID(ctx context.Context, accountantID string) (*domain.Accountant, error) {
	row := r.Pool.QueryRow(ctx, accountantWithUserQuery+` WHERE a.accountant_id = $1;`, accountantID)
	a, err := scanAccountantWithUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find accountant by ID %s: %w", accountantID, err)
	}
	return a, nil
}

func (r *PgxAccountantRepository) FindAccountantByUserID(ctx context.Context, userID string) (*domain.Accountant, error) {
	row := r.Pool.QueryRow(ctx, accountantWithUserQuery+` WHERE a.user_id = $1;`, userID)
	a, err := scanAccountantWithUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find accountant by user ID %s: %w", userID, err)
	}
	return a, nil
}

func (r *PgxAccountantRepository) FindAccountants(ctx context.Context, limit, offset int) ([]domain.Accountant, error) {
	return r.queryAccountants(ctx, ` ORDER BY a.created_at, a.accountant_id LIMIT $1 OFFSET $2;`, limit, offset)
}

func (r *PgxAccountantRepository) FindAccountantsBySuper(ctx context.Context, superAccountantID string, limit, offset int) ([]domain.Accountant, error) {
	return r.queryAccountants(ctx,
		` WHERE a.super_accountant_id = $1 ORDER BY a.created_at, a.accountant_id LIMIT $2 OFFSET $3;`,
		superAccountantID, limit, offset)
}

func (r *PgxAccountantRepository) FindIndependentAccountants(ctx context.Context, limit, offset int) ([]domain.Accountant, error) {
	return r.queryAccountants(ctx,
		` WHERE a.super_accountant_id IS NULL AND NOT a.is_super_accountant
		  ORDER BY a.created_at, a.accountant_id LIMIT $1 OFFSET $2;`,
		limit, offset)
}

func (r *PgxAccountantRepository) UpdateAccountant(ctx context.Context, accountant domain.Accountant) error {
	m := mapping.ToModelAccountant(accountant)
	query := `
        UPDATE accountants
        SET super_accountant_id = $1, is_super_accountant = $2, first_name = $3, last_name = $4, updated_at = now()
        WHERE accountant_id = $5;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.SuperAccountantID,
		m.IsSuperAccountant,
		m.FirstName,
		m.LastName,
		m.AccountantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update accountant: %w", translateError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountantRepository) DeleteAccountant(ctx context.Context, accountantID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin accountant delete: %w", err)
	}
	defer r.Rollback(ctx, tx)

	// Release supervised accountants and assignment rows before the
	// profile itself goes away.
	if _, err := tx.Exec(ctx, `UPDATE accountants SET super_accountant_id = NULL, updated_at = now() WHERE super_accountant_id = $1;`, accountantID); err != nil {
		return fmt.Errorf("failed to release supervised accountants: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM business_accountants WHERE accountant_id = $1;`, accountantID); err != nil {
		return fmt.Errorf("failed to clear accountant assignments: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE businesses SET accountant_id = NULL, updated_at = now() WHERE accountant_id = $1;`, accountantID); err != nil {
		return fmt.Errorf("failed to clear primary accountant references: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM accountants WHERE accountant_id = $1;`, accountantID)
	if err != nil {
		return fmt.Errorf("failed to delete accountant: %w", translateDeleteError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return tx.Commit(ctx)
}
