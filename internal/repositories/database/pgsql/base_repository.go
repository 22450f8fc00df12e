package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.Pool.Begin(ctx)
}

// Rollback rolls back a transaction, ignoring the already-finished case.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		_ = err
	}
}

// translateError maps store-level constraint violations on the write
// path to the application error taxonomy so raw storage errors never
// surface: unique violations become ErrDuplicate, foreign-key
// violations become ErrNotFound (the referenced row does not resolve).
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.ErrDuplicate
		case pgForeignKeyViolation:
			return apperrors.ErrNotFound
		}
	}
	return err
}

// translateDeleteError is the delete-path counterpart: a foreign-key
// violation means other rows still reference the record, which is a
// conflict, not a missing referent.
func translateDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return apperrors.ErrConflict
	}
	return err
}
