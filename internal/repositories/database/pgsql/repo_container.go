package pgsql

import (
	portsrepo "github.com/apex-am/apexam_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories around a shared
// connection pool.
func NewRepositoryProvider(db *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(db),
		AccountantRepo: newPgxAccountantRepository(db),
		BusinessRepo:   newPgxBusinessRepository(db),
	}
}
