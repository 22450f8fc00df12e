package repositories

import (
	"context"

	"github.com/apex-am/apexam_backend/internal/core/domain"
)

// AccountantReader defines read operations on accountant rows. List reads
// eager-load the owning user.
type AccountantReader interface {
	// FindAccountantByID retrieves an accountant (with user) by ID.
	FindAccountantByID(ctx context.Context, accountantID string) (*domain.Accountant, error)

	// FindAccountantByUserID retrieves the accountant profile attached to
	// the given user, if any.
	FindAccountantByUserID(ctx context.Context, userID string) (*domain.Accountant, error)

	// FindAccountants retrieves a page of all accountants.
	FindAccountants(ctx context.Context, limit, offset int) ([]domain.Accountant, error)

	// FindAccountantsBySuper retrieves accountants supervised by the given
	// super accountant record.
	FindAccountantsBySuper(ctx context.Context, superAccountantID string, limit, offset int) ([]domain.Accountant, error)

	// FindIndependentAccountants retrieves accountants with no supervisor,
	// excluding super accountants themselves.
	FindIndependentAccountants(ctx context.Context, limit, offset int) ([]domain.Accountant, error)
}

// AccountantWriter defines write operations on accountant rows.
type AccountantWriter interface {
	// SaveAccountant inserts a new accountant profile. Returns
	// apperrors.ErrDuplicate when the user already has one.
	SaveAccountant(ctx context.Context, accountant domain.Accountant) error

	// UpdateAccountant overwrites the mutable columns of an existing profile.
	UpdateAccountant(ctx context.Context, accountant domain.Accountant) error

	// DeleteAccountant removes an accountant row by ID.
	DeleteAccountant(ctx context.Context, accountantID string) error
}

// AccountantRepository combines all accountant persistence operations.
type AccountantRepository interface {
	AccountantReader
	AccountantWriter
}
