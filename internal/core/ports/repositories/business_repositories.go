package repositories

import (
	"context"

	"github.com/apex-am/apexam_backend/internal/core/domain"
)

// BusinessReader defines read operations on business rows. All reads
// eager-load the owner, primary accountant (with user), the full
// assigned-accountants set (with users) and both metrics children in a
// constant number of queries per call.
type BusinessReader interface {
	// FindBusinessByID retrieves a business with all relations loaded.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// FindBusinesses retrieves a page of all businesses.
	FindBusinesses(ctx context.Context, limit, offset int) ([]domain.Business, error)

	// FindBusinessesByOwner retrieves a page of businesses owned by a user.
	FindBusinessesByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Business, error)

	// FindBusinessesByAccountant retrieves businesses where the accountant
	// is the primary accountant or a member of the assignment set. A single
	// store-level query with native offset/limit, so paging is stable under
	// concurrent writes.
	FindBusinessesByAccountant(ctx context.Context, accountantID string, limit, offset int) ([]domain.Business, error)

	// FindBusinessesBySupervision retrieves businesses reachable from a
	// super accountant: owned by superUserID, owned by a supervised
	// accountant's user, or whose primary accountant or assignment-set
	// member is the super themselves or supervised by them. One
	// store-level query with native offset/limit.
	FindBusinessesBySupervision(ctx context.Context, superAccountantID, superUserID string, limit, offset int) ([]domain.Business, error)
}

// BusinessWriter defines write operations on business rows.
type BusinessWriter interface {
	SaveBusiness(ctx context.Context, business domain.Business) error
	UpdateBusiness(ctx context.Context, business domain.Business) error

	// DeleteBusiness removes a business and, in the same transaction, both
	// metrics children and all assignment rows.
	DeleteBusiness(ctx context.Context, businessID string) error
}

// BusinessAssignments manages the many-to-many accountant assignment set.
type BusinessAssignments interface {
	// AddAccountantToBusiness inserts an assignment row. A no-op when the
	// pair is already present.
	AddAccountantToBusiness(ctx context.Context, businessID, accountantID string) error

	// RemoveAccountantFromBusiness deletes an assignment row. A no-op when
	// the pair is absent.
	RemoveAccountantFromBusiness(ctx context.Context, businessID, accountantID string) error

	// IsAccountantAssigned reports assignment-set membership.
	IsAccountantAssigned(ctx context.Context, businessID, accountantID string) (bool, error)
}

// BusinessMetricsStore manages the 1:1 metrics children of a business.
type BusinessMetricsStore interface {
	UpsertFinancialMetrics(ctx context.Context, m domain.BusinessFinancialMetrics) error
	FindFinancialMetrics(ctx context.Context, businessID string) (*domain.BusinessFinancialMetrics, error)
	DeleteFinancialMetrics(ctx context.Context, businessID string) error

	UpsertBusinessMetrics(ctx context.Context, m domain.BusinessMetrics) error
	FindBusinessMetrics(ctx context.Context, businessID string) (*domain.BusinessMetrics, error)
	DeleteBusinessMetrics(ctx context.Context, businessID string) error
}

// BusinessRepository combines all business persistence operations.
type BusinessRepository interface {
	BusinessReader
	BusinessWriter
	BusinessAssignments
	BusinessMetricsStore
}
