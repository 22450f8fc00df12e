package services

import (
	"context"

	"github.com/apex-am/apexam_backend/internal/core/domain"
	"github.com/apex-am/apexam_backend/internal/dto"
)

// BusinessSvcFacade manages businesses, their accountant assignments and
// their metrics children.
type BusinessSvcFacade interface {
	// CreateBusiness creates a business owned by req.OwnerID, defaulting
	// to the caller. A primary accountant given at creation is also added
	// to the assignment set.
	CreateBusiness(ctx context.Context, caller domain.User, req dto.CreateBusinessRequest) (*domain.Business, error)

	// GetBusiness retrieves a business with all relations, enforcing the
	// ownership gate for accountant-tier callers.
	GetBusiness(ctx context.Context, caller domain.User, businessID string) (*domain.Business, error)

	// ListBusinesses returns the businesses visible to the caller:
	// root_admin sees all, a super accountant sees businesses reachable
	// through their supervision subtree plus their own, an accountant
	// sees only businesses they own.
	ListBusinesses(ctx context.Context, caller domain.User, limit, offset int) ([]domain.Business, error)

	// ListBusinessesForOwner returns businesses owned by ownerID. An
	// accountant-tier caller may only query their own.
	ListBusinessesForOwner(ctx context.Context, caller domain.User, ownerID string, limit, offset int) ([]domain.Business, error)

	// ListBusinessesForAccountant returns businesses where the accountant
	// is primary or a member of the assignment set, deduplicated, with
	// store-level pagination.
	ListBusinessesForAccountant(ctx context.Context, accountantID string, limit, offset int) ([]domain.Business, error)

	// UpdateBusiness applies the provided fields, enforcing the ownership
	// gate. Setting a primary accountant also inserts the assignment row.
	UpdateBusiness(ctx context.Context, caller domain.User, businessID string, req dto.UpdateBusinessRequest) (*domain.Business, error)

	// DeleteBusiness removes a business, cascading both metrics children
	// and all assignment rows in one transaction.
	DeleteBusiness(ctx context.Context, caller domain.User, businessID string) error

	// AssignAccountant adds an accountant to the business's assignment
	// set. Idempotent. ErrNotFound if either id is unresolvable.
	AssignAccountant(ctx context.Context, businessID, accountantID string) (*domain.Business, error)

	// RemoveAccountant removes an accountant from the assignment set.
	// Idempotent no-op when absent.
	RemoveAccountant(ctx context.Context, businessID, accountantID string) (*domain.Business, error)

	// UpsertFinancialMetrics creates or replaces the financial metrics
	// child of a business.
	UpsertFinancialMetrics(ctx context.Context, caller domain.User, businessID string, req dto.UpsertFinancialMetricsRequest) (*domain.BusinessFinancialMetrics, error)

	// GetFinancialMetrics retrieves the financial metrics child.
	GetFinancialMetrics(ctx context.Context, caller domain.User, businessID string) (*domain.BusinessFinancialMetrics, error)

	// DeleteFinancialMetrics removes the financial metrics child.
	DeleteFinancialMetrics(ctx context.Context, caller domain.User, businessID string) error

	// UpsertBusinessMetrics creates or replaces the operational metrics
	// child of a business.
	UpsertBusinessMetrics(ctx context.Context, caller domain.User, businessID string, req dto.UpsertBusinessMetricsRequest) (*domain.BusinessMetrics, error)

	// GetBusinessMetrics retrieves the operational metrics child.
	GetBusinessMetrics(ctx context.Context, caller domain.User, businessID string) (*domain.BusinessMetrics, error)

	// DeleteBusinessMetrics removes the operational metrics child.
	DeleteBusinessMetrics(ctx context.Context, caller domain.User, businessID string) error
}
