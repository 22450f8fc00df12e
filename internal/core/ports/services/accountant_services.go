package services

import (
	"context"

	"github.com/apex-am/apexam_backend/internal/core/domain"
	"github.com/apex-am/apexam_backend/internal/dto"
)

// AccountantSvcFacade manages accountant profiles and the supervision
// hierarchy.
type AccountantSvcFacade interface {
	// CreateAccountant creates a profile for a user. ErrDuplicate if the
	// user already has one.
	CreateAccountant(ctx context.Context, req dto.CreateAccountantRequest) (*domain.Accountant, error)

	// GetAccountant retrieves an accountant by ID, enforcing the caller's
	// visibility (accountants see only themselves, supers their subtree).
	GetAccountant(ctx context.Context, caller domain.User, accountantID string) (*domain.Accountant, error)

	// GetAccountantByUserID retrieves the profile attached to a user.
	GetAccountantByUserID(ctx context.Context, userID string) (*domain.Accountant, error)

	// ListAccountants returns the accountants visible to the caller:
	// root_admin sees all, a super accountant sees supervised plus
	// independent accountants (deduplicated), an accountant sees only
	// their own profile.
	ListAccountants(ctx context.Context, caller domain.User, limit, offset int) ([]domain.Accountant, error)

	// ListManagedAccountants returns accountants supervised by the super
	// accountant identified by user ID, unioned with independent
	// accountants, deduplicated by identity.
	ListManagedAccountants(ctx context.Context, superUserID string, limit, offset int) ([]domain.Accountant, error)

	// UpdateAccountant applies the provided fields, enforcing
	// supervision scoping for super-accountant callers.
	UpdateAccountant(ctx context.Context, caller domain.User, accountantID string, req dto.UpdateAccountantRequest) (*domain.Accountant, error)

	// DeleteAccountant removes a profile, with the same scoping as update.
	DeleteAccountant(ctx context.Context, caller domain.User, accountantID string) error

	// AssignSupervisor sets the supervising super accountant of the
	// accountant attached to accountantUserID. Both parties are addressed
	// by user ID. ErrNotFound if either lacks an accountant record;
	// ErrValidation if the supervisor is not a super accountant.
	AssignSupervisor(ctx context.Context, accountantUserID, supervisorUserID string) (*domain.Accountant, error)

	// RemoveSupervisor clears the supervision link. Idempotent: a no-op
	// when no supervisor is set.
	RemoveSupervisor(ctx context.Context, accountantUserID string) (*domain.Accountant, error)
}
