package services

import (
	"context"

	"github.com/apex-am/apexam_backend/internal/core/domain"
)

// PermissionSvc is the single permission evaluator. Every gated operation
// consults it instead of branching on roles inline.
//
// Two kinds of checks exist: flat role gates over the three-tier ordering
// (root_admin > super_accountant > accountant), and ownership gates that
// additionally require an identity or relationship predicate for
// accountant-tier callers. root_admin bypasses all ownership gates.
// Failures return apperrors.ErrForbidden, never ErrNotFound, so a denied
// caller cannot probe for resource existence.
type PermissionSvc interface {
	// RequireRole allows callers whose role sits at or above min.
	RequireRole(caller domain.User, min domain.UserRole) error

	// RequireAnyRole allows callers whose role is a member of roles.
	RequireAnyRole(caller domain.User, roles ...domain.UserRole) error

	// CanAccessUser allows self access and super-tier callers.
	CanAccessUser(caller domain.User, targetUserID string) error

	// CanAccessBusiness allows root_admin unconditionally. A super
	// accountant must own the business, be assigned to it, or supervise
	// its owner, its primary accountant or a member of its assignment
	// set. An accountant-tier caller must be the owner, the primary
	// accountant or a member of the assignment set.
	CanAccessBusiness(ctx context.Context, caller domain.User, business *domain.Business) error

	// CanManageAccountant allows root_admin always, and a super
	// accountant only for accountants under their supervision; an
	// accountant may act only on their own profile.
	CanManageAccountant(ctx context.Context, caller domain.User, target *domain.Accountant) error
}
