package services

import (
	"context"
	"errors"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/core/domain"
	portsrepo "github.com/apex-am/apexam_backend/internal/core/ports/repositories"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
)

type permissionService struct {
	BaseService
	accountantRepo portsrepo.AccountantReader
}

// NewPermissionService creates the single permission evaluator consulted
// by every gated operation.
func NewPermissionService(accountantRepo portsrepo.AccountantReader) portssvc.PermissionSvc {
	return &permissionService{accountantRepo: accountantRepo}
}

var _ portssvc.PermissionSvc = (*permissionService)(nil)

func (s *permissionService) RequireRole(caller domain.User, min domain.UserRole) error {
	if !caller.Role.AtLeast(min) {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *permissionService) RequireAnyRole(caller domain.User, roles ...domain.UserRole) error {
	for _, role := range roles {
		if caller.Role == role {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

func (s *permissionService) CanAccessUser(caller domain.User, targetUserID string) error {
	if caller.UserID == targetUserID {
		return nil
	}
	if caller.Role.AtLeast(domain.RoleSuperAccountant) {
		return nil
	}
	return apperrors.ErrForbidden
}

// callerAccountant resolves the caller's accountant profile. A missing
// profile is reported as ErrForbidden so a denied caller learns nothing
// about stored records.
func (s *permissionService) callerAccountant(ctx context.Context, caller domain.User) (*domain.Accountant, error) {
	accountant, err := s.accountantRepo.FindAccountantByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	return accountant, nil
}

func (s *permissionService) CanAccessBusiness(ctx context.Context, caller domain.User, business *domain.Business) error {
	if caller.Role == domain.RoleRootAdmin {
		return nil
	}
	if business.OwnerID == caller.UserID {
		return nil
	}

	accountant, err := s.callerAccountant(ctx, caller)
	if err != nil {
		return err
	}

	// A super accountant reaches a business through their supervision
	// subtree: the owner's profile, the primary accountant or any member
	// of the assignment set must be supervised by them.
	if caller.Role == domain.RoleSuperAccountant {
		if supervises(accountant, business.Accountant) {
			return nil
		}
		for i := range business.Accountants {
			if supervises(accountant, &business.Accountants[i]) {
				return nil
			}
		}
		owner, err := s.accountantRepo.FindAccountantByUserID(ctx, business.OwnerID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if err == nil && supervises(accountant, owner) {
			return nil
		}
	}

	if business.AccountantID != nil && *business.AccountantID == accountant.AccountantID {
		return nil
	}
	for i := range business.Accountants {
		if business.Accountants[i].AccountantID == accountant.AccountantID {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

func supervises(super, target *domain.Accountant) bool {
	return target != nil && target.SuperAccountantID != nil && *target.SuperAccountantID == super.AccountantID
}

func (s *permissionService) CanManageAccountant(ctx context.Context, caller domain.User, target *domain.Accountant) error {
	if caller.Role == domain.RoleRootAdmin {
		return nil
	}
	if target.UserID == caller.UserID {
		return nil
	}
	if caller.Role == domain.RoleSuperAccountant {
		accountant, err := s.callerAccountant(ctx, caller)
		if err != nil {
			return err
		}
		if target.SuperAccountantID != nil && *target.SuperAccountantID == accountant.AccountantID {
			return nil
		}
	}
	return apperrors.ErrForbidden
}
