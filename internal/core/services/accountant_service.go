package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/core/domain"
	portsrepo "github.com/apex-am/apexam_backend/internal/core/ports/repositories"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/dto"
	"github.com/google/uuid"
)

type accountantService struct {
	BaseService
	accountantRepo portsrepo.AccountantRepository
	permissionSvc  portssvc.PermissionSvc
}

// NewAccountantService creates the accountant service facade.
func NewAccountantService(accountantRepo portsrepo.AccountantRepository, permissionSvc portssvc.PermissionSvc) portssvc.AccountantSvcFacade {
	return &accountantService{
		accountantRepo: accountantRepo,
		permissionSvc:  permissionSvc,
	}
}

var _ portssvc.AccountantSvcFacade = (*accountantService)(nil)

func (s *accountantService) CreateAccountant(ctx context.Context, req dto.CreateAccountantRequest) (*domain.Accountant, error) {
	accountant := domain.Accountant{
		AccountantID:      uuid.NewString(),
		UserID:            req.UserID,
		IsSuperAccountant: req.IsSuperAccountant,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now(),
		},
	}

	if req.SupervisorID != nil {
		if req.IsSuperAccountant {
			return nil, fmt.Errorf("%w: a super accountant cannot have a supervisor", apperrors.ErrValidation)
		}
		supervisor, err := s.accountantRepo.FindAccountantByUserID(ctx, *req.SupervisorID)
		if err != nil {
			return nil, err
		}
		if !supervisor.IsSuperAccountant {
			return nil, fmt.Errorf("%w: supervisor %s is not a super accountant", apperrors.ErrValidation, *req.SupervisorID)
		}
		accountant.SuperAccountantID = &supervisor.AccountantID
	}

	if err := s.accountantRepo.SaveAccountant(ctx, accountant); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Accountant created", slog.String("accountant_id", accountant.AccountantID), slog.String("user_id", accountant.UserID))
	return s.accountantRepo.FindAccountantByID(ctx, accountant.AccountantID)
}

func (s *accountantService) GetAccountant(ctx context.Context, caller domain.User, accountantID string) (*domain.Accountant, error) {
	accountant, err := s.accountantRepo.FindAccountantByID(ctx, accountantID)
	if err != nil {
		return nil, err
	}
	if err := s.permissionSvc.CanManageAccountant(ctx, caller, accountant); err != nil {
		return nil, err
	}
	return accountant, nil
}

func (s *accountantService) GetAccountantByUserID(ctx context.Context, userID string) (*domain.Accountant, error) {
	return s.accountantRepo.FindAccountantByUserID(ctx, userID)
}

func (s *accountantService) ListAccountants(ctx context.Context, caller domain.User, limit, offset int) ([]domain.Accountant, error) {
	switch caller.Role {
	case domain.RoleRootAdmin:
		return s.accountantRepo.FindAccountants(ctx, limit, offset)
	case domain.RoleSuperAccountant:
		return s.ListManagedAccountants(ctx, caller.UserID, limit, offset)
	default:
		accountant, err := s.accountantRepo.FindAccountantByUserID(ctx, caller.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return []domain.Accountant{}, nil
			}
			return nil, err
		}
		if offset > 0 {
			return []domain.Accountant{}, nil
		}
		return []domain.Accountant{*accountant}, nil
	}
}

// ListManagedAccountants unions the supervised set with independent
// accountants. Both pages are fetched with the caller's window and the
// deduplicated union is truncated back to limit.
func (s *accountantService) ListManagedAccountants(ctx context.Context, superUserID string, limit, offset int) ([]domain.Accountant, error) {
	super, err := s.accountantRepo.FindAccountantByUserID(ctx, superUserID)
	if err != nil {
		return nil, err
	}
	if !super.IsSuperAccountant {
		return nil, fmt.Errorf("%w: user %s is not a super accountant", apperrors.ErrValidation, superUserID)
	}

	supervised, err := s.accountantRepo.FindAccountantsBySuper(ctx, super.AccountantID, limit, offset)
	if err != nil {
		return nil, err
	}
	independent, err := s.accountantRepo.FindIndependentAccountants(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(supervised)+len(independent))
	managed := make([]domain.Accountant, 0, len(supervised)+len(independent))
	for _, a := range append(supervised, independent...) {
		if _, ok := seen[a.AccountantID]; ok {
			continue
		}
		seen[a.AccountantID] = struct{}{}
		managed = append(managed, a)
	}

	if len(managed) > limit {
		managed = managed[:limit]
	}
	return managed, nil
}

func (s *accountantService) UpdateAccountant(ctx context.Context, caller domain.User, accountantID string, req dto.UpdateAccountantRequest) (*domain.Accountant, error) {
	accountant, err := s.accountantRepo.FindAccountantByID(ctx, accountantID)
	if err != nil {
		return nil, err
	}
	if err := s.permissionSvc.CanManageAccountant(ctx, caller, accountant); err != nil {
		return nil, err
	}

	if req.IsSuperAccountant != nil {
		accountant.IsSuperAccountant = *req.IsSuperAccountant
		if accountant.IsSuperAccountant {
			accountant.SuperAccountantID = nil
		}
	}
	if req.FirstName != nil {
		accountant.FirstName = req.FirstName
	}
	if req.LastName != nil {
		accountant.LastName = req.LastName
	}

	if err := s.accountantRepo.UpdateAccountant(ctx, *accountant); err != nil {
		return nil, err
	}
	return s.accountantRepo.FindAccountantByID(ctx, accountantID)
}

func (s *accountantService) DeleteAccountant(ctx context.Context, caller domain.User, accountantID string) error {
	accountant, err := s.accountantRepo.FindAccountantByID(ctx, accountantID)
	if err != nil {
		return err
	}
	if err := s.permissionSvc.CanManageAccountant(ctx, caller, accountant); err != nil {
		return err
	}
	return s.accountantRepo.DeleteAccountant(ctx, accountantID)
}

func (s *accountantService) AssignSupervisor(ctx context.Context, accountantUserID, supervisorUserID string) (*domain.Accountant, error) {
	accountant, err := s.accountantRepo.FindAccountantByUserID(ctx, accountantUserID)
	if err != nil {
		return nil, err
	}
	if accountant.IsSuperAccountant {
		return nil, fmt.Errorf("%w: a super accountant cannot have a supervisor", apperrors.ErrValidation)
	}

	supervisor, err := s.accountantRepo.FindAccountantByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, err
	}
	if !supervisor.IsSuperAccountant {
		return nil, fmt.Errorf("%w: supervisor %s is not a super accountant", apperrors.ErrValidation, supervisorUserID)
	}

	accountant.SuperAccountantID = &supervisor.AccountantID
	if err := s.accountantRepo.UpdateAccountant(ctx, *accountant); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Supervisor assigned",
		slog.String("accountant_id", accountant.AccountantID),
		slog.String("supervisor_id", supervisor.AccountantID))
	return s.accountantRepo.FindAccountantByID(ctx, accountant.AccountantID)
}

func (s *accountantService) RemoveSupervisor(ctx context.Context, accountantUserID string) (*domain.Accountant, error) {
	accountant, err := s.accountantRepo.FindAccountantByUserID(ctx, accountantUserID)
	if err != nil {
		return nil, err
	}
	if accountant.SuperAccountantID == nil {
		return accountant, nil
	}

	accountant.SuperAccountantID = nil
	if err := s.accountantRepo.UpdateAccountant(ctx, *accountant); err != nil {
		return nil, err
	}
	return s.accountantRepo.FindAccountantByID(ctx, accountant.AccountantID)
}
