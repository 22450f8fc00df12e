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
	"github.com/apex-am/apexam_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo       portsrepo.UserRepository
	accountantRepo portsrepo.AccountantRepository
	businessRepo   portsrepo.BusinessRepository
}

// NewUserService creates the user service facade.
func NewUserService(userRepo portsrepo.UserRepository, accountantRepo portsrepo.AccountantRepository, businessRepo portsrepo.BusinessRepository) portssvc.UserSvcFacade {
	return &userService{
		userRepo:       userRepo,
		accountantRepo: accountantRepo,
		businessRepo:   businessRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.userRepo.FindUsers(ctx, limit, offset)
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now(),
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.syncAccountantProfile(ctx, &user, nil); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	roleChanged := false
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
		}
		roleChanged = role != user.Role
		user.Role = role
	}

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}

	if roleChanged {
		if err := s.syncAccountantProfile(ctx, user, nil); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *userService) AssignRole(ctx context.Context, userID string, req dto.AssignRoleRequest) (*domain.User, error) {
	role := domain.UserRole(req.NewRole)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.NewRole)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}

	if err := s.syncAccountantProfile(ctx, user, req.SupervisorID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Role assigned", slog.String("user_id", userID), slog.String("role", string(role)))
	return user, nil
}

// syncAccountantProfile keeps the accountant profile consistent with the
// user's role. Accountant-tier roles get a profile created or updated; a
// promotion to super accountant clears any supervision link. Roles
// outside the accountant tiers leave an existing profile in place as a
// historical record.
func (s *userService) syncAccountantProfile(ctx context.Context, user *domain.User, supervisorUserID *string) error {
	if user.Role != domain.RoleAccountant && user.Role != domain.RoleSuperAccountant {
		return nil
	}

	var supervisorAccountantID *string
	if user.Role == domain.RoleAccountant && supervisorUserID != nil {
		supervisor, err := s.accountantRepo.FindAccountantByUserID(ctx, *supervisorUserID)
		if err != nil {
			return err
		}
		if !supervisor.IsSuperAccountant {
			return fmt.Errorf("%w: supervisor %s is not a super accountant", apperrors.ErrValidation, *supervisorUserID)
		}
		supervisorAccountantID = &supervisor.AccountantID
	}

	profile, err := s.accountantRepo.FindAccountantByUserID(ctx, user.UserID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		profile = &domain.Accountant{
			AccountantID: uuid.NewString(),
			UserID:       user.UserID,
			AuditFields: domain.AuditFields{
				CreatedAt: time.Now(),
			},
		}
		profile.IsSuperAccountant = user.Role == domain.RoleSuperAccountant
		if !profile.IsSuperAccountant {
			profile.SuperAccountantID = supervisorAccountantID
		}
		return s.accountantRepo.SaveAccountant(ctx, *profile)
	}

	profile.IsSuperAccountant = user.Role == domain.RoleSuperAccountant
	if profile.IsSuperAccountant {
		profile.SuperAccountantID = nil
	} else if supervisorAccountantID != nil {
		profile.SuperAccountantID = supervisorAccountantID
	}
	return s.accountantRepo.UpdateAccountant(ctx, *profile)
}

// deleteBatchSize pages ownership cleanup during a user delete.
const deleteBatchSize = 100

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	// Owned businesses go first so the user row can be removed without
	// dangling ownership references.
	for {
		owned, err := s.businessRepo.FindBusinessesByOwner(ctx, userID, deleteBatchSize, 0)
		if err != nil {
			return err
		}
		if len(owned) == 0 {
			break
		}
		for i := range owned {
			if err := s.businessRepo.DeleteBusiness(ctx, owned[i].BusinessID); err != nil {
				return err
			}
		}
	}

	profile, err := s.accountantRepo.FindAccountantByUserID(ctx, userID)
	if err == nil {
		if err := s.accountantRepo.DeleteAccountant(ctx, profile.AccountantID); err != nil {
			return err
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	return s.userRepo.DeleteUser(ctx, userID)
}
