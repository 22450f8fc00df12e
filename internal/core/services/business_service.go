package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/core/domain"
	portsrepo "github.com/apex-am/apexam_backend/internal/core/ports/repositories"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/dto"
	"github.com/google/uuid"
)

type businessService struct {
	BaseService
	businessRepo   portsrepo.BusinessRepository
	accountantRepo portsrepo.AccountantReader
	permissionSvc  portssvc.PermissionSvc
}

// NewBusinessService creates the business service facade.
func NewBusinessService(businessRepo portsrepo.BusinessRepository, accountantRepo portsrepo.AccountantReader, permissionSvc portssvc.PermissionSvc) portssvc.BusinessSvcFacade {
	return &businessService{
		businessRepo:   businessRepo,
		accountantRepo: accountantRepo,
		permissionSvc:  permissionSvc,
	}
}

var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

func (s *businessService) CreateBusiness(ctx context.Context, caller domain.User, req dto.CreateBusinessRequest) (*domain.Business, error) {
	ownerID := caller.UserID
	if req.OwnerID != nil {
		if err := s.permissionSvc.CanAccessUser(caller, *req.OwnerID); err != nil {
			return nil, err
		}
		ownerID = *req.OwnerID
	}

	business := domain.Business{
		BusinessID:  uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now(),
		},
	}

	if req.AccountantID != nil {
		if _, err := s.accountantRepo.FindAccountantByID(ctx, *req.AccountantID); err != nil {
			return nil, err
		}
		business.AccountantID = req.AccountantID
	}

	if err := s.businessRepo.SaveBusiness(ctx, business); err != nil {
		return nil, err
	}

	// The primary accountant is also a member of the assignment set, so
	// membership queries never need to special-case the primary column.
	if business.AccountantID != nil {
		if err := s.businessRepo.AddAccountantToBusiness(ctx, business.BusinessID, *business.AccountantID); err != nil {
			return nil, err
		}
	}

	s.LogInfo(ctx, "Business created", slog.String("business_id", business.BusinessID), slog.String("owner_id", ownerID))
	return s.businessRepo.FindBusinessByID(ctx, business.BusinessID)
}

func (s *businessService) GetBusiness(ctx context.Context, caller domain.User, businessID string) (*domain.Business, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := s.permissionSvc.CanAccessBusiness(ctx, caller, business); err != nil {
		return nil, err
	}
	return business, nil
}

func (s *businessService) ListBusinesses(ctx context.Context, caller domain.User, limit, offset int) ([]domain.Business, error) {
	switch caller.Role {
	case domain.RoleRootAdmin:
		return s.businessRepo.FindBusinesses(ctx, limit, offset)
	case domain.RoleSuperAccountant:
		accountant, err := s.accountantRepo.FindAccountantByUserID(ctx, caller.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return s.businessRepo.FindBusinessesByOwner(ctx, caller.UserID, limit, offset)
			}
			return nil, err
		}
		return s.businessRepo.FindBusinessesBySupervision(ctx, accountant.AccountantID, caller.UserID, limit, offset)
	default:
		return s.businessRepo.FindBusinessesByOwner(ctx, caller.UserID, limit, offset)
	}
}

func (s *businessService) ListBusinessesForOwner(ctx context.Context, caller domain.User, ownerID string, limit, offset int) ([]domain.Business, error) {
	if err := s.permissionSvc.CanAccessUser(caller, ownerID); err != nil {
		return nil, err
	}
	return s.businessRepo.FindBusinessesByOwner(ctx, ownerID, limit, offset)
}

func (s *businessService) ListBusinessesForAccountant(ctx context.Context, accountantID string, limit, offset int) ([]domain.Business, error) {
	if _, err := s.accountantRepo.FindAccountantByID(ctx, accountantID); err != nil {
		return nil, err
	}
	return s.businessRepo.FindBusinessesByAccountant(ctx, accountantID, limit, offset)
}

func (s *businessService) UpdateBusiness(ctx context.Context, caller domain.User, businessID string, req dto.UpdateBusinessRequest) (*domain.Business, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := s.permissionSvc.CanAccessBusiness(ctx, caller, business); err != nil {
		return nil, err
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Description != nil {
		business.Description = req.Description
	}
	if req.IsActive != nil {
		business.IsActive = *req.IsActive
	}
	accountantChanged := false
	if req.AccountantID != nil {
		if _, err := s.accountantRepo.FindAccountantByID(ctx, *req.AccountantID); err != nil {
			return nil, err
		}
		business.AccountantID = req.AccountantID
		accountantChanged = true
	}

	if err := s.businessRepo.UpdateBusiness(ctx, *business); err != nil {
		return nil, err
	}
	if accountantChanged {
		if err := s.businessRepo.AddAccountantToBusiness(ctx, businessID, *business.AccountantID); err != nil {
			return nil, err
		}
	}

	return s.businessRepo.FindBusinessByID(ctx, businessID)
}

func (s *businessService) DeleteBusiness(ctx context.Context, caller domain.User, businessID string) error {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return err
	}
	if err := s.permissionSvc.CanAccessBusiness(ctx, caller, business); err != nil {
		return err
	}

	if err := s.businessRepo.DeleteBusiness(ctx, businessID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Business deleted", slog.String("business_id", businessID))
	return nil
}

func (s *businessService) AssignAccountant(ctx context.Context, businessID, accountantID string) (*domain.Business, error) {
	if _, err := s.businessRepo.FindBusinessByID(ctx, businessID); err != nil {
		return nil, err
	}
	if _, err := s.accountantRepo.FindAccountantByID(ctx, accountantID); err != nil {
		return nil, err
	}

	if err := s.businessRepo.AddAccountantToBusiness(ctx, businessID, accountantID); err != nil {
		return nil, err
	}
	return s.businessRepo.FindBusinessByID(ctx, businessID)
}

func (s *businessService) RemoveAccountant(ctx context.Context, businessID, accountantID string) (*domain.Business, error) {
	if _, err := s.businessRepo.FindBusinessByID(ctx, businessID); err != nil {
		return nil, err
	}

	if err := s.businessRepo.RemoveAccountantFromBusiness(ctx, businessID, accountantID); err != nil {
		return nil, err
	}
	return s.businessRepo.FindBusinessByID(ctx, businessID)
}

// gatedBusiness loads a business and applies the access gate, shared by
// the metrics operations.
func (s *businessService) gatedBusiness(ctx context.Context, caller domain.User, businessID string) (*domain.Business, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := s.permissionSvc.CanAccessBusiness(ctx, caller, business); err != nil {
		return nil, err
	}
	return business, nil
}

func (s *businessService) UpsertFinancialMetrics(ctx context.Context, caller domain.User, businessID string, req dto.UpsertFinancialMetricsRequest) (*domain.BusinessFinancialMetrics, error) {
	if _, err := s.gatedBusiness(ctx, caller, businessID); err != nil {
		return nil, err
	}

	metrics := domain.BusinessFinancialMetrics{
		MetricsID:                   uuid.NewString(),
		BusinessID:                  businessID,
		Revenue:                     req.Revenue,
		GrossProfit:                 req.GrossProfit,
		NetProfit:                   req.NetProfit,
		TotalCosts:                  req.TotalCosts,
		PercentageChangeRevenue:     req.PercentageChangeRevenue,
		PercentageChangeGrossProfit: req.PercentageChangeGrossProfit,
		PercentageChangeNetProfit:   req.PercentageChangeNetProfit,
		PercentageChangeTotalCosts:  req.PercentageChangeTotalCosts,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now(),
		},
	}

	if err := s.businessRepo.UpsertFinancialMetrics(ctx, metrics); err != nil {
		return nil, err
	}
	return s.businessRepo.FindFinancialMetrics(ctx, businessID)
}

func (s *businessService) GetFinancialMetrics(ctx context.Context, caller domain.User, businessID string) (*domain.BusinessFinancialMetrics, error) {
	if _, err := s.gatedBusiness(ctx, caller, businessID); err != nil {
		return nil, err
	}
	return s.businessRepo.FindFinancialMetrics(ctx, businessID)
}

func (s *businessService) DeleteFinancialMetrics(ctx context.Context, caller domain.User, businessID string) error {
	if _, err := s.gatedBusiness(ctx, caller, businessID); err != nil {
		return err
	}
	return s.businessRepo.DeleteFinancialMetrics(ctx, businessID)
}

func (s *businessService) UpsertBusinessMetrics(ctx context.Context, caller domain.User, businessID string, req dto.UpsertBusinessMetricsRequest) (*domain.BusinessMetrics, error) {
	if _, err := s.gatedBusiness(ctx, caller, businessID); err != nil {
		return nil, err
	}

	metrics := domain.BusinessMetrics{
		MetricsID:           uuid.NewString(),
		BusinessID:          businessID,
		DocumentsDue:        req.DocumentsDue,
		OutstandingInvoices: req.OutstandingInvoices,
		PendingApprovals:    req.PendingApprovals,
		AccountingYearEnd:   req.AccountingYearEnd,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now(),
		},
	}

	if err := s.businessRepo.UpsertBusinessMetrics(ctx, metrics); err != nil {
		return nil, err
	}
	return s.businessRepo.FindBusinessMetrics(ctx, businessID)
}

func (s *businessService) GetBusinessMetrics(ctx context.Context, caller domain.User, businessID string) (*domain.BusinessMetrics, error) {
	if _, err := s.gatedBusiness(ctx, caller, businessID); err != nil {
		return nil, err
	}
	return s.businessRepo.FindBusinessMetrics(ctx, businessID)
}

func (s *businessService) DeleteBusinessMetrics(ctx context.Context, caller domain.User, businessID string) error {
	if _, err := s.gatedBusiness(ctx, caller, businessID); err != nil {
		return err
	}
	return s.businessRepo.DeleteBusinessMetrics(ctx, businessID)
}
