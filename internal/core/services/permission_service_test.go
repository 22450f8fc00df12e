package services_test

import (
	"context"
	"testing"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/core/domain"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PermissionServiceTestSuite struct {
	suite.Suite
	mockAccountantRepo *MockAccountantRepository
	service            portssvc.PermissionSvc

	rootAdmin  domain.User
	super      domain.User
	accountant domain.User
}

func (suite *PermissionServiceTestSuite) SetupTest() {
	suite.mockAccountantRepo = new(MockAccountantRepository)
	suite.service = services.NewPermissionService(suite.mockAccountantRepo)

	suite.rootAdmin = domain.User{UserID: uuid.NewString(), Role: domain.RoleRootAdmin}
	suite.super = domain.User{UserID: uuid.NewString(), Role: domain.RoleSuperAccountant}
	suite.accountant = domain.User{UserID: uuid.NewString(), Role: domain.RoleAccountant}
}

// --- RequireRole Tests ---

func (suite *PermissionServiceTestSuite) TestRequireRole_Ordering() {
	suite.NoError(suite.service.RequireRole(suite.rootAdmin, domain.RoleAccountant))
	suite.NoError(suite.service.RequireRole(suite.rootAdmin, domain.RoleRootAdmin))
	suite.NoError(suite.service.RequireRole(suite.super, domain.RoleSuperAccountant))
	suite.NoError(suite.service.RequireRole(suite.accountant, domain.RoleAccountant))

	suite.ErrorIs(suite.service.RequireRole(suite.accountant, domain.RoleSuperAccountant), apperrors.ErrForbidden)
	suite.ErrorIs(suite.service.RequireRole(suite.super, domain.RoleRootAdmin), apperrors.ErrForbidden)
}

func (suite *PermissionServiceTestSuite) TestRequireRole_UnknownRole() {
	unknown := domain.User{UserID: uuid.NewString(), Role: domain.UserRole("manager")}
	suite.ErrorIs(suite.service.RequireRole(unknown, domain.RoleAccountant), apperrors.ErrForbidden)
}

func (suite *PermissionServiceTestSuite) TestRequireAnyRole() {
	suite.NoError(suite.service.RequireAnyRole(suite.super, domain.RoleRootAdmin, domain.RoleSuperAccountant))
	suite.ErrorIs(suite.service.RequireAnyRole(suite.accountant, domain.RoleRootAdmin, domain.RoleSuperAccountant), apperrors.ErrForbidden)
}

// --- CanAccessUser Tests ---

func (suite *PermissionServiceTestSuite) TestCanAccessUser() {
	suite.NoError(suite.service.CanAccessUser(suite.accountant, suite.accountant.UserID))
	suite.NoError(suite.service.CanAccessUser(suite.super, suite.accountant.UserID))
	suite.NoError(suite.service.CanAccessUser(suite.rootAdmin, suite.accountant.UserID))
	suite.ErrorIs(suite.service.CanAccessUser(suite.accountant, suite.super.UserID), apperrors.ErrForbidden)
}

// --- CanAccessBusiness Tests ---

func (suite *PermissionServiceTestSuite) TestCanAccessBusiness_RootAdminBypass() {
	ctx := context.Background()
	business := &domain.Business{BusinessID: uuid.NewString(), OwnerID: uuid.NewString()}

	suite.NoError(suite.service.CanAccessBusiness(ctx, suite.rootAdmin, business))
	suite.mockAccountantRepo.AssertNotCalled(suite.T(), "FindAccountantByUserID")
}

func (suite *PermissionServiceTestSuite) superProfile() *domain.Accountant {
	return &domain.Accountant{
		AccountantID:      uuid.NewString(),
		UserID:            suite.super.UserID,
		IsSuperAccountant: true,
	}
}

func (suite *PermissionServiceTestSuite) TestCanAccessBusiness_SuperSupervisedPrimary() {
	ctx := context.Background()
	superProfile := suite.superProfile()
	supervised := domain.Accountant{
		AccountantID:      uuid.NewString(),
		SuperAccountantID: &superProfile.AccountantID,
	}
	business := &domain.Business{
		BusinessID:   uuid.NewString(),
		OwnerID:      uuid.NewString(),
		AccountantID: &supervised.AccountantID,
		Accountant:   &supervised,
	}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.super.UserID).Return(superProfile, nil).Once()

	suite.NoError(suite.service.CanAccessBusiness(ctx, suite.super, business))
}

func (suite *PermissionServiceTestSuite) TestCanAccessBusiness_SuperSupervisedAssignee() {
	ctx := context.Background()
	superProfile := suite.superProfile()
	business := &domain.Business{
		BusinessID: uuid.NewString(),
		OwnerID:    uuid.NewString(),
		Accountants: []domain.Accountant{
			{AccountantID: uuid.NewString()},
			{AccountantID: uuid.NewString(), SuperAccountantID: &superProfile.AccountantID},
		},
	}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.super.UserID).Return(superProfile, nil).Once()

	suite.NoError(suite.service.CanAccessBusiness(ctx, suite.super, business))
}

func (suite *PermissionServiceTestSuite) TestCanAccessBusiness_SuperSupervisedOwner() {
	ctx := context.Background()
	superProfile := suite.superProfile()
	ownerUserID := uuid.NewString()
	ownerProfile := &domain.Accountant{
		AccountantID:      uuid.NewString(),
		UserID:            ownerUserID,
		SuperAccountantID: &superProfile.AccountantID,
	}
	business := &domain.Business{BusinessID: uuid.NewString(), OwnerID: ownerUserID}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.super.UserID).Return(superProfile, nil).Once()
	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, ownerUserID).Return(ownerProfile, nil).Once()

	suite.NoError(suite.service.CanAccessBusiness(ctx, suite.super, business))
}

func (suite *PermissionServiceTestSuite) TestCanAccessBusiness_SuperOutsideSubtreeForbidden() {
	ctx := context.Background()
	superProfile := suite.superProfile()
	otherSuperID := uuid.NewString()
	ownerUserID := uuid.NewString()
	ownerProfile := &domain.Accountant{
		AccountantID:      uuid.NewString(),
		UserID:            ownerUserID,
		SuperAccountantID: &otherSuperID,
	}
	business := &domain.Business{
		BusinessID:  uuid.NewString(),
		OwnerID:     ownerUserID,
		Accountants: []domain.Accountant{{AccountantID: uuid.NewString(), SuperAccountantID: &otherSuperID}},
	}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.super.UserID).Return(superProfile, nil).Once()
	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, ownerUserID).Return(ownerProfile, nil).Once()

	// A super accountant supervising none of the involved accountants
	// cannot reach the business.
	suite.ErrorIs(suite.service.CanAccessBusiness(ctx, suite.super, business), apperrors.ErrForbidden)
}

func (suite *PermissionServiceTestSuite) TestCanAccessBusiness_Owner() {
	ctx := context.Background()
	business := &domain.Business{BusinessID: uuid.NewString(), OwnerID: suite.accountant.UserID}

	suite.NoError(suite.service.CanAccessBusiness(ctx, suite.accountant, business))
}

func (suite *PermissionServiceTestSuite) TestCanAccessBusiness_PrimaryAccountant() {
	ctx := context.Background()
	profile := &domain.Accountant{AccountantID: uuid.NewString(), UserID: suite.accountant.UserID}
	business := &domain.Business{
		BusinessID:   uuid.NewString(),
		OwnerID:      uuid.NewString(),
		AccountantID: &profile.AccountantID,
	}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.accountant.UserID).Return(profile, nil).Once()

	suite.NoError(suite.service.CanAccessBusiness(ctx, suite.accountant, business))
}

func (suite *PermissionServiceTestSuite) TestCanAccessBusiness_AssignedAccountant() {
	ctx := context.Background()
	profile := &domain.Accountant{AccountantID: uuid.NewString(), UserID: suite.accountant.UserID}
	business := &domain.Business{
		BusinessID:  uuid.NewString(),
		OwnerID:     uuid.NewString(),
		Accountants: []domain.Accountant{{AccountantID: profile.AccountantID}},
	}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.accountant.UserID).Return(profile, nil).Once()

	suite.NoError(suite.service.CanAccessBusiness(ctx, suite.accountant, business))
}

func (suite *PermissionServiceTestSuite) TestCanAccessBusiness_Unrelated() {
	ctx := context.Background()
	profile := &domain.Accountant{AccountantID: uuid.NewString(), UserID: suite.accountant.UserID}
	business := &domain.Business{BusinessID: uuid.NewString(), OwnerID: uuid.NewString()}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.accountant.UserID).Return(profile, nil).Once()

	suite.ErrorIs(suite.service.CanAccessBusiness(ctx, suite.accountant, business), apperrors.ErrForbidden)
}

func (suite *PermissionServiceTestSuite) TestCanAccessBusiness_NoProfileIsForbidden() {
	ctx := context.Background()
	business := &domain.Business{BusinessID: uuid.NewString(), OwnerID: uuid.NewString()}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.accountant.UserID).Return(nil, apperrors.ErrNotFound).Once()

	// Missing profile must surface as Forbidden, never NotFound.
	err := suite.service.CanAccessBusiness(ctx, suite.accountant, business)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

// --- CanManageAccountant Tests ---

func (suite *PermissionServiceTestSuite) TestCanManageAccountant_RootAdmin() {
	ctx := context.Background()
	target := &domain.Accountant{AccountantID: uuid.NewString(), UserID: uuid.NewString()}

	suite.NoError(suite.service.CanManageAccountant(ctx, suite.rootAdmin, target))
}

func (suite *PermissionServiceTestSuite) TestCanManageAccountant_OwnProfile() {
	ctx := context.Background()
	target := &domain.Accountant{AccountantID: uuid.NewString(), UserID: suite.accountant.UserID}

	suite.NoError(suite.service.CanManageAccountant(ctx, suite.accountant, target))
}

func (suite *PermissionServiceTestSuite) TestCanManageAccountant_SupervisedBySuper() {
	ctx := context.Background()
	superProfile := &domain.Accountant{
		AccountantID:      uuid.NewString(),
		UserID:            suite.super.UserID,
		IsSuperAccountant: true,
	}
	target := &domain.Accountant{
		AccountantID:      uuid.NewString(),
		UserID:            uuid.NewString(),
		SuperAccountantID: &superProfile.AccountantID,
	}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.super.UserID).Return(superProfile, nil).Once()

	suite.NoError(suite.service.CanManageAccountant(ctx, suite.super, target))
}

func (suite *PermissionServiceTestSuite) TestCanManageAccountant_NotSupervised() {
	ctx := context.Background()
	superProfile := &domain.Accountant{
		AccountantID:      uuid.NewString(),
		UserID:            suite.super.UserID,
		IsSuperAccountant: true,
	}
	otherSuperID := uuid.NewString()
	target := &domain.Accountant{
		AccountantID:      uuid.NewString(),
		UserID:            uuid.NewString(),
		SuperAccountantID: &otherSuperID,
	}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.super.UserID).Return(superProfile, nil).Once()

	suite.ErrorIs(suite.service.CanManageAccountant(ctx, suite.super, target), apperrors.ErrForbidden)
}

func (suite *PermissionServiceTestSuite) TestCanManageAccountant_AccountantOtherProfile() {
	ctx := context.Background()
	target := &domain.Accountant{AccountantID: uuid.NewString(), UserID: uuid.NewString()}

	suite.ErrorIs(suite.service.CanManageAccountant(ctx, suite.accountant, target), apperrors.ErrForbidden)
}

func TestPermissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PermissionServiceTestSuite))
}
