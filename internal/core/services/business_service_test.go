package services_test

import (
	"context"
	"testing"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/core/domain"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/core/services"
	"github.com/apex-am/apexam_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BusinessServiceTestSuite struct {
	suite.Suite
	mockBusinessRepo   *MockBusinessRepository
	mockAccountantRepo *MockAccountantRepository
	service            portssvc.BusinessSvcFacade

	rootAdmin  domain.User
	accountant domain.User
}

func (suite *BusinessServiceTestSuite) SetupTest() {
	suite.mockBusinessRepo = new(MockBusinessRepository)
	suite.mockAccountantRepo = new(MockAccountantRepository)
	permissionSvc := services.NewPermissionService(suite.mockAccountantRepo)
	suite.service = services.NewBusinessService(suite.mockBusinessRepo, suite.mockAccountantRepo, permissionSvc)

	suite.rootAdmin = domain.User{UserID: uuid.NewString(), Role: domain.RoleRootAdmin}
	suite.accountant = domain.User{UserID: uuid.NewString(), Role: domain.RoleAccountant}
}

// --- CreateBusiness Tests ---

func (suite *BusinessServiceTestSuite) TestCreateBusiness_OwnerDefaultsToCaller() {
	ctx := context.Background()
	req := dto.CreateBusinessRequest{Name: "Acme Ltd"}

	suite.mockBusinessRepo.On("SaveBusiness", ctx, mock.MatchedBy(func(b domain.Business) bool {
		return b.OwnerID == suite.accountant.UserID && b.Name == "Acme Ltd" && b.IsActive
	})).Return(nil).Once()
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Business{Name: "Acme Ltd", OwnerID: suite.accountant.UserID}, nil).Once()

	business, err := suite.service.CreateBusiness(ctx, suite.accountant, req)

	suite.Require().NoError(err)
	suite.Equal(suite.accountant.UserID, business.OwnerID)
	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "AddAccountantToBusiness")
}

func (suite *BusinessServiceTestSuite) TestCreateBusiness_PrimaryAccountantJoinsAssignmentSet() {
	ctx := context.Background()
	accountantID := uuid.NewString()
	req := dto.CreateBusinessRequest{Name: "Acme Ltd", AccountantID: &accountantID}

	suite.mockAccountantRepo.On("FindAccountantByID", ctx, accountantID).
		Return(&domain.Accountant{AccountantID: accountantID}, nil).Once()
	suite.mockBusinessRepo.On("SaveBusiness", ctx, mock.MatchedBy(func(b domain.Business) bool {
		return b.AccountantID != nil && *b.AccountantID == accountantID
	})).Return(nil).Once()
	suite.mockBusinessRepo.On("AddAccountantToBusiness", ctx, mock.AnythingOfType("string"), accountantID).
		Return(nil).Once()
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Business{AccountantID: &accountantID}, nil).Once()

	_, err := suite.service.CreateBusiness(ctx, suite.rootAdmin, req)

	suite.Require().NoError(err)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func (suite *BusinessServiceTestSuite) TestCreateBusiness_UnknownAccountant() {
	ctx := context.Background()
	accountantID := uuid.NewString()
	req := dto.CreateBusinessRequest{Name: "Acme Ltd", AccountantID: &accountantID}

	suite.mockAccountantRepo.On("FindAccountantByID", ctx, accountantID).
		Return(nil, apperrors.ErrNotFound).Once()

	business, err := suite.service.CreateBusiness(ctx, suite.rootAdmin, req)

	suite.Require().Error(err)
	suite.Nil(business)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "SaveBusiness")
}

func (suite *BusinessServiceTestSuite) TestCreateBusiness_ExplicitOwnerForbiddenForAccountant() {
	ctx := context.Background()
	otherOwner := uuid.NewString()
	req := dto.CreateBusinessRequest{Name: "Acme Ltd", OwnerID: &otherOwner}

	business, err := suite.service.CreateBusiness(ctx, suite.accountant, req)

	suite.Require().Error(err)
	suite.Nil(business)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "SaveBusiness")
}

// --- GetBusiness Tests ---

func (suite *BusinessServiceTestSuite) TestGetBusiness_OwnerAllowed() {
	ctx := context.Background()
	business := &domain.Business{BusinessID: uuid.NewString(), OwnerID: suite.accountant.UserID}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, business.BusinessID).Return(business, nil).Once()

	got, err := suite.service.GetBusiness(ctx, suite.accountant, business.BusinessID)

	suite.Require().NoError(err)
	suite.Equal(business, got)
}

func (suite *BusinessServiceTestSuite) TestGetBusiness_UnrelatedAccountantForbidden() {
	ctx := context.Background()
	business := &domain.Business{BusinessID: uuid.NewString(), OwnerID: uuid.NewString()}
	profile := &domain.Accountant{AccountantID: uuid.NewString(), UserID: suite.accountant.UserID}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, business.BusinessID).Return(business, nil).Once()
	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.accountant.UserID).Return(profile, nil).Once()

	got, err := suite.service.GetBusiness(ctx, suite.accountant, business.BusinessID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- ListBusinesses Tests ---

func (suite *BusinessServiceTestSuite) TestListBusinesses_RootAdminSeesAll() {
	ctx := context.Background()
	all := []domain.Business{{BusinessID: uuid.NewString()}}

	suite.mockBusinessRepo.On("FindBusinesses", ctx, 100, 0).Return(all, nil).Once()

	businesses, err := suite.service.ListBusinesses(ctx, suite.rootAdmin, 100, 0)

	suite.Require().NoError(err)
	suite.Equal(all, businesses)
	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "FindBusinessesByOwner")
}

func (suite *BusinessServiceTestSuite) TestListBusinesses_SuperScopedToSupervision() {
	ctx := context.Background()
	super := domain.User{UserID: uuid.NewString(), Role: domain.RoleSuperAccountant}
	superProfile := &domain.Accountant{
		AccountantID:      uuid.NewString(),
		UserID:            super.UserID,
		IsSuperAccountant: true,
	}
	reachable := []domain.Business{{BusinessID: uuid.NewString()}}

	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, super.UserID).Return(superProfile, nil).Once()
	suite.mockBusinessRepo.On("FindBusinessesBySupervision", ctx, superProfile.AccountantID, super.UserID, 100, 0).
		Return(reachable, nil).Once()

	businesses, err := suite.service.ListBusinesses(ctx, super, 100, 0)

	suite.Require().NoError(err)
	suite.Equal(reachable, businesses)
	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "FindBusinesses")
}

func (suite *BusinessServiceTestSuite) TestListBusinesses_AccountantSeesOwned() {
	ctx := context.Background()
	owned := []domain.Business{{BusinessID: uuid.NewString(), OwnerID: suite.accountant.UserID}}

	suite.mockBusinessRepo.On("FindBusinessesByOwner", ctx, suite.accountant.UserID, 100, 0).
		Return(owned, nil).Once()

	businesses, err := suite.service.ListBusinesses(ctx, suite.accountant, 100, 0)

	suite.Require().NoError(err)
	suite.Equal(owned, businesses)
	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "FindBusinesses")
}

func (suite *BusinessServiceTestSuite) TestListBusinessesForAccountant_UnknownAccountant() {
	ctx := context.Background()
	accountantID := uuid.NewString()

	suite.mockAccountantRepo.On("FindAccountantByID", ctx, accountantID).
		Return(nil, apperrors.ErrNotFound).Once()

	businesses, err := suite.service.ListBusinessesForAccountant(ctx, accountantID, 100, 0)

	suite.Require().Error(err)
	suite.Nil(businesses)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "FindBusinessesByAccountant")
}

func (suite *BusinessServiceTestSuite) TestListBusinessesForAccountant_Success() {
	ctx := context.Background()
	accountantID := uuid.NewString()
	assigned := []domain.Business{{BusinessID: uuid.NewString()}, {BusinessID: uuid.NewString()}}

	suite.mockAccountantRepo.On("FindAccountantByID", ctx, accountantID).
		Return(&domain.Accountant{AccountantID: accountantID}, nil).Once()
	suite.mockBusinessRepo.On("FindBusinessesByAccountant", ctx, accountantID, 100, 0).
		Return(assigned, nil).Once()

	businesses, err := suite.service.ListBusinessesForAccountant(ctx, accountantID, 100, 0)

	suite.Require().NoError(err)
	suite.Equal(assigned, businesses)
}

// --- UpdateBusiness Tests ---

func (suite *BusinessServiceTestSuite) TestUpdateBusiness_ReassignsPrimaryAccountant() {
	ctx := context.Background()
	businessID := uuid.NewString()
	newAccountantID := uuid.NewString()
	business := &domain.Business{BusinessID: businessID, OwnerID: uuid.NewString(), Name: "Before"}
	req := dto.UpdateBusinessRequest{AccountantID: &newAccountantID}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).Return(business, nil).Twice()
	suite.mockAccountantRepo.On("FindAccountantByID", ctx, newAccountantID).
		Return(&domain.Accountant{AccountantID: newAccountantID}, nil).Once()
	suite.mockBusinessRepo.On("UpdateBusiness", ctx, mock.MatchedBy(func(b domain.Business) bool {
		return b.AccountantID != nil && *b.AccountantID == newAccountantID
	})).Return(nil).Once()
	suite.mockBusinessRepo.On("AddAccountantToBusiness", ctx, businessID, newAccountantID).Return(nil).Once()

	_, err := suite.service.UpdateBusiness(ctx, suite.rootAdmin, businessID, req)

	suite.Require().NoError(err)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

// --- Assign/Remove Accountant Tests ---

func (suite *BusinessServiceTestSuite) TestAssignAccountant_Success() {
	ctx := context.Background()
	businessID := uuid.NewString()
	accountantID := uuid.NewString()

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).
		Return(&domain.Business{BusinessID: businessID}, nil).Twice()
	suite.mockAccountantRepo.On("FindAccountantByID", ctx, accountantID).
		Return(&domain.Accountant{AccountantID: accountantID}, nil).Once()
	suite.mockBusinessRepo.On("AddAccountantToBusiness", ctx, businessID, accountantID).Return(nil).Once()

	business, err := suite.service.AssignAccountant(ctx, businessID, accountantID)

	suite.Require().NoError(err)
	suite.Equal(businessID, business.BusinessID)
}

func (suite *BusinessServiceTestSuite) TestRemoveAccountant_Idempotent() {
	ctx := context.Background()
	businessID := uuid.NewString()
	accountantID := uuid.NewString()

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).
		Return(&domain.Business{BusinessID: businessID}, nil).Twice()
	suite.mockBusinessRepo.On("RemoveAccountantFromBusiness", ctx, businessID, accountantID).Return(nil).Once()

	_, err := suite.service.RemoveAccountant(ctx, businessID, accountantID)

	suite.Require().NoError(err)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

// --- Metrics Tests ---

func (suite *BusinessServiceTestSuite) TestUpsertFinancialMetrics_Success() {
	ctx := context.Background()
	businessID := uuid.NewString()
	business := &domain.Business{BusinessID: businessID, OwnerID: suite.accountant.UserID}
	req := dto.UpsertFinancialMetricsRequest{
		Revenue:     decimal.NewFromInt(120000),
		GrossProfit: decimal.NewFromInt(45000),
		NetProfit:   decimal.NewFromInt(30000),
		TotalCosts:  decimal.NewFromInt(90000),
	}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).Return(business, nil).Once()
	suite.mockBusinessRepo.On("UpsertFinancialMetrics", ctx, mock.MatchedBy(func(m domain.BusinessFinancialMetrics) bool {
		return m.BusinessID == businessID && m.Revenue.Equal(req.Revenue) && m.MetricsID != ""
	})).Return(nil).Once()
	suite.mockBusinessRepo.On("FindFinancialMetrics", ctx, businessID).
		Return(&domain.BusinessFinancialMetrics{BusinessID: businessID, Revenue: req.Revenue}, nil).Once()

	metrics, err := suite.service.UpsertFinancialMetrics(ctx, suite.accountant, businessID, req)

	suite.Require().NoError(err)
	suite.True(metrics.Revenue.Equal(req.Revenue))
}

func (suite *BusinessServiceTestSuite) TestGetFinancialMetrics_ForbiddenBeforeLookup() {
	ctx := context.Background()
	businessID := uuid.NewString()
	business := &domain.Business{BusinessID: businessID, OwnerID: uuid.NewString()}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).Return(business, nil).Once()
	suite.mockAccountantRepo.On("FindAccountantByUserID", ctx, suite.accountant.UserID).
		Return(nil, apperrors.ErrNotFound).Once()

	metrics, err := suite.service.GetFinancialMetrics(ctx, suite.accountant, businessID)

	suite.Require().Error(err)
	suite.Nil(metrics)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "FindFinancialMetrics")
}

func (suite *BusinessServiceTestSuite) TestUpsertBusinessMetrics_Success() {
	ctx := context.Background()
	businessID := uuid.NewString()
	business := &domain.Business{BusinessID: businessID, OwnerID: suite.accountant.UserID}
	req := dto.UpsertBusinessMetricsRequest{DocumentsDue: 3, OutstandingInvoices: 7, PendingApprovals: 1}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).Return(business, nil).Once()
	suite.mockBusinessRepo.On("UpsertBusinessMetrics", ctx, mock.MatchedBy(func(m domain.BusinessMetrics) bool {
		return m.BusinessID == businessID && m.DocumentsDue == 3 && m.OutstandingInvoices == 7
	})).Return(nil).Once()
	suite.mockBusinessRepo.On("FindBusinessMetrics", ctx, businessID).
		Return(&domain.BusinessMetrics{BusinessID: businessID, DocumentsDue: 3}, nil).Once()

	metrics, err := suite.service.UpsertBusinessMetrics(ctx, suite.accountant, businessID, req)

	suite.Require().NoError(err)
	suite.Equal(3, metrics.DocumentsDue)
}

func (suite *BusinessServiceTestSuite) TestDeleteBusinessMetrics_NotFoundBubbles() {
	ctx := context.Background()
	businessID := uuid.NewString()
	business := &domain.Business{BusinessID: businessID, OwnerID: suite.accountant.UserID}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).Return(business, nil).Once()
	suite.mockBusinessRepo.On("DeleteBusinessMetrics", ctx, businessID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteBusinessMetrics(ctx, suite.accountant, businessID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeleteBusiness Tests ---

func (suite *BusinessServiceTestSuite) TestDeleteBusiness_Success() {
	ctx := context.Background()
	businessID := uuid.NewString()
	business := &domain.Business{BusinessID: businessID, OwnerID: uuid.NewString()}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).Return(business, nil).Once()
	suite.mockBusinessRepo.On("DeleteBusiness", ctx, businessID).Return(nil).Once()

	err := suite.service.DeleteBusiness(ctx, suite.rootAdmin, businessID)

	suite.Require().NoError(err)
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func TestBusinessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BusinessServiceTestSuite))
}
