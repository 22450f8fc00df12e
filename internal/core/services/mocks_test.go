package services_test

import (
	"context"

	"github.com/apex-am/apexam_backend/internal/core/domain"
	portsrepo "github.com/apex-am/apexam_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- Mock AccountantRepository ---
type MockAccountantRepository struct {
	mock.Mock
}

func (m *MockAccountantRepository) FindAccountantByID(ctx context.Context, accountantID string) (*domain.Accountant, error) {
	args := m.Called(ctx, accountantID)
	var accountant *domain.Accountant
	if args.Get(0) != nil {
		accountant = args.Get(0).(*domain.Accountant)
	}
	return accountant, args.Error(1)
}

func (m *MockAccountantRepository) FindAccountantByUserID(ctx context.Context, userID string) (*domain.Accountant, error) {
	args := m.Called(ctx, userID)
	var accountant *domain.Accountant
	if args.Get(0) != nil {
		accountant = args.Get(0).(*domain.Accountant)
	}
	return accountant, args.Error(1)
}

func (m *MockAccountantRepository) FindAccountants(ctx context.Context, limit, offset int) ([]domain.Accountant, error) {
	args := m.Called(ctx, limit, offset)
	var accountants []domain.Accountant
	if args.Get(0) != nil {
		accountants = args.Get(0).([]domain.Accountant)
	}
	return accountants, args.Error(1)
}

func (m *MockAccountantRepository) FindAccountantsBySuper(ctx context.Context, superAccountantID string, limit, offset int) ([]domain.Accountant, error) {
	args := m.Called(ctx, superAccountantID, limit, offset)
	var accountants []domain.Accountant
	if args.Get(0) != nil {
		accountants = args.Get(0).([]domain.Accountant)
	}
	return accountants, args.Error(1)
}

func (m *MockAccountantRepository) FindIndependentAccountants(ctx context.Context, limit, offset int) ([]domain.Accountant, error) {
	args := m.Called(ctx, limit, offset)
	var accountants []domain.Accountant
	if args.Get(0) != nil {
		accountants = args.Get(0).([]domain.Accountant)
	}
	return accountants, args.Error(1)
}

func (m *MockAccountantRepository) SaveAccountant(ctx context.Context, accountant domain.Accountant) error {
	args := m.Called(ctx, accountant)
	return args.Error(0)
}

func (m *MockAccountantRepository) UpdateAccountant(ctx context.Context, accountant domain.Accountant) error {
	args := m.Called(ctx, accountant)
	return args.Error(0)
}

func (m *MockAccountantRepository) DeleteAccountant(ctx context.Context, accountantID string) error {
	args := m.Called(ctx, accountantID)
	return args.Error(0)
}

var _ portsrepo.AccountantRepository = (*MockAccountantRepository)(nil)

// --- Mock BusinessRepository ---
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	var business *domain.Business
	if args.Get(0) != nil {
		business = args.Get(0).(*domain.Business)
	}
	return business, args.Error(1)
}

func (m *MockBusinessRepository) FindBusinesses(ctx context.Context, limit, offset int) ([]domain.Business, error) {
	args := m.Called(ctx, limit, offset)
	var businesses []domain.Business
	if args.Get(0) != nil {
		businesses = args.Get(0).([]domain.Business)
	}
	return businesses, args.Error(1)
}

func (m *MockBusinessRepository) FindBusinessesByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Business, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	var businesses []domain.Business
	if args.Get(0) != nil {
		businesses = args.Get(0).([]domain.Business)
	}
	return businesses, args.Error(1)
}

func (m *MockBusinessRepository) FindBusinessesByAccountant(ctx context.Context, accountantID string, limit, offset int) ([]domain.Business, error) {
	args := m.Called(ctx, accountantID, limit, offset)
	var businesses []domain.Business
	if args.Get(0) != nil {
		businesses = args.Get(0).([]domain.Business)
	}
	return businesses, args.Error(1)
}

func (m *MockBusinessRepository) FindBusinessesBySupervision(ctx context.Context, superAccountantID, superUserID string, limit, offset int) ([]domain.Business, error) {
	args := m.Called(ctx, superAccountantID, superUserID, limit, offset)
	var businesses []domain.Business
	if args.Get(0) != nil {
		businesses = args.Get(0).([]domain.Business)
	}
	return businesses, args.Error(1)
}

func (m *MockBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) UpdateBusiness(ctx context.Context, business domain.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) DeleteBusiness(ctx context.Context, businessID string) error {
	args := m.Called(ctx, businessID)
	return args.Error(0)
}

func (m *MockBusinessRepository) AddAccountantToBusiness(ctx context.Context, businessID, accountantID string) error {
	args := m.Called(ctx, businessID, accountantID)
	return args.Error(0)
}

func (m *MockBusinessRepository) RemoveAccountantFromBusiness(ctx context.Context, businessID, accountantID string) error {
	args := m.Called(ctx, businessID, accountantID)
	return args.Error(0)
}

func (m *MockBusinessRepository) IsAccountantAssigned(ctx context.Context, businessID, accountantID string) (bool, error) {
	args := m.Called(ctx, businessID, accountantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBusinessRepository) UpsertFinancialMetrics(ctx context.Context, metrics domain.BusinessFinancialMetrics) error {
	args := m.Called(ctx, metrics)
	return args.Error(0)
}

func (m *MockBusinessRepository) FindFinancialMetrics(ctx context.Context, businessID string) (*domain.BusinessFinancialMetrics, error) {
	args := m.Called(ctx, businessID)
	var metrics *domain.BusinessFinancialMetrics
	if args.Get(0) != nil {
		metrics = args.Get(0).(*domain.BusinessFinancialMetrics)
	}
	return metrics, args.Error(1)
}

func (m *MockBusinessRepository) DeleteFinancialMetrics(ctx context.Context, businessID string) error {
	args := m.Called(ctx, businessID)
	return args.Error(0)
}

func (m *MockBusinessRepository) UpsertBusinessMetrics(ctx context.Context, metrics domain.BusinessMetrics) error {
	args := m.Called(ctx, metrics)
	return args.Error(0)
}

func (m *MockBusinessRepository) FindBusinessMetrics(ctx context.Context, businessID string) (*domain.BusinessMetrics, error) {
	args := m.Called(ctx, businessID)
	var metrics *domain.BusinessMetrics
	if args.Get(0) != nil {
		metrics = args.Get(0).(*domain.BusinessMetrics)
	}
	return metrics, args.Error(1)
}

func (m *MockBusinessRepository) DeleteBusinessMetrics(ctx context.Context, businessID string) error {
	args := m.Called(ctx, businessID)
	return args.Error(0)
}

var _ portsrepo.BusinessRepository = (*MockBusinessRepository)(nil)
