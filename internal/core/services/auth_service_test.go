package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/core/domain"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/core/services"
	"github.com/apex-am/apexam_backend/internal/platform/config"
	"github.com/apex-am/apexam_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: 30 * time.Minute,
		JWTIssuer:         "apexam-backend",
	}
	suite.service = services.NewAuthService(cfg, suite.mockUserRepo)
}

func (suite *AuthServiceTestSuite) activeUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       uuid.NewString(),
		Username:     "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: hash,
		Role:         domain.RoleAccountant,
		IsActive:     true,
	}
}

// --- Token Tests ---

func (suite *AuthServiceTestSuite) TestIssueAndValidateToken() {
	subject := uuid.NewString()

	token, err := suite.service.IssueToken(subject, time.Minute)
	suite.Require().NoError(err)
	suite.NotEmpty(token)

	got, err := suite.service.ValidateToken(token)
	suite.Require().NoError(err)
	suite.Equal(subject, got)
}

func (suite *AuthServiceTestSuite) TestIssueToken_DefaultTTL() {
	token, err := suite.service.IssueToken(uuid.NewString(), 0)
	suite.Require().NoError(err)

	_, err = suite.service.ValidateToken(token)
	suite.NoError(err)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Expired() {
	token, err := utils.GenerateJWT(uuid.NewString(), "test-secret", -time.Minute, "apexam-backend")
	suite.Require().NoError(err)

	_, err = suite.service.ValidateToken(token)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Garbage() {
	_, err := suite.service.ValidateToken("not-a-token")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestValidateToken_WrongSecret() {
	otherCfg := &config.Config{
		JWTSecret:         "other-secret",
		JWTExpiryDuration: 30 * time.Minute,
		JWTIssuer:         "apexam-backend",
	}
	other := services.NewAuthService(otherCfg, suite.mockUserRepo)

	token, err := other.IssueToken(uuid.NewString(), time.Minute)
	suite.Require().NoError(err)

	_, err = suite.service.ValidateToken(token)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Authentication Tests ---

func (suite *AuthServiceTestSuite) TestAuthenticateByUsername_Success() {
	ctx := context.Background()
	user := suite.activeUser("password123")

	suite.mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(user, nil).Once()

	got, err := suite.service.AuthenticateByUsername(ctx, user.Username, "password123")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *AuthServiceTestSuite) TestAuthenticateByUsername_WrongPassword() {
	ctx := context.Background()
	user := suite.activeUser("password123")

	suite.mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(user, nil).Once()

	got, err := suite.service.AuthenticateByUsername(ctx, user.Username, "wrong-password")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticateByUsername_UnknownUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateByUsername(ctx, "ghost", "password123")

	suite.Require().Error(err)
	suite.Nil(got)
	// Unknown user and wrong password are indistinguishable to the caller.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticateByUsername_InactiveUser() {
	ctx := context.Background()
	user := suite.activeUser("password123")
	user.IsActive = false

	suite.mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(user, nil).Once()

	got, err := suite.service.AuthenticateByUsername(ctx, user.Username, "password123")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticateByEmail_Success() {
	ctx := context.Background()
	user := suite.activeUser("password123")

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.AuthenticateByEmail(ctx, user.Email, "password123")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
