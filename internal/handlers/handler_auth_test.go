package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/core/domain"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

func (m *MockAuthService) IssueToken(subject string, ttl time.Duration) (string, error) {
	args := m.Called(subject, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) AuthenticateByUsername(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockAuthService) AuthenticateByEmail(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockAuthService *MockAuthService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockAuthService = new(MockAuthService)
	suite.router = gin.New()
	registerAuthRoutes(suite.router, suite.mockAuthService)
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: uuid.NewString(), Username: "alice", IsActive: true}

	suite.mockAuthService.On("AuthenticateByUsername", mock.Anything, "alice", "pass123").
		Return(user, nil).Once()
	suite.mockAuthService.On("IssueToken", user.UserID, time.Duration(0)).
		Return("signed-token", nil).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "pass123"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.Token)
	suite.Equal("bearer", resp.TokenType)
	suite.mockAuthService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_BadCredentials() {
	suite.mockAuthService.On("AuthenticateByUsername", mock.Anything, "alice", "wrong").
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Invalid credentials")
	suite.mockAuthService.AssertNotCalled(suite.T(), "IssueToken")
}

func (suite *AuthHandlerTestSuite) TestLogin_MissingFields() {
	w := suite.postJSON("/api/v1/auth/login", gin.H{"username": "alice"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuthService.AssertNotCalled(suite.T(), "AuthenticateByUsername")
}

func (suite *AuthHandlerTestSuite) TestLoginEmail_Success() {
	user := &domain.User{UserID: uuid.NewString(), Email: "alice@example.com", IsActive: true}

	suite.mockAuthService.On("AuthenticateByEmail", mock.Anything, "alice@example.com", "pass123").
		Return(user, nil).Once()
	suite.mockAuthService.On("IssueToken", user.UserID, time.Duration(0)).
		Return("signed-token", nil).Once()

	w := suite.postJSON("/api/v1/auth/login-email", dto.EmailLoginRequest{Email: "alice@example.com", Password: "pass123"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAuthService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLoginEmail_UnknownUser() {
	suite.mockAuthService.On("AuthenticateByEmail", mock.Anything, "ghost@example.com", "pass123").
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.postJSON("/api/v1/auth/login-email", dto.EmailLoginRequest{Email: "ghost@example.com", Password: "pass123"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Invalid credentials")
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
