package services

import (
	"context"
	"errors"
	"time"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/core/domain"
	portsrepo "github.com/apex-am/apexam_backend/internal/core/ports/repositories"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/platform/config"
	"github.com/apex-am/apexam_backend/internal/utils"
)

type authService struct {
	BaseService
	userRepo portsrepo.UserReader
	cfg      *config.Config
}

// NewAuthService creates the authentication service facade.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserReader) portssvc.AuthSvcFacade {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) IssueToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.cfg.JWTExpiryDuration
	}
	return utils.GenerateJWT(subject, s.cfg.JWTSecret, ttl, s.cfg.JWTIssuer)
}

func (s *authService) ValidateToken(token string) (string, error) {
	subject, err := utils.ValidateJWT(token, s.cfg.JWTSecret)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}
	return subject, nil
}

// authenticate shares the credential check between the username and email
// paths. Unknown principal, wrong password and deactivated account all
// collapse into ErrUnauthorized.
func (s *authService) authenticate(ctx context.Context, user *domain.User, lookupErr error, password string) (*domain.User, error) {
	if lookupErr != nil {
		if errors.Is(lookupErr, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, lookupErr, "Failed to look up user during authentication")
		return nil, lookupErr
	}
	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *authService) AuthenticateByUsername(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	return s.authenticate(ctx, user, err, password)
}

func (s *authService) AuthenticateByEmail(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	return s.authenticate(ctx, user, err, password)
}
