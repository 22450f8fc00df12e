package services

import (
	"context"
	"time"

	"github.com/apex-am/apexam_backend/internal/core/domain"
)

// TokenSvc issues and validates signed, time-limited access tokens. The
// token is a pure function of subject, current time and the configured
// secret; no state is kept.
type TokenSvc interface {
	// IssueToken produces a signed token for the subject expiring after
	// ttl. A non-positive ttl uses the configured default.
	IssueToken(subject string, ttl time.Duration) (string, error)

	// ValidateToken returns the subject claim of a valid token. Malformed,
	// tampered and expired tokens all yield apperrors.ErrUnauthorized;
	// callers cannot distinguish the failure mode.
	ValidateToken(token string) (string, error)
}

// AuthenticatorSvc verifies credentials against the stored users.
type AuthenticatorSvc interface {
	// AuthenticateByUsername checks username + password against an active
	// user. Returns apperrors.ErrUnauthorized on any mismatch.
	AuthenticateByUsername(ctx context.Context, username, password string) (*domain.User, error)

	// AuthenticateByEmail checks email + password against an active user.
	AuthenticateByEmail(ctx context.Context, email, password string) (*domain.User, error)
}

// AuthSvcFacade combines credential verification and token handling.
type AuthSvcFacade interface {
	TokenSvc
	AuthenticatorSvc
}
