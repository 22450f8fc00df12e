package services

import (
	"context"

	"github.com/apex-am/apexam_backend/internal/core/domain"
	"github.com/apex-am/apexam_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser creates a new user with a hashed password. A role in the
	// accountant tiers also creates the matching Accountant profile.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser applies the provided fields to an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// AssignRole changes a user's role, creating or updating the
	// Accountant profile for accountant-tier roles. A role change away
	// from the accountant tiers retains the profile; readers must treat
	// such profiles as historical.
	AssignRole(ctx context.Context, userID string, req dto.AssignRoleRequest) (*domain.User, error)

	// DeleteUser removes a user by ID.
	DeleteUser(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
