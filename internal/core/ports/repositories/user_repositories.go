package repositories

import (
	"context"

	"github.com/apex-am/apexam_backend/internal/core/domain"
)

// UserReader defines read operations on user rows.
type UserReader interface {
	// FindUserByID retrieves a user by ID. Returns apperrors.ErrNotFound if absent.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a page of users in store-defined order.
	FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriter defines write operations on user rows.
type UserWriter interface {
	// SaveUser inserts a new user. Returns apperrors.ErrDuplicate when the
	// username or email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser overwrites the mutable columns of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes a user row by ID.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepository combines all user persistence operations.
type UserRepository interface {
	UserReader
	UserWriter
}
