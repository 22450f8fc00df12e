package middleware

import (
	"context"
	"log/slog"

	"github.com/apex-am/apexam_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for request-context keys. Using a custom
// type prevents collisions with other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userKey      = contextKey("user")
)

// WithLogger returns a context carrying the given request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context, falling back to slog.Default when none was injected.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetUserIDFromContext retrieves the authenticated user ID set by the
// auth middleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
		return userID, true
	}
	return "", false
}

// GetUserFromContext retrieves the authenticated user loaded by the auth
// middleware.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	if user, ok := c.Request.Context().Value(userKey).(*domain.User); ok {
		return user, true
	}
	return nil, false
}
