package middleware

import (
	"net/http"

	"github.com/apex-am/apexam_backend/internal/core/domain"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RequireMinRole allows only callers whose role sits at or above min in
// the role ordering. Must run after AuthMiddleware.
func RequireMinRole(permissionSvc portssvc.PermissionSvc, min domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if err := permissionSvc.RequireRole(*user, min); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireAnyRole allows only callers whose role is one of roles. Must run
// after AuthMiddleware.
func RequireAnyRole(permissionSvc portssvc.PermissionSvc, roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if err := permissionSvc.RequireAnyRole(*user, roles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
