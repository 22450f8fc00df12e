package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/dto"
	"github.com/apex-am/apexam_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps service error sentinels to HTTP responses.
// The resource name only appears in the 404 body; permission failures
// stay generic so a denied caller cannot probe for existence.
func respondServiceError(c *gin.Context, err error, resource string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": resource + " already exists"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": resource + " is still referenced"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindListParams binds skip/limit query parameters, rejecting
// out-of-range values with a 400 instead of clamping.
func bindListParams(c *gin.Context) (skip, limit int, ok bool) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return 0, 0, false
	}
	return params.Skip, params.Limit, true
}
