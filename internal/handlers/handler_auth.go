package handlers

import (
	"log/slog"
	"net/http"

	"github.com/apex-am/apexam_backend/internal/core/domain"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/dto"
	"github.com/apex-am/apexam_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles login requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers the public authentication routes. The
// extra middleware (rate limiting) applies to this group only.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, extra ...gin.HandlerFunc) {
	h := newAuthHandler(authService)

	auth := r.Group("/api/v1/auth", extra...)
	{
		auth.POST("/login", h.login)
		auth.POST("/login-email", h.loginEmail)
	}
}

// login godoc
// @Summary Login with username and password
// @Description Authenticates a user and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.authService.AuthenticateByUsername(c.Request.Context(), req.Username, req.Password)
	h.issueToken(c, user, err)
}

// loginEmail godoc
// @Summary Login with email and password
// @Description Authenticates a user by email and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.EmailLoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /auth/login-email [post]
func (h *authHandler) loginEmail(c *gin.Context) {
	var req dto.EmailLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.authService.AuthenticateByEmail(c.Request.Context(), req.Email, req.Password)
	h.issueToken(c, user, err)
}

// issueToken finishes both login variants. Authentication failures all
// produce the same 401 body.
func (h *authHandler) issueToken(c *gin.Context, user *domain.User, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err != nil {
		logger.Warn("Authentication failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.authService.IssueToken(user.UserID, 0)
	if err != nil {
		logger.Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, TokenType: "bearer"})
}
