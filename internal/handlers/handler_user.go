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

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService     portssvc.UserSvcFacade
	businessService portssvc.BusinessSvcFacade
	permissionSvc   portssvc.PermissionSvc
}

func newUserHandler(us portssvc.UserSvcFacade, bs portssvc.BusinessSvcFacade, ps portssvc.PermissionSvc) *userHandler {
	return &userHandler{
		userService:     us,
		businessService: bs,
		permissionSvc:   ps,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, bs portssvc.BusinessSvcFacade, ps portssvc.PermissionSvc) {
	h := newUserHandler(us, bs, ps)

	users := rg.Group("/users")
	{
		users.POST("", middleware.RequireMinRole(ps, domain.RoleRootAdmin), h.createUser)
		users.GET("", middleware.RequireMinRole(ps, domain.RoleSuperAccountant), h.listUsers)
		users.GET("/me", h.getCurrentUser)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", middleware.RequireMinRole(ps, domain.RoleRootAdmin), h.deleteUser)
		users.POST("/:id/assign-role", middleware.RequireMinRole(ps, domain.RoleRootAdmin), h.assignRole)
		users.GET("/:id/businesses", h.listUserBusinesses)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Creates a new user with the given role (root admin only)
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Username or email already taken"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "User")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Description Retrieves a paginated list of users (super accountant and above)
// @Tags users
// @Produce json
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	skip, limit, ok := bindListParams(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), limit, skip)
	if err != nil {
		respondServiceError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// getCurrentUser godoc
// @Summary Get the authenticated user
// @Description Returns the profile of the caller
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(caller))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves a user; callers may read themselves, super-tier roles may read anyone
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	targetID := c.Param("id")

	if err := h.permissionSvc.CanAccessUser(*caller, targetID); err != nil {
		respondServiceError(c, err, "User")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), targetID)
	if err != nil {
		respondServiceError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Applies the provided fields; callers may update themselves, super-tier roles anyone
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	targetID := c.Param("id")

	if err := h.permissionSvc.CanAccessUser(*caller, targetID); err != nil {
		respondServiceError(c, err, "User")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), targetID, req)
	if err != nil {
		respondServiceError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Removes a user and their accountant profile (root admin only)
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 204 "No content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetID := c.Param("id")

	if err := h.userService.DeleteUser(c.Request.Context(), targetID); err != nil {
		respondServiceError(c, err, "User")
		return
	}

	logger.Info("User deleted", slog.String("target_user_id", targetID))
	c.Status(http.StatusNoContent)
}

// assignRole godoc
// @Summary Assign a role to a user
// @Description Changes a user's role, keeping the accountant profile in sync (root admin only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param role body dto.AssignRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid role or supervisor"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id}/assign-role [post]
func (h *userHandler) assignRole(c *gin.Context) {
	targetID := c.Param("id")

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.AssignRole(c.Request.Context(), targetID, req)
	if err != nil {
		respondServiceError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUserBusinesses godoc
// @Summary List businesses owned by a user
// @Description Retrieves businesses owned by the given user; accountant-tier callers may only query themselves
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} dto.ListBusinessesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /users/{id}/businesses [get]
func (h *userHandler) listUserBusinesses(c *gin.Context) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	skip, limit, okParams := bindListParams(c)
	if !okParams {
		return
	}

	businesses, err := h.businessService.ListBusinessesForOwner(c.Request.Context(), *caller, c.Param("id"), limit, skip)
	if err != nil {
		respondServiceError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBusinessesResponse(businesses))
}
