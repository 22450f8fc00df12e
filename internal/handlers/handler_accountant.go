package handlers

import (
	"net/http"

	"github.com/apex-am/apexam_backend/internal/core/domain"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/dto"
	"github.com/apex-am/apexam_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountantHandler handles HTTP requests related to accountant profiles
// and the supervision hierarchy.
type accountantHandler struct {
	accountantService portssvc.AccountantSvcFacade
	businessService   portssvc.BusinessSvcFacade
}

func newAccountantHandler(as portssvc.AccountantSvcFacade, bs portssvc.BusinessSvcFacade) *accountantHandler {
	return &accountantHandler{accountantService: as, businessService: bs}
}

// registerAccountantRoutes registers all accountant-related routes.
// Reads are visible to any authenticated caller and scoped by the
// service; writes require the super tier.
func registerAccountantRoutes(rg *gin.RouterGroup, as portssvc.AccountantSvcFacade, bs portssvc.BusinessSvcFacade, ps portssvc.PermissionSvc) {
	h := newAccountantHandler(as, bs)
	superOnly := middleware.RequireMinRole(ps, domain.RoleSuperAccountant)

	accountants := rg.Group("/accountants")
	{
		accountants.GET("", h.listAccountants)
		accountants.GET("/:id", h.getAccountant)
		accountants.GET("/:id/businesses", h.listAccountantBusinesses)
		accountants.POST("", superOnly, h.createAccountant)
		accountants.PUT("/:id", superOnly, h.updateAccountant)
		accountants.DELETE("/:id", superOnly, h.deleteAccountant)
		accountants.POST("/:id/assign-super", superOnly, h.assignSupervisor)
		accountants.POST("/:id/remove-super", superOnly, h.removeSupervisor)
	}
}

// listAccountants godoc
// @Summary List accountants visible to the caller
// @Description Root admins see all; super accountants see supervised plus independent accountants; accountants see themselves
// @Tags accountants
// @Produce json
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} dto.ListAccountantsResponse
// @Security BearerAuth
// @Router /accountants [get]
func (h *accountantHandler) listAccountants(c *gin.Context) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	skip, limit, okParams := bindListParams(c)
	if !okParams {
		return
	}

	accountants, err := h.accountantService.ListAccountants(c.Request.Context(), *caller, limit, skip)
	if err != nil {
		respondServiceError(c, err, "Accountant")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountantsResponse(accountants))
}

// getAccountant godoc
// @Summary Get an accountant by ID
// @Description Retrieves an accountant profile, scoped to the caller's supervision subtree
// @Tags accountants
// @Produce json
// @Param id path string true "Accountant ID"
// @Success 200 {object} dto.AccountantResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Accountant not found"
// @Security BearerAuth
// @Router /accountants/{id} [get]
func (h *accountantHandler) getAccountant(c *gin.Context) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accountant, err := h.accountantService.GetAccountant(c.Request.Context(), *caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Accountant")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountantResponse(accountant))
}

// listAccountantBusinesses godoc
// @Summary List businesses handled by an accountant
// @Description Returns businesses where the accountant is the primary accountant or a member of the assignment set
// @Tags accountants
// @Produce json
// @Param id path string true "Accountant ID"
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} dto.ListBusinessesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Accountant not found"
// @Security BearerAuth
// @Router /accountants/{id}/businesses [get]
func (h *accountantHandler) listAccountantBusinesses(c *gin.Context) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	skip, limit, okParams := bindListParams(c)
	if !okParams {
		return
	}

	// Visibility follows the profile itself: whoever may view the
	// accountant may view their business workload.
	if _, err := h.accountantService.GetAccountant(c.Request.Context(), *caller, c.Param("id")); err != nil {
		respondServiceError(c, err, "Accountant")
		return
	}

	businesses, err := h.businessService.ListBusinessesForAccountant(c.Request.Context(), c.Param("id"), limit, skip)
	if err != nil {
		respondServiceError(c, err, "Business")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBusinessesResponse(businesses))
}

// createAccountant godoc
// @Summary Create an accountant profile
// @Description Creates a profile for an existing user (super accountant and above)
// @Tags accountants
// @Accept json
// @Produce json
// @Param accountant body dto.CreateAccountantRequest true "Accountant details"
// @Success 201 {object} dto.AccountantResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "User or supervisor not found"
// @Failure 409 {object} map[string]string "User already has a profile"
// @Security BearerAuth
// @Router /accountants [post]
func (h *accountantHandler) createAccountant(c *gin.Context) {
	var req dto.CreateAccountantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountant, err := h.accountantService.CreateAccountant(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Accountant")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountantResponse(accountant))
}

// updateAccountant godoc
// @Summary Update an accountant profile
// @Description Applies the provided fields, scoped to the caller's supervision subtree
// @Tags accountants
// @Accept json
// @Produce json
// @Param id path string true "Accountant ID"
// @Param accountant body dto.UpdateAccountantRequest true "Fields to update"
// @Success 200 {object} dto.AccountantResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Accountant not found"
// @Security BearerAuth
// @Router /accountants/{id} [put]
func (h *accountantHandler) updateAccountant(c *gin.Context) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateAccountantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountant, err := h.accountantService.UpdateAccountant(c.Request.Context(), *caller, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Accountant")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountantResponse(accountant))
}

// deleteAccountant godoc
// @Summary Delete an accountant profile
// @Description Removes a profile, releasing supervised accountants and business references
// @Tags accountants
// @Produce json
// @Param id path string true "Accountant ID"
// @Success 204 "No content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Accountant not found"
// @Security BearerAuth
// @Router /accountants/{id} [delete]
func (h *accountantHandler) deleteAccountant(c *gin.Context) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accountantService.DeleteAccountant(c.Request.Context(), *caller, c.Param("id")); err != nil {
		respondServiceError(c, err, "Accountant")
		return
	}

	c.Status(http.StatusNoContent)
}

// assignSupervisor godoc
// @Summary Assign a supervising super accountant
// @Description Links the accountant attached to the given user ID to a super accountant
// @Tags accountants
// @Accept json
// @Produce json
// @Param id path string true "Accountant's user ID"
// @Param supervisor body dto.AssignSupervisorRequest true "Supervisor's user ID"
// @Success 200 {object} dto.AccountantResponse
// @Failure 400 {object} map[string]string "Supervisor is not a super accountant"
// @Failure 404 {object} map[string]string "Accountant not found"
// @Security BearerAuth
// @Router /accountants/{id}/assign-super [post]
func (h *accountantHandler) assignSupervisor(c *gin.Context) {
	var req dto.AssignSupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountant, err := h.accountantService.AssignSupervisor(c.Request.Context(), c.Param("id"), req.SupervisorID)
	if err != nil {
		respondServiceError(c, err, "Accountant")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountantResponse(accountant))
}

// removeSupervisor godoc
// @Summary Remove the supervision link
// @Description Clears the supervising super accountant; a no-op when none is set
// @Tags accountants
// @Produce json
// @Param id path string true "Accountant's user ID"
// @Success 200 {object} dto.AccountantResponse
// @Failure 404 {object} map[string]string "Accountant not found"
// @Security BearerAuth
// @Router /accountants/{id}/remove-super [post]
func (h *accountantHandler) removeSupervisor(c *gin.Context) {
	accountant, err := h.accountantService.RemoveSupervisor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Accountant")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountantResponse(accountant))
}
