package handlers

import (
	"net/http"

	"github.com/apex-am/apexam_backend/internal/core/domain"
	portssvc "github.com/apex-am/apexam_backend/internal/core/ports/services"
	"github.com/apex-am/apexam_backend/internal/dto"
	"github.com/apex-am/apexam_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// businessHandler handles HTTP requests related to businesses, their
// accountant assignments and their metrics.
type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
}

func newBusinessHandler(bs portssvc.BusinessSvcFacade) *businessHandler {
	return &businessHandler{businessService: bs}
}

// registerBusinessRoutes registers all business-related routes.
func registerBusinessRoutes(rg *gin.RouterGroup, bs portssvc.BusinessSvcFacade, ps portssvc.PermissionSvc) {
	h := newBusinessHandler(bs)
	superOnly := middleware.RequireMinRole(ps, domain.RoleSuperAccountant)

	businesses := rg.Group("/businesses")
	{
		businesses.GET("", h.listBusinesses)
		businesses.GET("/:id", h.getBusiness)
		businesses.POST("", superOnly, h.createBusiness)
		businesses.PUT("/:id", h.updateBusiness)
		businesses.DELETE("/:id", superOnly, h.deleteBusiness)
		businesses.POST("/:id/assign-accountant", superOnly, h.assignAccountant)
		businesses.POST("/:id/remove-accountant", superOnly, h.removeAccountant)

		businesses.PUT("/:id/financial-metrics", h.upsertFinancialMetrics)
		businesses.GET("/:id/financial-metrics", h.getFinancialMetrics)
		businesses.DELETE("/:id/financial-metrics", h.deleteFinancialMetrics)

		businesses.PUT("/:id/metrics", h.upsertBusinessMetrics)
		businesses.GET("/:id/metrics", h.getBusinessMetrics)
		businesses.DELETE("/:id/metrics", h.deleteBusinessMetrics)
	}
}

// caller pulls the authenticated user out of the context, answering 401
// itself when absent.
func (h *businessHandler) caller(c *gin.Context) (*domain.User, bool) {
	caller, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return caller, true
}

// listBusinesses godoc
// @Summary List businesses visible to the caller
// @Description Super-tier callers see all businesses; accountants see businesses they own
// @Tags businesses
// @Produce json
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} dto.ListBusinessesResponse
// @Security BearerAuth
// @Router /businesses [get]
func (h *businessHandler) listBusinesses(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	skip, limit, okParams := bindListParams(c)
	if !okParams {
		return
	}

	businesses, err := h.businessService.ListBusinesses(c.Request.Context(), *caller, limit, skip)
	if err != nil {
		respondServiceError(c, err, "Business")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBusinessesResponse(businesses))
}

// getBusiness godoc
// @Summary Get a business by ID
// @Description Retrieves a business with owner, accountants and metrics loaded
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Business not found"
// @Security BearerAuth
// @Router /businesses/{id} [get]
func (h *businessHandler) getBusiness(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), *caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Business")
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// createBusiness godoc
// @Summary Create a business
// @Description Creates a business; the owner defaults to the caller when omitted
// @Tags businesses
// @Accept json
// @Produce json
// @Param business body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} dto.BusinessResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Accountant not found"
// @Security BearerAuth
// @Router /businesses [post]
func (h *businessHandler) createBusiness(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), *caller, req)
	if err != nil {
		respondServiceError(c, err, "Business")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBusinessResponse(business))
}

// updateBusiness godoc
// @Summary Update a business
// @Description Applies the provided fields, enforcing the ownership gate
// @Tags businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param business body dto.UpdateBusinessRequest true "Fields to update"
// @Success 200 {object} dto.BusinessResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Business not found"
// @Security BearerAuth
// @Router /businesses/{id} [put]
func (h *businessHandler) updateBusiness(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), *caller, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Business")
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// deleteBusiness godoc
// @Summary Delete a business
// @Description Removes a business, cascading metrics and assignment rows
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 204 "No content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Business not found"
// @Security BearerAuth
// @Router /businesses/{id} [delete]
func (h *businessHandler) deleteBusiness(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.businessService.DeleteBusiness(c.Request.Context(), *caller, c.Param("id")); err != nil {
		respondServiceError(c, err, "Business")
		return
	}

	c.Status(http.StatusNoContent)
}

// assignAccountant godoc
// @Summary Assign an accountant to a business
// @Description Adds the accountant to the business's assignment set; idempotent
// @Tags businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param accountant body dto.AssignAccountantRequest true "Accountant ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 404 {object} map[string]string "Business or accountant not found"
// @Security BearerAuth
// @Router /businesses/{id}/assign-accountant [post]
func (h *businessHandler) assignAccountant(c *gin.Context) {
	var req dto.AssignAccountantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	business, err := h.businessService.AssignAccountant(c.Request.Context(), c.Param("id"), req.AccountantID)
	if err != nil {
		respondServiceError(c, err, "Business")
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// removeAccountant godoc
// @Summary Remove an accountant from a business
// @Description Removes the accountant from the assignment set; a no-op when absent
// @Tags businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param accountant body dto.AssignAccountantRequest true "Accountant ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 404 {object} map[string]string "Business not found"
// @Security BearerAuth
// @Router /businesses/{id}/remove-accountant [post]
func (h *businessHandler) removeAccountant(c *gin.Context) {
	var req dto.AssignAccountantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	business, err := h.businessService.RemoveAccountant(c.Request.Context(), c.Param("id"), req.AccountantID)
	if err != nil {
		respondServiceError(c, err, "Business")
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// upsertFinancialMetrics godoc
// @Summary Create or replace the financial metrics of a business
// @Tags businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param metrics body dto.UpsertFinancialMetricsRequest true "Financial metrics"
// @Success 200 {object} dto.FinancialMetricsResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Business not found"
// @Security BearerAuth
// @Router /businesses/{id}/financial-metrics [put]
func (h *businessHandler) upsertFinancialMetrics(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.UpsertFinancialMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	metrics, err := h.businessService.UpsertFinancialMetrics(c.Request.Context(), *caller, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Business")
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialMetricsResponse(metrics))
}

// getFinancialMetrics godoc
// @Summary Get the financial metrics of a business
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} dto.FinancialMetricsResponse
// @Failure 404 {object} map[string]string "Metrics not found"
// @Security BearerAuth
// @Router /businesses/{id}/financial-metrics [get]
func (h *businessHandler) getFinancialMetrics(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	metrics, err := h.businessService.GetFinancialMetrics(c.Request.Context(), *caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Financial metrics")
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialMetricsResponse(metrics))
}

// deleteFinancialMetrics godoc
// @Summary Delete the financial metrics of a business
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 204 "No content"
// @Failure 404 {object} map[string]string "Metrics not found"
// @Security BearerAuth
// @Router /businesses/{id}/financial-metrics [delete]
func (h *businessHandler) deleteFinancialMetrics(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.businessService.DeleteFinancialMetrics(c.Request.Context(), *caller, c.Param("id")); err != nil {
		respondServiceError(c, err, "Financial metrics")
		return
	}

	c.Status(http.StatusNoContent)
}

// upsertBusinessMetrics godoc
// @Summary Create or replace the operational metrics of a business
// @Tags businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param metrics body dto.UpsertBusinessMetricsRequest true "Operational metrics"
// @Success 200 {object} dto.BusinessMetricsResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Business not found"
// @Security BearerAuth
// @Router /businesses/{id}/metrics [put]
func (h *businessHandler) upsertBusinessMetrics(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.UpsertBusinessMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	metrics, err := h.businessService.UpsertBusinessMetrics(c.Request.Context(), *caller, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Business")
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessMetricsResponse(metrics))
}

// getBusinessMetrics godoc
// @Summary Get the operational metrics of a business
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} dto.BusinessMetricsResponse
// @Failure 404 {object} map[string]string "Metrics not found"
// @Security BearerAuth
// @Router /businesses/{id}/metrics [get]
func (h *businessHandler) getBusinessMetrics(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	metrics, err := h.businessService.GetBusinessMetrics(c.Request.Context(), *caller, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Business metrics")
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessMetricsResponse(metrics))
}

// deleteBusinessMetrics godoc
// @Summary Delete the operational metrics of a business
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 204 "No content"
// @Failure 404 {object} map[string]string "Metrics not found"
// @Security BearerAuth
// @Router /businesses/{id}/metrics [delete]
func (h *businessHandler) deleteBusinessMetrics(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.businessService.DeleteBusinessMetrics(c.Request.Context(), *caller, c.Param("id")); err != nil {
		respondServiceError(c, err, "Business metrics")
		return
	}

	c.Status(http.StatusNoContent)
}
