package handlers

import (
	"net/http"

	"workrate_backend/internal/middleware"
	"workrate_backend/internal/models"
	"workrate_backend/internal/services"
	"workrate_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
	}
}

func (h *CompanyHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/companies")
	{
		public.GET("", h.GetCompanies)
		public.GET("/:companyId", h.GetCompany)
		public.GET("/:companyId/stats", h.GetCompanyStats)
	}

	// Company admin routes
	admin := r.Group("/companies")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCompanyAdmin))
	{
		admin.POST("", h.CreateCompany)
		admin.PUT("/:companyId", h.UpdateCompany)
	}

	// Владелец либо системный админ - роль проверяет сервис
	del := r.Group("/companies")
	del.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCompanyAdmin, models.UserRoleSystemAdmin))
	{
		del.DELETE("/:companyId", h.DeleteCompany)
	}
}

func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	var criteria dto.CompanySearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	companies, err := h.companyService.GetCompanies(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID := c.Param("companyId")

	company, err := h.companyService.GetCompany(companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) GetCompanyStats(c *gin.Context) {
	companyID := c.Param("companyId")

	stats, err := h.companyService.GetCompanyStats(companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.companyService.CreateCompany(adminID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")

	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.companyService.UpdateCompany(adminID, companyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	companyID := c.Param("companyId")
	role := middleware.GetUserRole(c)

	if err := h.companyService.DeleteCompany(userID, role, companyID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}
