package handlers

import (
	"net/http"

	"workrate_backend/internal/middleware"
	"workrate_backend/internal/models"
	"workrate_backend/internal/services"
	"workrate_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EmploymentHandler struct {
	*BaseHandler
	employmentService services.EmploymentService
}

func NewEmploymentHandler(base *BaseHandler, employmentService services.EmploymentService) *EmploymentHandler {
	return &EmploymentHandler{
		BaseHandler:       base,
		employmentService: employmentService,
	}
}

func (h *EmploymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Employee routes
	employee := r.Group("/employments")
	employee.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleEmployee))
	{
		employee.POST("/request", h.RequestEmployment)
		employee.GET("/my", h.GetMyEmployments)
		employee.POST("/:employmentId/end", h.EndEmployment)
	}

	// Company admin routes
	admin := r.Group("/employments")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCompanyAdmin))
	{
		admin.GET("/pending", h.GetPendingRequests)
		admin.POST("/:employmentId/approve", h.ApproveEmployment)
		admin.POST("/:employmentId/reject", h.RejectEmployment)
	}
}

// --- Employee handlers ---

func (h *EmploymentHandler) RequestEmployment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RequestEmploymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	employment, err := h.employmentService.RequestEmployment(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employment)
}

func (h *EmploymentHandler) GetMyEmployments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	employments, err := h.employmentService.GetMyEmployments(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employments": employments,
		"total":       len(employments),
	})
}

func (h *EmploymentHandler) EndEmployment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	employmentID := c.Param("employmentId")

	var req dto.EndEmploymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	employment, err := h.employmentService.End(employmentID, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employment)
}

// --- Company admin handlers ---

func (h *EmploymentHandler) GetPendingRequests(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	employments, err := h.employmentService.GetPendingForCompany(adminID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employments": employments,
		"total":       len(employments),
	})
}

func (h *EmploymentHandler) ApproveEmployment(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	employmentID := c.Param("employmentId")

	employment, err := h.employmentService.Approve(employmentID, adminID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employment)
}

func (h *EmploymentHandler) RejectEmployment(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	employmentID := c.Param("employmentId")

	// Тело опционально: без него применяется причина по умолчанию
	var req dto.RejectEmploymentRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	employment, err := h.employmentService.Reject(employmentID, adminID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employment)
}
