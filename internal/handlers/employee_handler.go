package handlers

import (
	"net/http"

	"workrate_backend/internal/middleware"
	"workrate_backend/internal/models"
	"workrate_backend/internal/services"
	"workrate_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	*BaseHandler
	employeeService services.EmployeeService
}

func NewEmployeeHandler(base *BaseHandler, employeeService services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		BaseHandler:     base,
		employeeService: employeeService,
	}
}

func (h *EmployeeHandler) RegisterRoutes(r *gin.RouterGroup) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/me", h.GetMyProfile)
		employees.GET("/:employeeId", h.GetEmployee)
	}

	me := r.Group("/employees")
	me.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleEmployee))
	{
		me.PATCH("/me", h.UpdateMyProfile)
	}
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	viewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	employeeID := c.Param("employeeId")
	role := middleware.GetUserRole(c)

	employee, err := h.employeeService.GetEmployee(viewerID, role, employeeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetMyProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	employee, err := h.employeeService.UpdateMyProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}
