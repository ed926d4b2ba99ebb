package handlers

import (
	"net/http"

	"workrate_backend/internal/middleware"
	"workrate_backend/internal/models"
	"workrate_backend/internal/services"
	"workrate_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	*BaseHandler
	feedbackService services.FeedbackService
}

func NewFeedbackHandler(base *BaseHandler, feedbackService services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		BaseHandler:     base,
		feedbackService: feedbackService,
	}
}

func (h *FeedbackHandler) RegisterRoutes(r *gin.RouterGroup) {
	feedback := r.Group("/feedback")
	feedback.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleEmployee))
	{
		feedback.POST("", h.CreateFeedback)
		feedback.GET("/received", h.GetReceivedFeedback)
		feedback.GET("/summary", h.GetMySummary)
	}
}

func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateFeedbackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	feedback, err := h.feedbackService.CreateFeedback(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

func (h *FeedbackHandler) GetReceivedFeedback(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var criteria dto.ReceivedFeedbackCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	feedbacks, err := h.feedbackService.GetReceivedFeedback(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedbacks)
}

func (h *FeedbackHandler) GetMySummary(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	summary, err := h.feedbackService.GetMyFeedbackSummary(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
