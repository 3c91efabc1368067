package api

import (
	"net/http"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler holds the feedback service dependency.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// --- Request/Response Structs ---

type FeedbackRequest struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

type FeedbackResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	CoachID    string `json:"coachId"`
	Score      int    `json:"score"`
}

// --- Handler Methods ---

// Create records the caller's score for a coach they are assigned to.
func (h *FeedbackHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	coachID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	feedback, err := h.feedbackService.Create(c.Request.Context(), principal, coachID, req.Score)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapFeedbackToResponse(feedback))
}

// GetMine returns the caller's feedback for a coach.
func (h *FeedbackHandler) GetMine(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	coachID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	feedback, err := h.feedbackService.GetMine(c.Request.Context(), principal, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapFeedbackToResponse(feedback))
}

// Update changes the caller's score for a coach.
func (h *FeedbackHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	coachID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	feedback, err := h.feedbackService.Update(c.Request.Context(), principal, coachID, req.Score)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapFeedbackToResponse(feedback))
}

// MapFeedbackToResponse converts a domain Feedback to its DTO.
func MapFeedbackToResponse(feedback *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:         feedback.ID.Hex(),
		CustomerID: feedback.CustomerID.Hex(),
		CoachID:    feedback.CoachID.Hex(),
		Score:      feedback.Score,
	}
}
