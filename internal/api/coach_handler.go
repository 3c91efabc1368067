package api

import (
	"net/http"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CoachHandler holds the coach-side dependencies.
type CoachHandler struct {
	coachService service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// --- Request/Response Structs ---

type CoachResponse struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	Speciality domain.Speciality `json:"speciality"`
	Rating     float64           `json:"rating"`
}

type CoachProfileRequest struct {
	Speciality string `json:"speciality" binding:"required,oneof=KIDS ADULT YOGA"`
}

// AssignmentResponse reports a created coach<->customer link.
type AssignmentResponse struct {
	ID           string       `json:"id"`
	CoachUser    UserResponse `json:"coachUser"`
	CustomerUser UserResponse `json:"customerUser"`
	ChatID       string       `json:"chatId"`
}

// --- Handler Methods ---

// List returns all coaches, paged.
func (h *CoachHandler) List(c *gin.Context) {
	page, size, ok := pagination(c)
	if !ok {
		return
	}

	coaches, total, err := h.coachService.List(c.Request.Context(), page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]CoachResponse, len(coaches))
	for i := range coaches {
		items[i] = MapCoachToResponse(&coaches[i])
	}
	c.JSON(http.StatusOK, PageResponse{Items: items, Total: total, Page: page, Size: size})
}

// GetByID returns one coach profile.
func (h *CoachHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	coach, err := h.coachService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapCoachToResponse(coach))
}

// GetMe returns the caller's coach profile.
func (h *CoachHandler) GetMe(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	if principal.Coach == nil {
		abortWithError(c, http.StatusNotFound, "no coach profile")
		return
	}
	c.JSON(http.StatusOK, MapCoachToResponse(principal.Coach))
}

// AttachProfile adds a coach profile to the caller's account.
func (h *CoachHandler) AttachProfile(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CoachProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	coach, err := h.coachService.AttachProfile(c.Request.Context(), principal.UserID(), domain.Speciality(req.Speciality))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapCoachToResponse(coach))
}

// UpdateMe updates the caller's coach profile.
func (h *CoachHandler) UpdateMe(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CoachProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	coach, err := h.coachService.UpdateProfile(c.Request.Context(), principal, domain.Speciality(req.Speciality))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapCoachToResponse(coach))
}

// ListCustomers returns the caller's assigned customers, paged.
func (h *CoachHandler) ListCustomers(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	page, size, ok := pagination(c)
	if !ok {
		return
	}

	customers, total, err := h.coachService.ListCustomers(c.Request.Context(), principal, page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = MapCustomerToResponse(&customers[i])
	}
	c.JSON(http.StatusOK, PageResponse{Items: items, Total: total, Page: page, Size: size})
}

// AssignCustomer links the caller (a coach) with a customer and opens the
// dialogue chat between them.
func (h *CoachHandler) AssignCustomer(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	customerID, ok := objectIDParam(c, "customerId")
	if !ok {
		return
	}

	result, err := h.coachService.AssignCustomer(c.Request.Context(), principal, customerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapAssignmentToResponse(result))
}

// UnassignCustomer removes the link with a customer.
func (h *CoachHandler) UnassignCustomer(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	customerID, ok := objectIDParam(c, "customerId")
	if !ok {
		return
	}

	if err := h.coachService.UnassignCustomer(c.Request.Context(), principal, customerID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MapCoachToResponse converts a domain Coach to its DTO.
func MapCoachToResponse(coach *domain.Coach) CoachResponse {
	return CoachResponse{
		ID:         coach.ID.Hex(),
		UserID:     coach.UserID.Hex(),
		Speciality: coach.Speciality,
		Rating:     coach.Rating,
	}
}

// MapAssignmentToResponse converts an assignment result to its DTO.
func MapAssignmentToResponse(result *service.AssignmentResult) AssignmentResponse {
	return AssignmentResponse{
		ID:           result.Assignment.ID.Hex(),
		CoachUser:    MapUserToResponse(result.CoachUser),
		CustomerUser: MapUserToResponse(result.CustomerUser),
		ChatID:       result.Chat.ID.Hex(),
	}
}
