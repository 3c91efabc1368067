package api

import (
	"net/http"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerHandler holds the customer-side dependencies.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// --- Request/Response Structs ---

type CustomerResponse struct {
	ID           string                    `json:"id"`
	UserID       string                    `json:"userId"`
	Goal         domain.UserGoal           `json:"goal,omitempty"`
	FitnessLevel domain.FitnessLevel       `json:"fitnessLevel,omitempty"`
	Preference   domain.ExercisePreference `json:"preference,omitempty"`
}

type CustomerProfileRequest struct {
	Goal         string `json:"goal" binding:"omitempty,oneof=BE_ACTIVE BE_STRONG LOSE_WEIGHT"`
	FitnessLevel string `json:"fitnessLevel" binding:"omitempty,oneof=NOVICE BEGINNER INTERMEDIATE ADVANCED ATHLETE"`
	Preference   string `json:"preference" binding:"omitempty,oneof=JOGGING WALKING WEIGHTLIFT CARDIO YOGA OTHER"`
}

// --- Handler Methods ---

// List returns all customers, paged.
func (h *CustomerHandler) List(c *gin.Context) {
	page, size, ok := pagination(c)
	if !ok {
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), page, size)
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

// GetByID returns one customer profile.
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapCustomerToResponse(customer))
}

// GetMe returns the caller's customer profile.
func (h *CustomerHandler) GetMe(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	if principal.Customer == nil {
		abortWithError(c, http.StatusNotFound, "no customer profile")
		return
	}
	c.JSON(http.StatusOK, MapCustomerToResponse(principal.Customer))
}

// AttachProfile adds a customer profile to the caller's account.
func (h *CustomerHandler) AttachProfile(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CustomerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.customerService.AttachProfile(c.Request.Context(), principal.UserID(), mapCustomerProfileInput(req))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapCustomerToResponse(customer))
}

// UpdateMe updates the caller's customer profile.
func (h *CustomerHandler) UpdateMe(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CustomerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.customerService.UpdateProfile(c.Request.Context(), principal, mapCustomerProfileInput(req))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapCustomerToResponse(customer))
}

// ListCoaches returns the caller's assigned coaches, paged.
func (h *CustomerHandler) ListCoaches(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	page, size, ok := pagination(c)
	if !ok {
		return
	}

	coaches, total, err := h.customerService.ListCoaches(c.Request.Context(), principal, page, size)
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

// AssignCoach links the caller (a customer) with a coach. The resulting
// pair is the same one a coach-side assign would create.
func (h *CustomerHandler) AssignCoach(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	coachID, ok := objectIDParam(c, "coachId")
	if !ok {
		return
	}

	result, err := h.customerService.AssignCoach(c.Request.Context(), principal, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapAssignmentToResponse(result))
}

// UnassignCoach removes the link with a coach.
func (h *CustomerHandler) UnassignCoach(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	coachID, ok := objectIDParam(c, "coachId")
	if !ok {
		return
	}

	if err := h.customerService.UnassignCoach(c.Request.Context(), principal, coachID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func mapCustomerProfileInput(req CustomerProfileRequest) service.CustomerProfileInput {
	return service.CustomerProfileInput{
		Goal:         domain.UserGoal(req.Goal),
		FitnessLevel: domain.FitnessLevel(req.FitnessLevel),
		Preference:   domain.ExercisePreference(req.Preference),
	}
}

// MapCustomerToResponse converts a domain Customer to its DTO.
func MapCustomerToResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           customer.ID.Hex(),
		UserID:       customer.UserID.Hex(),
		Goal:         customer.Goal,
		FitnessLevel: customer.FitnessLevel,
		Preference:   customer.Preference,
	}
}
