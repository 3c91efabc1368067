package api

import (
	"net/http"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request/Response Structs ---

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Sex       domain.Sex `json:"sex,omitempty"`
	BirthDate *string    `json:"birthDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Name      *string `json:"name" binding:"omitempty,min=1"`
	Sex       *string `json:"sex" binding:"omitempty,oneof=MALE FEMALE"`
	BirthDate *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// PageResponse wraps a paged listing.
type PageResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

// --- Handler Methods ---

// List returns all users, paged.
func (h *UserHandler) List(c *gin.Context) {
	page, size, ok := pagination(c)
	if !ok {
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, PageResponse{Items: items, Total: total, Page: page, Size: size})
}

// GetByID returns one user.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// GetMe returns the caller's identity with derived role and profiles.
func (h *UserHandler) GetMe(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, MapPrincipalToResponse(principal))
}

// UpdateMe updates the caller's own identity fields.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := service.UpdateUserInput{
		Email: req.Email,
		Name:  req.Name,
	}
	if req.Sex != nil {
		sex := domain.Sex(*req.Sex)
		input.Sex = &sex
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "birthDate must be YYYY-MM-DD")
			return
		}
		input.BirthDate = &birthDate
	}

	user, err := h.userService.Update(c.Request.Context(), principal.UserID(), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdatePassword changes the caller's password after verifying the current
// one.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), principal.UserID(), req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteMe removes the caller's account together with both profiles.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), principal.UserID()); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		Name:      user.Name,
		Sex:       user.Sex,
		CreatedAt: user.CreatedAt,
	}
	if user.BirthDate != nil {
		birthDate := user.BirthDate.Format("2006-01-02")
		resp.BirthDate = &birthDate
	}
	return resp
}
