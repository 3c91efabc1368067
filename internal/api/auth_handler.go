package api

import (
	"net/http"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the registration and login dependencies.
type AuthHandler struct {
	authService     service.AuthService
	coachService    service.CoachService
	customerService service.CustomerService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService service.AuthService,
	coachService service.CoachService,
	customerService service.CustomerService,
) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		coachService:    coachService,
		customerService: customerService,
	}
}

// --- Request/Response Structs ---

type registerUserFields struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Sex       string  `json:"sex" binding:"omitempty,oneof=MALE FEMALE"`
	BirthDate *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
}

type RegisterCoachRequest struct {
	registerUserFields
	Speciality string `json:"speciality" binding:"required,oneof=KIDS ADULT YOGA"`
}

type RegisterCustomerRequest struct {
	registerUserFields
	Goal         string `json:"goal" binding:"omitempty,oneof=BE_ACTIVE BE_STRONG LOSE_WEIGHT"`
	FitnessLevel string `json:"fitnessLevel" binding:"omitempty,oneof=NOVICE BEGINNER INTERMEDIATE ADVANCED ATHLETE"`
	Preference   string `json:"preference" binding:"omitempty,oneof=JOGGING WALKING WEIGHTLIFT CARDIO YOGA OTHER"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PrincipalResponse is the caller's identity: the user, the derived role
// and whichever profiles exist.
type PrincipalResponse struct {
	User     UserResponse      `json:"user"`
	Role     domain.Role       `json:"role"`
	Coach    *CoachResponse    `json:"coach,omitempty"`
	Customer *CustomerResponse `json:"customer,omitempty"`
}

type LoginResponse struct {
	Token     string            `json:"token"`
	Principal PrincipalResponse `json:"principal"`
}

// --- Handler Methods ---

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	token, principal, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Principal: MapPrincipalToResponse(principal),
	})
}

// RegisterCoach creates a new user together with a coach profile.
func (h *AuthHandler) RegisterCoach(c *gin.Context) {
	var req RegisterCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	userInput, err := mapRegisterUserFields(req.registerUserFields)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	principal, err := h.coachService.Register(c.Request.Context(), service.RegisterCoachInput{
		RegisterUserInput: userInput,
		Speciality:        domain.Speciality(req.Speciality),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapPrincipalToResponse(principal))
}

// RegisterCustomer creates a new user together with a customer profile.
func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	userInput, err := mapRegisterUserFields(req.registerUserFields)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	principal, err := h.customerService.Register(c.Request.Context(), service.RegisterCustomerInput{
		RegisterUserInput: userInput,
		Goal:              domain.UserGoal(req.Goal),
		FitnessLevel:      domain.FitnessLevel(req.FitnessLevel),
		Preference:        domain.ExercisePreference(req.Preference),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapPrincipalToResponse(principal))
}

func mapRegisterUserFields(req registerUserFields) (service.RegisterUserInput, error) {
	input := service.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Sex:      domain.Sex(req.Sex),
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return service.RegisterUserInput{}, err
		}
		input.BirthDate = &birthDate
	}
	return input, nil
}

// MapPrincipalToResponse converts a resolved principal to its DTO.
func MapPrincipalToResponse(principal *service.Principal) PrincipalResponse {
	resp := PrincipalResponse{
		User: MapUserToResponse(principal.User),
		Role: principal.Role(),
	}
	if principal.Coach != nil {
		coach := MapCoachToResponse(principal.Coach)
		resp.Coach = &coach
	}
	if principal.Customer != nil {
		customer := MapCustomerToResponse(principal.Customer)
		resp.Customer = &customer
	}
	return resp
}
