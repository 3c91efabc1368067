package api

import (
	"net/http"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request/Response Structs ---

type ExerciseRequest struct {
	Name             string   `json:"name" binding:"required"`
	Muscle           string   `json:"muscle"`
	AdditionalMuscle string   `json:"additionalMuscle"`
	Type             string   `json:"type"`
	Equipment        string   `json:"equipment"`
	Difficulty       string   `json:"difficulty"`
	Description      string   `json:"description"`
	OriginalURI      string   `json:"originalUri"`
	PhotoFileIDs     []string `json:"photoFileIds"`
}

type ExerciseResponse struct {
	ID               string   `json:"id"`
	UserID           *string  `json:"userId,omitempty"`
	Name             string   `json:"name"`
	Muscle           string   `json:"muscle,omitempty"`
	AdditionalMuscle string   `json:"additionalMuscle,omitempty"`
	Type             string   `json:"type,omitempty"`
	Equipment        string   `json:"equipment,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	Description      string   `json:"description,omitempty"`
	OriginalURI      string   `json:"originalUri,omitempty"`
	PhotoURLs        []string `json:"photoUrls,omitempty"`
}

// --- Handler Methods ---

// Create adds an exercise owned by the caller.
func (h *ExerciseHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	input, ok := bindExerciseInput(c)
	if !ok {
		return
	}

	detail, err := h.exerciseService.Create(c.Request.Context(), principal, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseDetailToResponse(detail))
}

// GetByID returns one exercise with resolved photo URLs.
func (h *ExerciseHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.exerciseService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseDetailToResponse(detail))
}

// Search returns the caller's exercises plus the shared library, filtered
// and paged.
func (h *ExerciseHandler) Search(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	page, size, ok := pagination(c)
	if !ok {
		return
	}

	input := service.SearchExercisesInput{
		Name:   c.Query("name"),
		Muscle: c.Query("muscle"),
		Type:   c.Query("type"),
	}

	exercises, total, err := h.exerciseService.Search(c.Request.Context(), principal, input, page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		items[i] = MapExerciseToResponse(&exercises[i])
	}
	c.JSON(http.StatusOK, PageResponse{Items: items, Total: total, Page: page, Size: size})
}

// Update rewrites an exercise and reconciles its photo set.
func (h *ExerciseHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	input, ok := bindExerciseInput(c)
	if !ok {
		return
	}

	detail, err := h.exerciseService.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseDetailToResponse(detail))
}

// Delete removes an owned exercise, its photos and its workout entries.
func (h *ExerciseHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), principal, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindExerciseInput(c *gin.Context) (service.ExerciseInput, bool) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return service.ExerciseInput{}, false
	}

	input := service.ExerciseInput{
		Name:             req.Name,
		Muscle:           req.Muscle,
		AdditionalMuscle: req.AdditionalMuscle,
		Type:             req.Type,
		Equipment:        req.Equipment,
		Difficulty:       req.Difficulty,
		Description:      req.Description,
		OriginalURI:      req.OriginalURI,
	}
	for _, raw := range req.PhotoFileIDs {
		fileID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid photo file id")
			return service.ExerciseInput{}, false
		}
		input.PhotoFileIDs = append(input.PhotoFileIDs, fileID)
	}
	return input, true
}

// MapExerciseToResponse converts a domain Exercise to its DTO.
func MapExerciseToResponse(exercise *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:               exercise.ID.Hex(),
		UserID:           hexOrNil(exercise.UserID),
		Name:             exercise.Name,
		Muscle:           exercise.Muscle,
		AdditionalMuscle: exercise.AdditionalMuscle,
		Type:             exercise.Type,
		Equipment:        exercise.Equipment,
		Difficulty:       exercise.Difficulty,
		Description:      exercise.Description,
		OriginalURI:      exercise.OriginalURI,
	}
}

// MapExerciseDetailToResponse converts an exercise with photo URLs.
func MapExerciseDetailToResponse(detail *service.ExerciseDetail) ExerciseResponse {
	resp := MapExerciseToResponse(detail.Exercise)
	resp.PhotoURLs = detail.PhotoURLs
	return resp
}
