package api

import (
	"net/http"
	"strings"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout-side dependencies.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	ewService      service.ExerciseWorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, ewService service.ExerciseWorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		ewService:      ewService,
	}
}

// --- Request/Response Structs ---

type ExerciseEntryRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	NumOrder   int    `json:"numOrder" binding:"min=0"`
	NumSets    int    `json:"numSets" binding:"omitempty,min=1"`
	NumReps    int    `json:"numReps" binding:"omitempty,min=1"`
	Stage      string `json:"stage" binding:"omitempty,oneof=WARM_UP MAIN COOL_DOWN"`
}

type CreateWorkoutRequest struct {
	CoachID        *string                `json:"coachId"`
	CustomerID     *string                `json:"customerId"`
	Name           string                 `json:"name" binding:"required"`
	TypeConnection string                 `json:"typeConnection" binding:"omitempty,oneof=ONLINE OFFLINE"`
	TimeStart      *time.Time             `json:"timeStart"`
	Exercises      []ExerciseEntryRequest `json:"exercises"`
}

type UpdateWorkoutRequest struct {
	Name           *string    `json:"name" binding:"omitempty,min=1"`
	TypeConnection *string    `json:"typeConnection" binding:"omitempty,oneof=ONLINE OFFLINE"`
	TimeStart      *time.Time `json:"timeStart"`
}

type ExerciseWorkoutResponse struct {
	ID          string       `json:"id"`
	WorkoutID   string       `json:"workoutId"`
	ExerciseID  string       `json:"exerciseId"`
	NumOrder    int          `json:"numOrder"`
	NumSets     int          `json:"numSets,omitempty"`
	NumSetsDone int          `json:"numSetsDone"`
	NumReps     int          `json:"numReps,omitempty"`
	Stage       domain.Stage `json:"stage,omitempty"`
}

type WorkoutResponse struct {
	ID             string                    `json:"id"`
	CoachID        *string                   `json:"coachId,omitempty"`
	CustomerID     *string                   `json:"customerId,omitempty"`
	ChatID         *string                   `json:"chatId,omitempty"`
	Name           string                    `json:"name"`
	TypeConnection domain.TypeConnection     `json:"typeConnection,omitempty"`
	TimeStart      *time.Time                `json:"timeStart,omitempty"`
	Exercises      []ExerciseWorkoutResponse `json:"exercises,omitempty"`
}

type CreateExerciseWorkoutRequest struct {
	WorkoutID  string `json:"workoutId" binding:"required"`
	ExerciseID string `json:"exerciseId" binding:"required"`
	NumOrder   int    `json:"numOrder" binding:"min=0"`
	NumSets    int    `json:"numSets" binding:"omitempty,min=1"`
	NumReps    int    `json:"numReps" binding:"omitempty,min=1"`
	Stage      string `json:"stage" binding:"omitempty,oneof=WARM_UP MAIN COOL_DOWN"`
}

type UpdateExerciseWorkoutRequest struct {
	ExerciseID  *string `json:"exerciseId"`
	NumOrder    *int    `json:"numOrder" binding:"omitempty,min=0"`
	NumSets     *int    `json:"numSets" binding:"omitempty,min=1"`
	NumSetsDone *int    `json:"numSetsDone" binding:"omitempty,min=0"`
	NumReps     *int    `json:"numReps" binding:"omitempty,min=1"`
	Stage       *string `json:"stage" binding:"omitempty,oneof=WARM_UP MAIN COOL_DOWN"`
}

// --- Handler Methods ---

// Create builds a new workout with its exercise entries.
func (h *WorkoutHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := service.CreateWorkoutInput{
		Name:           req.Name,
		TypeConnection: domain.TypeConnection(req.TypeConnection),
		TimeStart:      req.TimeStart,
	}

	var err error
	if input.CoachID, err = optionalObjectID(req.CoachID); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid coachId")
		return
	}
	if input.CustomerID, err = optionalObjectID(req.CustomerID); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid customerId")
		return
	}

	for _, entry := range req.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(entry.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid exerciseId")
			return
		}
		input.Exercises = append(input.Exercises, service.ExerciseEntryInput{
			ExerciseID: exerciseID,
			NumOrder:   entry.NumOrder,
			NumSets:    entry.NumSets,
			NumReps:    entry.NumReps,
			Stage:      domain.Stage(entry.Stage),
		})
	}

	detail, err := h.workoutService.Create(c.Request.Context(), principal, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutDetailToResponse(detail))
}

// GetByID returns one workout with its exercise entries in display order.
func (h *WorkoutHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.workoutService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutDetailToResponse(detail))
}

// List returns the caller's workouts as coach or customer, filtered and
// paged.
func (h *WorkoutHandler) List(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	page, size, ok := pagination(c)
	if !ok {
		return
	}

	// Without ?as the view follows the caller's derived role; users holding
	// both profiles must pick a side explicitly.
	asRole := principal.Role()
	if raw := c.Query("as"); raw != "" {
		asRole = domain.Role(strings.ToUpper(raw))
	}

	input := service.ListWorkoutsInput{
		Name:           c.Query("name"),
		TypeConnection: c.Query("typeConnection"),
	}
	if raw := c.Query("timeStartFrom"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "timeStartFrom must be RFC3339")
			return
		}
		input.TimeStartFrom = &from
	}
	if raw := c.Query("timeStartTo"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "timeStartTo must be RFC3339")
			return
		}
		input.TimeStartTo = &to
	}

	workouts, total, err := h.workoutService.ListByUser(c.Request.Context(), principal, asRole, input, page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		items[i] = MapWorkoutToResponse(&workouts[i])
	}
	c.JSON(http.StatusOK, PageResponse{Items: items, Total: total, Page: page, Size: size})
}

// Update changes the mutable workout fields.
func (h *WorkoutHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := service.UpdateWorkoutInput{
		Name:      req.Name,
		TimeStart: req.TimeStart,
	}
	if req.TypeConnection != nil {
		tc := domain.TypeConnection(*req.TypeConnection)
		input.TypeConnection = &tc
	}

	workout, err := h.workoutService.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// Delete removes the workout, cascading to its entries and chat.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), principal, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateExerciseWorkout appends an exercise entry to an existing workout.
func (h *WorkoutHandler) CreateExerciseWorkout(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CreateExerciseWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid workoutId")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exerciseId")
		return
	}

	ew, err := h.ewService.Create(c.Request.Context(), principal, service.CreateExerciseWorkoutInput{
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		NumOrder:   req.NumOrder,
		NumSets:    req.NumSets,
		NumReps:    req.NumReps,
		Stage:      domain.Stage(req.Stage),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseWorkoutToResponse(ew))
}

// GetExerciseWorkout returns one exercise entry.
func (h *WorkoutHandler) GetExerciseWorkout(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ew, err := h.ewService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseWorkoutToResponse(ew))
}

// UpdateExerciseWorkout changes an exercise entry.
func (h *WorkoutHandler) UpdateExerciseWorkout(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateExerciseWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := service.UpdateExerciseWorkoutInput{
		NumOrder:    req.NumOrder,
		NumSets:     req.NumSets,
		NumSetsDone: req.NumSetsDone,
		NumReps:     req.NumReps,
	}
	if req.ExerciseID != nil {
		exerciseID, err := primitive.ObjectIDFromHex(*req.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid exerciseId")
			return
		}
		input.ExerciseID = &exerciseID
	}
	if req.Stage != nil {
		stage := domain.Stage(*req.Stage)
		input.Stage = &stage
	}

	ew, err := h.ewService.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseWorkoutToResponse(ew))
}

// DeleteExerciseWorkout removes one exercise entry.
func (h *WorkoutHandler) DeleteExerciseWorkout(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ewService.Delete(c.Request.Context(), principal, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Mapping helpers ---

func optionalObjectID(raw *string) (*primitive.ObjectID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func hexOrNil(id *primitive.ObjectID) *string {
	if id == nil {
		return nil
	}
	hex := id.Hex()
	return &hex
}

// MapWorkoutToResponse converts a domain Workout to its DTO.
func MapWorkoutToResponse(workout *domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:             workout.ID.Hex(),
		CoachID:        hexOrNil(workout.CoachID),
		CustomerID:     hexOrNil(workout.CustomerID),
		ChatID:         hexOrNil(workout.ChatID),
		Name:           workout.Name,
		TypeConnection: workout.TypeConnection,
		TimeStart:      workout.TimeStart,
	}
}

// MapWorkoutDetailToResponse converts a workout with its entries.
func MapWorkoutDetailToResponse(detail *service.WorkoutDetail) WorkoutResponse {
	resp := MapWorkoutToResponse(detail.Workout)
	resp.Exercises = make([]ExerciseWorkoutResponse, len(detail.Exercises))
	for i := range detail.Exercises {
		resp.Exercises[i] = MapExerciseWorkoutToResponse(&detail.Exercises[i])
	}
	return resp
}

// MapExerciseWorkoutToResponse converts an exercise entry to its DTO.
func MapExerciseWorkoutToResponse(ew *domain.ExerciseWorkout) ExerciseWorkoutResponse {
	return ExerciseWorkoutResponse{
		ID:          ew.ID.Hex(),
		WorkoutID:   ew.WorkoutID.Hex(),
		ExerciseID:  ew.ExerciseID.Hex(),
		NumOrder:    ew.NumOrder,
		NumSets:     ew.NumSets,
		NumSetsDone: ew.NumSetsDone,
		NumReps:     ew.NumReps,
		Stage:       ew.Stage,
	}
}
