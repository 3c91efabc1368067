package api

import (
	"net/http"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WellnessHandler bundles the per-day self-tracking endpoints: mood diary,
// steps and water.
type WellnessHandler struct {
	diaryService    service.DiaryService
	trackingService service.TrackingService
}

// NewWellnessHandler creates a new WellnessHandler.
func NewWellnessHandler(diaryService service.DiaryService, trackingService service.TrackingService) *WellnessHandler {
	return &WellnessHandler{
		diaryService:    diaryService,
		trackingService: trackingService,
	}
}

// --- Request/Response Structs ---

type DiaryRequest struct {
	Feeling      string  `json:"feeling" binding:"omitempty,oneof=ANGRY SAD NEUTRAL CALM EXCITED"`
	Reason       string  `json:"reason" binding:"omitempty,oneof=FAMILY SELF_ESTEEM WORK WEATHER SLEEP FOOD SOCIAL"`
	Note         string  `json:"note"`
	FileEntityID *string `json:"fileEntityId"`
}

type DiaryResponse struct {
	ID           string         `json:"id"`
	Date         string         `json:"date"`
	Feeling      domain.Feeling `json:"feeling,omitempty"`
	Reason       domain.Reason  `json:"reason,omitempty"`
	Note         string         `json:"note,omitempty"`
	FileEntityID *string        `json:"fileEntityId,omitempty"`
}

type StepsRequest struct {
	Steps int  `json:"steps" binding:"min=0"`
	Goal  *int `json:"goal" binding:"omitempty,min=1"`
}

type StepsResponse struct {
	Date      string `json:"date"`
	Steps     int    `json:"steps"`
	GoalSteps int    `json:"goalSteps"`
}

type WaterRequest struct {
	WaterVolume int  `json:"waterVolume" binding:"min=0"`
	Goal        *int `json:"goal" binding:"omitempty,min=1"`
}

type WaterResponse struct {
	Date            string `json:"date"`
	WaterVolume     int    `json:"waterVolume"`
	GoalWaterVolume int    `json:"goalWaterVolume"`
}

// --- Diary Handler Methods ---

// UpsertDiary creates or replaces the caller's diary entry for a day.
func (h *WellnessHandler) UpsertDiary(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	date, ok := dateParam(c, "date")
	if !ok {
		return
	}

	var req DiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := service.DiaryInput{
		Feeling: domain.Feeling(req.Feeling),
		Reason:  domain.Reason(req.Reason),
		Note:    req.Note,
	}
	if req.FileEntityID != nil {
		fileID, err := primitive.ObjectIDFromHex(*req.FileEntityID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid fileEntityId")
			return
		}
		input.FileEntityID = &fileID
	}

	entry, err := h.diaryService.Upsert(c.Request.Context(), principal, date, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapDiaryToResponse(entry))
}

// GetDiary returns the caller's diary entry for a day.
func (h *WellnessHandler) GetDiary(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	date, ok := dateParam(c, "date")
	if !ok {
		return
	}

	entry, err := h.diaryService.GetByDate(c.Request.Context(), principal, date)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapDiaryToResponse(entry))
}

// ListDiary returns the caller's diary entries in a date range.
func (h *WellnessHandler) ListDiary(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	entries, err := h.diaryService.ListRange(c.Request.Context(), principal, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]DiaryResponse, len(entries))
	for i := range entries {
		items[i] = MapDiaryToResponse(&entries[i])
	}
	c.JSON(http.StatusOK, items)
}

// DeleteDiary removes the caller's diary entry for a day.
func (h *WellnessHandler) DeleteDiary(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	date, ok := dateParam(c, "date")
	if !ok {
		return
	}

	if err := h.diaryService.Delete(c.Request.Context(), principal, date); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Steps Handler Methods ---

// SetSteps records the caller's step count for a day.
func (h *WellnessHandler) SetSteps(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	date, ok := dateParam(c, "date")
	if !ok {
		return
	}

	var req StepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.trackingService.SetSteps(c.Request.Context(), principal, date, req.Steps, req.Goal)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapStepsToResponse(entry))
}

// GetSteps returns the caller's step entry for a day, zeroed against the
// default goal when nothing was recorded.
func (h *WellnessHandler) GetSteps(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	date, ok := dateParam(c, "date")
	if !ok {
		return
	}

	entry, err := h.trackingService.GetSteps(c.Request.Context(), principal, date)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapStepsToResponse(entry))
}

// ListSteps returns the caller's step entries in a date range.
func (h *WellnessHandler) ListSteps(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	entries, err := h.trackingService.ListSteps(c.Request.Context(), principal, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]StepsResponse, len(entries))
	for i := range entries {
		items[i] = MapStepsToResponse(&entries[i])
	}
	c.JSON(http.StatusOK, items)
}

// --- Water Handler Methods ---

// SetWater records the caller's water intake for a day.
func (h *WellnessHandler) SetWater(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	date, ok := dateParam(c, "date")
	if !ok {
		return
	}

	var req WaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.trackingService.SetWater(c.Request.Context(), principal, date, req.WaterVolume, req.Goal)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWaterToResponse(entry))
}

// GetWater returns the caller's water entry for a day.
func (h *WellnessHandler) GetWater(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	date, ok := dateParam(c, "date")
	if !ok {
		return
	}

	entry, err := h.trackingService.GetWater(c.Request.Context(), principal, date)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWaterToResponse(entry))
}

// ListWater returns the caller's water entries in a date range.
func (h *WellnessHandler) ListWater(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	entries, err := h.trackingService.ListWater(c.Request.Context(), principal, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]WaterResponse, len(entries))
	for i := range entries {
		items[i] = MapWaterToResponse(&entries[i])
	}
	c.JSON(http.StatusOK, items)
}

// --- Mapping helpers ---

const dateLayout = "2006-01-02"

func MapDiaryToResponse(entry *domain.DiaryEntry) DiaryResponse {
	return DiaryResponse{
		ID:           entry.ID.Hex(),
		Date:         entry.Date.Format(dateLayout),
		Feeling:      entry.Feeling,
		Reason:       entry.Reason,
		Note:         entry.Note,
		FileEntityID: hexOrNil(entry.FileEntityID),
	}
}

func MapStepsToResponse(entry *domain.StepsEntry) StepsResponse {
	return StepsResponse{
		Date:      entry.Date.Format(dateLayout),
		Steps:     entry.Steps,
		GoalSteps: entry.GoalSteps,
	}
}

func MapWaterToResponse(entry *domain.WaterEntry) WaterResponse {
	return WaterResponse{
		Date:            entry.Date.Format(dateLayout),
		WaterVolume:     entry.WaterVolume,
		GoalWaterVolume: entry.GoalWaterVolume,
	}
}
