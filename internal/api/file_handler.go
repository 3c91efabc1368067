package api

import (
	"net/http"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// FileHandler holds the file service dependency.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// --- Request/Response Structs ---

type FileResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	ExerciseID *string   `json:"exerciseId,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type FileURLResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// --- Handler Methods ---

// Upload stores a multipart file in object storage and records it.
func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "file form field is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	defer src.Close()

	file, err := h.fileService.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapFileToResponse(file))
}

// GetURL returns a presigned download URL for a stored file.
func (h *FileHandler) GetURL(c *gin.Context) {
	filename := c.Param("filename")

	url, err := h.fileService.GetURL(c.Request.Context(), filename)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, FileURLResponse{Filename: filename, URL: url})
}

// Delete removes a stored file and its metadata.
func (h *FileHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MapFileToResponse converts a domain FileEntity to its DTO.
func MapFileToResponse(file *domain.FileEntity) FileResponse {
	return FileResponse{
		ID:         file.ID.Hex(),
		Filename:   file.Filename,
		ExerciseID: hexOrNil(file.ExerciseID),
		UploadedAt: file.UploadedAt,
	}
}
