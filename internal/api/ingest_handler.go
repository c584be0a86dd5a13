package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitforge/workout-builder/internal/service"
)

// IngestHandler exposes the source-to-workout flows: paste text, paste a
// video URL, or upload a photo of a workout.
type IngestHandler struct {
	ingestService service.IngestService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestService service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

// --- Request/Response Structs ---

type IngestTextRequest struct {
	Text string `json:"text" binding:"required"`
}

type IngestVideoRequest struct {
	VideoURL string `json:"video_url" binding:"required,url"`
}

type ImageUploadRequest struct {
	ContentType string `json:"content_type"`
}

type ImageUploadResponse struct {
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
}

type IngestImageRequest struct {
	ObjectKey string `json:"object_key" binding:"required"`
}

// --- Handler Methods ---

// FromText godoc
// @Summary Generate a workout from pasted text
// @Tags Ingest
// @Accept json
// @Produce json
// @Param source body IngestTextRequest true "Raw workout text"
// @Success 201 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Empty source"
// @Failure 502 {object} gin.H "Generation service failure"
// @Router /ingest/text [post]
func (h *IngestHandler) FromText(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	var req IngestTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.ingestService.FromText(c.Request.Context(), ownerID, req.Text)
	if err != nil {
		h.writeIngestError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// FromVideoURL godoc
// @Summary Generate a workout from a video URL
// @Tags Ingest
// @Accept json
// @Produce json
// @Param source body IngestVideoRequest true "Video URL"
// @Success 201 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Empty or invalid URL"
// @Failure 502 {object} gin.H "Generation service failure"
// @Router /ingest/video [post]
func (h *IngestHandler) FromVideoURL(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	var req IngestVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.ingestService.FromVideoURL(c.Request.Context(), ownerID, req.VideoURL)
	if err != nil {
		h.writeIngestError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// CreateImageUpload godoc
// @Summary Reserve a presigned upload for a source image
// @Description Returns an object key and a presigned PUT URL; the browser uploads the image directly to object storage, then calls /ingest/image with the key.
// @Tags Ingest
// @Accept json
// @Produce json
// @Param upload body ImageUploadRequest false "Content type (defaults to image/jpeg)"
// @Success 200 {object} ImageUploadResponse
// @Router /ingest/image-upload [post]
func (h *IngestHandler) CreateImageUpload(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	var req ImageUploadRequest
	// Body is optional; an empty content type falls back to image/jpeg.
	_ = c.ShouldBindJSON(&req)

	upload, err := h.ingestService.CreateImageUpload(c.Request.Context(), ownerID, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}
	c.JSON(http.StatusOK, ImageUploadResponse{
		ObjectKey: upload.ObjectKey,
		UploadURL: upload.UploadURL,
	})
}

// FromImage godoc
// @Summary Generate a workout from an uploaded source image
// @Tags Ingest
// @Accept json
// @Produce json
// @Param source body IngestImageRequest true "Object key returned by /ingest/image-upload"
// @Success 201 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Missing object key"
// @Failure 502 {object} gin.H "Generation service failure"
// @Router /ingest/image [post]
func (h *IngestHandler) FromImage(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}
	var req IngestImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.ingestService.FromImage(c.Request.Context(), ownerID, req.ObjectKey)
	if err != nil {
		h.writeIngestError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

func (h *IngestHandler) writeIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptySource):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGenerationFailed):
		abortWithError(c, http.StatusBadGateway, "Workout generation failed")
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
