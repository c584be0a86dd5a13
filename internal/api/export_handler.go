package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitforge/workout-builder/internal/clients"
	"fitforge/workout-builder/internal/service"
)

// ExportHandler exposes the read-side collaborator flows: device-file export
// and exercise-name validation.
type ExportHandler struct {
	exportService  service.ExportService
	mappingService service.MappingService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService, mappingService service.MappingService) *ExportHandler {
	return &ExportHandler{exportService: exportService, mappingService: mappingService}
}

// ValidationResponse wraps the per-exercise validation results.
type ValidationResponse struct {
	Results []clients.ExerciseValidation `json:"results"`
}

// Export godoc
// @Summary Export a workout as a device file
// @Description Renders the workout in the requested format (yaml, plist, zwo) and streams it back as a download.
// @Tags Export
// @Produce octet-stream
// @Param workoutId path string true "Workout ID"
// @Param format query string true "Export format" Enums(yaml, plist, zwo)
// @Success 200 {file} binary
// @Failure 400 {object} gin.H "Unsupported format"
// @Failure 404 {object} gin.H "Not found"
// @Failure 502 {object} gin.H "Exporter service failure"
// @Router /workouts/{workoutId}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	format := c.Query("format")
	if !clients.ExportFormats[format] {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Unsupported export format %q", format))
		return
	}

	file, err := h.exportService.ExportWorkout(c.Request.Context(), ownerID, workoutID, format)
	if err != nil {
		h.writeCollaboratorError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Validate godoc
// @Summary Validate exercise names against the canonical catalog
// @Description Forwards the workout to the mapping service; results are advisory and nothing is persisted.
// @Tags Export
// @Produce json
// @Param workoutId path string true "Workout ID"
// @Success 200 {object} ValidationResponse
// @Failure 404 {object} gin.H "Not found"
// @Failure 502 {object} gin.H "Mapper service failure"
// @Router /workouts/{workoutId}/validate [post]
func (h *ExportHandler) Validate(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}

	results, err := h.mappingService.ValidateWorkout(c.Request.Context(), ownerID, workoutID)
	if err != nil {
		h.writeCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, ValidationResponse{Results: results})
}

func (h *ExportHandler) ids(c *gin.Context) (ownerID, workoutID primitive.ObjectID, ok bool) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	workoutID, err = primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return ownerID, workoutID, true
}

func (h *ExportHandler) writeCollaboratorError(c *gin.Context, err error) {
	var statusErr *clients.StatusError
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.As(err, &statusErr):
		abortWithError(c, http.StatusBadGateway, fmt.Sprintf("%s service unavailable", statusErr.Service))
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
